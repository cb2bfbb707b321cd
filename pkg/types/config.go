// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for calling the Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-3-5-haiku-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. Empty means no
	// credentials are available and the fallback frontmatter is used.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds one API call. The pipeline never waits on the
	// service longer than this.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// FrontmatterConfig holds settings for frontmatter generation: the AI call
// parameters, the sample-text budget, and the fallback content substituted
// when the service is unavailable or returns an unusable response.
type FrontmatterConfig struct {
	AIConfig `yaml:",inline"`

	// MaxSampleChars is the byte budget for the highlight sample sent to
	// the AI; longer samples are truncated with a marker appended.
	MaxSampleChars int `json:"max_sample_chars" yaml:"max_sample_chars"`

	// FallbackTags and FallbackDescription replace the generated content
	// on any service failure.
	FallbackTags        []string `json:"fallback_tags" yaml:"fallback_tags"`
	FallbackDescription string   `json:"fallback_description" yaml:"fallback_description"`
}

// DefaultFrontmatterConfig returns the frontmatter generation defaults.
func DefaultFrontmatterConfig() FrontmatterConfig {
	return FrontmatterConfig{
		AIConfig: AIConfig{
			Model:   "claude-3-5-haiku-latest",
			Timeout: 60 * time.Second,
		},
		MaxSampleChars:      1000,
		FallbackTags:        []string{"untagged", "needs_review"},
		FallbackDescription: "Description to be generated or manually entered.",
	}
}
