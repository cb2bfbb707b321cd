// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter generates the tags and description for the output
// document header. Generation is a best-effort call to the Anthropic API;
// every failure path substitutes a fixed fallback so the conversion always
// completes.
package frontmatter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// Generator abstracts the text-completion service so tests can supply a
// mock. Implementations return an error for any transport, credential, or
// response-shape problem; callers never retry, they fall back.
type Generator interface {
	Generate(ctx context.Context, title, sample string) (types.Frontmatter, error)
}

// truncationMarker is appended to the sample when it exceeds the budget.
const truncationMarker = "\n... (truncated)"

// SampleText concatenates the annotation texts in record order, separated
// by blank lines, as context for the generator. Samples longer than
// maxChars bytes are cut on a rune boundary with a marker appended; the
// second return value reports whether truncation happened.
func SampleText(records []types.Record, maxChars int) (string, bool) {
	var texts []string
	for _, rec := range records {
		switch r := rec.(type) {
		case types.Annotation:
			if r.Text != "" {
				texts = append(texts, r.Text)
			}
		case types.UnknownHeading:
			if r.Text != "" {
				texts = append(texts, r.Text)
			}
		}
	}

	sample := strings.Join(texts, "\n\n")
	if maxChars <= 0 || len(sample) <= maxChars {
		return sample, false
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(sample[cut]) {
		cut--
	}
	return sample[:cut] + truncationMarker, true
}

// BuildPrompt creates the completion prompt for one book.
func BuildPrompt(title, sample string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Given the book title '%s' and the following sample highlights:\n\n", title)
	sb.WriteString(sample)
	sb.WriteString("\n\n")
	sb.WriteString("Please generate appropriate metadata for a Markdown note. I need:\n")
	sb.WriteString("1. A list of 5-7 relevant tags (e.g., history, revolution).\n")
	sb.WriteString("2. A concise description (2-3 sentences) of the book's content based on the title and highlights.\n")
	sb.WriteString("Return the output as a JSON object with keys 'tags' (a list of strings) and 'description' (a string).\n")
	sb.WriteString("Remember: return NOTHING but the JSON object.")
	return sb.String()
}

// Enrich runs the generator and applies the configured fallback on any
// failure, writing a diagnostic line to w. A nil generator means no
// credentials were available; that also selects the fallback. Enrich never
// returns an error: frontmatter generation is never fatal to a conversion.
func Enrich(ctx context.Context, g Generator, title, sample string, cfg types.FrontmatterConfig, w io.Writer) types.Frontmatter {
	if g == nil {
		fmt.Fprintln(w, "warning: no Anthropic API key configured, using fallback frontmatter")
		return Fallback(cfg)
	}
	fm, err := g.Generate(ctx, title, sample)
	if err != nil {
		fmt.Fprintf(w, "warning: frontmatter generation failed (%v), using fallback\n", err)
		return Fallback(cfg)
	}
	return fm
}

// Fallback returns the fixed frontmatter content from cfg. The tag slice is
// copied so callers can never alias the configuration.
func Fallback(cfg types.FrontmatterConfig) types.Frontmatter {
	return types.Frontmatter{
		Tags:        append([]string(nil), cfg.FallbackTags...),
		Description: cfg.FallbackDescription,
	}
}
