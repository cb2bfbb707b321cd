// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// mockGenerator returns a canned frontmatter or a forced error.
type mockGenerator struct {
	fm    types.Frontmatter
	err   error
	calls int
}

func (m *mockGenerator) Generate(_ context.Context, _, _ string) (types.Frontmatter, error) {
	m.calls++
	if m.err != nil {
		return types.Frontmatter{}, m.err
	}
	return m.fm, nil
}

func testConfig() types.FrontmatterConfig {
	cfg := types.DefaultFrontmatterConfig()
	cfg.Model = "test-model"
	return cfg
}

func TestSampleText(t *testing.T) {
	records := []types.Record{
		types.SectionHeader{Text: "Part One"},
		types.Annotation{Chapter: "A", Text: "first"},
		types.Annotation{Chapter: "B", Text: ""},
		types.UnknownHeading{OriginalHeading: "odd", Text: "second"},
	}

	sample, truncated := SampleText(records, 1000)
	if truncated {
		t.Error("sample should not be truncated")
	}
	if sample != "first\n\nsecond" {
		t.Errorf("sample = %q", sample)
	}
}

func TestSampleTextExcludesSectionHeaders(t *testing.T) {
	records := []types.Record{
		types.SectionHeader{Text: "Part One"},
		types.SectionHeader{Text: "Part Two"},
	}
	sample, _ := SampleText(records, 1000)
	if sample != "" {
		t.Errorf("sample = %q, want empty for a document with no annotations", sample)
	}
}

func TestSampleTextTruncation(t *testing.T) {
	records := []types.Record{
		types.Annotation{Text: strings.Repeat("x", 50)},
	}
	sample, truncated := SampleText(records, 10)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if sample != strings.Repeat("x", 10)+"\n... (truncated)" {
		t.Errorf("sample = %q", sample)
	}
}

func TestSampleTextTruncationRuneBoundary(t *testing.T) {
	records := []types.Record{
		types.Annotation{Text: strings.Repeat("民", 20)}, // 3 bytes each
	}
	sample, truncated := SampleText(records, 10)
	if !truncated {
		t.Fatal("expected truncation")
	}
	cut := strings.TrimSuffix(sample, "\n... (truncated)")
	if cut != strings.Repeat("民", 3) {
		t.Errorf("cut sample = %q, want 3 whole runes", cut)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("The Long Game", "some highlights")

	for _, fragment := range []string{
		"'The Long Game'",
		"some highlights",
		"5-7 relevant tags",
		"'tags' (a list of strings) and 'description' (a string)",
		"NOTHING but the JSON object",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestEnrichSuccess(t *testing.T) {
	g := &mockGenerator{fm: types.Frontmatter{
		Tags:        []string{"history", "strategy"},
		Description: "A book.",
	}}
	var buf bytes.Buffer

	fm := Enrich(context.Background(), g, "Title", "sample", testConfig(), &buf)

	if g.calls != 1 {
		t.Errorf("generator called %d times, want 1", g.calls)
	}
	if len(fm.Tags) != 2 || fm.Description != "A book." {
		t.Errorf("fm = %+v", fm)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", buf.String())
	}
}

func TestEnrichFallsBackOnError(t *testing.T) {
	g := &mockGenerator{err: errors.New("service unreachable")}
	var buf bytes.Buffer
	cfg := testConfig()

	fm := Enrich(context.Background(), g, "Title", "sample", cfg, &buf)

	want := Fallback(cfg)
	if fm.Description != want.Description || strings.Join(fm.Tags, ",") != strings.Join(want.Tags, ",") {
		t.Errorf("fm = %+v, want fallback %+v", fm, want)
	}
	if !strings.Contains(buf.String(), "service unreachable") {
		t.Errorf("diagnostic missing cause: %q", buf.String())
	}
}

func TestEnrichFallsBackWithoutGenerator(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()

	fm := Enrich(context.Background(), nil, "Title", "sample", cfg, &buf)

	if fm.Description != cfg.FallbackDescription {
		t.Errorf("fm = %+v, want fallback", fm)
	}
	if !strings.Contains(buf.String(), "no Anthropic API key") {
		t.Errorf("diagnostic = %q", buf.String())
	}
}

func TestFallbackCopiesTags(t *testing.T) {
	cfg := testConfig()
	fm := Fallback(cfg)
	if len(fm.Tags) == 0 {
		t.Fatal("fallback tags empty")
	}
	fm.Tags[0] = "mutated"
	if cfg.FallbackTags[0] == "mutated" {
		t.Error("fallback tags alias the configuration")
	}
}
