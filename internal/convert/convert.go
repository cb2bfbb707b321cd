// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates one notebook conversion: read the HTML
// export, parse it, enrich the frontmatter, render Markdown, and write the
// output file. The run is fully sequential; the only external wait is the
// frontmatter generation call, which is bounded and falls back on failure.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spokeyjoe/kindlenotes2md/internal/frontmatter"
	"github.com/spokeyjoe/kindlenotes2md/internal/notebook"
	"github.com/spokeyjoe/kindlenotes2md/internal/render"
	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// Run converts the export at inputPath into a Markdown note at outputPath,
// printing status lines to w. Input and output errors abort the run; parse
// and generation problems degrade and the run completes.
func Run(ctx context.Context, g frontmatter.Generator, cfg types.FrontmatterConfig, inputPath, outputPath string, w io.Writer) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", inputPath, err)
	}
	nb, err := notebook.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	sample, truncated := frontmatter.SampleText(nb.Records, cfg.MaxSampleChars)
	if truncated {
		fmt.Fprintf(w, "highlight sample truncated to %d characters\n", cfg.MaxSampleChars)
	} else if sample == "" {
		fmt.Fprintln(w, "no highlight text found; the generator will only see the title")
	}

	fm := frontmatter.Enrich(ctx, g, nb.Title, sample, cfg, w)

	doc := render.Document(nb, fm)
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", outputPath, err)
	}

	fmt.Fprintf(w, "converted %s to %s\n", inputPath, outputPath)
	return nil
}
