// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats a parsed notebook into the final Markdown document:
// a YAML frontmatter block, a title heading, and one block per record.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// Document renders the notebook and frontmatter as a single Markdown
// string. Rendering is deterministic: records appear in sequence order,
// none skipped, one output block each.
func Document(nb *types.Notebook, fm types.Frontmatter) string {
	lines := frontmatterLines(nb, fm)
	lines = append(lines, "", "# "+strconv.Quote(nb.Title))
	for _, rec := range nb.Records {
		lines = append(lines, recordLines(rec)...)
	}
	return strings.Join(lines, "\n")
}

// frontmatterLines emits the delimited metadata block. Scalars and tag list
// items are quoted and multi-line descriptions use a block literal so the
// block stays parseable as YAML regardless of embedded metacharacters;
// consuming tools read it as structured data.
func frontmatterLines(nb *types.Notebook, fm types.Frontmatter) []string {
	lines := []string{
		"---",
		"bookTitle: " + strconv.Quote(nb.Title),
		"author: " + strconv.Quote(nb.Author),
		"tags:",
	}
	for _, tag := range fm.Tags {
		lines = append(lines, "  - "+strconv.Quote(tag))
	}
	if strings.Contains(fm.Description, "\n") {
		lines = append(lines, "description: |-")
		for _, l := range strings.Split(fm.Description, "\n") {
			lines = append(lines, "  "+l)
		}
	} else {
		lines = append(lines, "description: "+strconv.Quote(fm.Description))
	}
	return append(lines, "---")
}

func recordLines(rec types.Record) []string {
	switch r := rec.(type) {
	case types.SectionHeader:
		return []string{"## " + r.Text, ""}
	case types.Annotation:
		return annotationLines(r)
	case types.UnknownHeading:
		lines := []string{"### Note - " + r.OriginalHeading}
		if r.Text != "" {
			lines = append(lines, "> "+r.Text)
		}
		return append(lines, "")
	}
	return nil
}

func annotationLines(a types.Annotation) []string {
	var pieces []string
	if a.Chapter != "" && a.Chapter != types.UnknownChapter {
		pieces = append(pieces, a.Chapter)
	}
	if a.Page != "" {
		pieces = append(pieces, "Page "+a.Page)
	}
	if a.Location != "" {
		pieces = append(pieces, "Location "+a.Location)
	}

	heading := "### " + annotationLabel(a)
	if len(pieces) > 0 {
		heading += " - " + strings.Join(pieces, " · ")
	} else {
		// Nothing parseable to display; fall back to the raw heading.
		fallback := a.OriginalHeading
		if fallback == "" {
			fallback = "Details missing"
		}
		heading += " - " + fallback
	}

	lines := []string{heading}
	if a.Text != "" {
		lines = append(lines, "> "+a.Text)
	}
	return append(lines, "")
}

// annotationLabel decides the display kind. The presence of a highlight
// color alone makes a record render as a highlight; everything else renders
// as a note, including color-less records that carried a "Highlight"
// keyword in the source.
func annotationLabel(a types.Annotation) string {
	if a.Color != "" && a.Color != types.NoColor {
		return fmt.Sprintf("Highlight (%s)", a.Color)
	}
	return "Note"
}
