// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook parses a Kindle HTML notebook export into the ordered
// record sequence and book metadata used by the rest of the pipeline.
package notebook

import (
	"regexp"
	"strings"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// Heading holds the fields extracted from one note heading. Page and
// Location are digit strings, "" when the token was absent from the heading.
type Heading struct {
	Color    string
	Chapter  string
	Page     string
	Location string
}

// headingPattern matches a Kindle note heading anywhere in the raw heading
// markup. Examples:
//
//	Highlight(<span class="highlight_yellow">yellow</span>) - ChapterA > Page 4 · Location 34
//	Note - ChapterB > Page 10
//
// Only the dash-separated chapter name with its ">" terminator is mandatory.
// The type keyword, the color span, the page token, and the location token
// are each optional, so a keyword-less but otherwise well-formed heading
// still matches.
var headingPattern = regexp.MustCompile(
	`(?:Highlight|Note)?\s*` +
		`(?:\(<span class="highlight_(?P<color>\w+)">\w+</span>\))?\s*` +
		`-\s*(?P<chapter>[^>]+?)\s*>` +
		`(?:\s*Page\s*(?P<page>\d+))?` +
		`(?:\s*·\s*Location\s*(?P<location>\d+))?`)

var (
	colorIdx    = headingPattern.SubexpIndex("color")
	chapterIdx  = headingPattern.SubexpIndex("chapter")
	pageIdx     = headingPattern.SubexpIndex("page")
	locationIdx = headingPattern.SubexpIndex("location")
)

// ParseHeading extracts the annotation fields from a raw heading string.
// The raw string must carry the heading's inner markup, not its rendered
// text, because the highlight color is only visible in the span's class
// attribute. The second return value is false when the heading does not
// match the pattern at all; callers degrade such headings to
// UnknownHeading records.
func ParseHeading(raw string) (Heading, bool) {
	m := headingPattern.FindStringSubmatch(raw)
	if m == nil {
		return Heading{}, false
	}

	h := Heading{
		Color:    m[colorIdx],
		Chapter:  strings.TrimSpace(m[chapterIdx]),
		Page:     m[pageIdx],
		Location: m[locationIdx],
	}
	if h.Color == "" {
		h.Color = types.NoColor
	}
	if h.Chapter == "" {
		h.Chapter = types.UnknownChapter
	}
	return h, true
}
