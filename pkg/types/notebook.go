// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared domain types for the kindlenotes2md
// pipeline: the parsed notebook record variants, the frontmatter content,
// and the stage configuration structs.
package types

// Sentinel values substituted when a field cannot be determined, so
// downstream stages never branch on "missing".
const (
	UnknownTitle   = "Unknown Title"
	UnknownAuthor  = "Unknown Author"
	UnknownChapter = "Unknown Chapter"
	NoColor        = "no_color"
)

// RecordKind identifies the variant of a notebook Record.
type RecordKind string

const (
	KindSectionHeader  RecordKind = "section_header"
	KindAnnotation     RecordKind = "annotation"
	KindUnknownHeading RecordKind = "unknown_heading"
)

// Record is one entry extracted from the notebook export, in document order.
// Exactly three types implement it: SectionHeader, Annotation, and
// UnknownHeading. Records are built once by the walker and never mutated.
type Record interface {
	Kind() RecordKind
}

// SectionHeader is a structural marker grouping the annotations that follow
// it (typically a chapter boundary). It carries no annotation content.
type SectionHeader struct {
	Text string
}

func (SectionHeader) Kind() RecordKind { return KindSectionHeader }

// Annotation is a highlight or note whose heading matched the expected
// pattern. Page and Location are digit strings; the empty string means the
// token was absent from the heading (the pattern captures only digits, so
// "" is unambiguous). Color is NoColor when no highlight color marker was
// present; whether the record renders as a highlight or a note is decided
// at formatting time from the color alone.
type Annotation struct {
	Color    string
	Chapter  string
	Page     string
	Location string
	Text     string

	// OriginalHeading is the plain rendered heading text, kept for
	// fallback rendering when chapter, page, and location are all absent.
	OriginalHeading string
}

func (Annotation) Kind() RecordKind { return KindAnnotation }

// UnknownHeading is a note heading that did not match the expected pattern.
// It is rendered from its raw text; malformed headings never abort a run.
type UnknownHeading struct {
	OriginalHeading string
	Text            string
}

func (UnknownHeading) Kind() RecordKind { return KindUnknownHeading }

// Notebook is the full parse result for one export: the book metadata and
// the ordered record sequence.
type Notebook struct {
	Title   string
	Author  string
	Records []Record
}

// Frontmatter holds the generated metadata for the output document header.
type Frontmatter struct {
	Tags        []string `json:"tags" yaml:"tags"`
	Description string   `json:"description" yaml:"description"`
}
