// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// Kindle export class names.
const (
	classBookTitle      = "bookTitle"
	classAuthors        = "authors"
	classSectionHeading = "sectionHeading"
	classNoteHeading    = "noteHeading"
	classNoteText       = "noteText"
)

// Parse reads a Kindle HTML notebook export and returns the book metadata
// plus the ordered record sequence. Malformed headings never abort the
// parse; they degrade to UnknownHeading records. Missing title or author
// elements degrade to sentinel strings.
func Parse(r io.Reader) (*types.Notebook, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	nb := &types.Notebook{
		Title:  types.UnknownTitle,
		Author: types.UnknownAuthor,
	}
	if n := findByClass(doc, "div", classBookTitle); n != nil {
		if t := textContent(n); t != "" {
			nb.Title = t
		}
	}
	if n := findByClass(doc, "div", classAuthors); n != nil {
		if a := textContent(n); a != "" {
			nb.Author = a
		}
	}

	root := doc
	if body := findBody(doc); body != nil {
		root = body
	}
	items := collectItems(root)

	for i, n := range items {
		switch {
		case n.Data == "hr":
			// Decorative separator, contributes nothing.
		case hasClass(n, classSectionHeading):
			nb.Records = append(nb.Records, types.SectionHeader{Text: textContent(n)})
		case hasClass(n, classNoteHeading):
			nb.Records = append(nb.Records, headingRecord(n, followingNoteText(items, i)))
		}
	}
	return nb, nil
}

// headingRecord classifies one note heading element. The classifier sees
// the heading's markup form so the color span survives; the plain rendered
// text is kept for fallback rendering.
func headingRecord(n *html.Node, text string) types.Record {
	plain := textContent(n)
	h, ok := ParseHeading(strings.TrimSpace(headingMarkup(n)))
	if !ok {
		return types.UnknownHeading{OriginalHeading: plain, Text: text}
	}
	return types.Annotation{
		Color:           h.Color,
		Chapter:         h.Chapter,
		Page:            h.Page,
		Location:        h.Location,
		Text:            text,
		OriginalHeading: plain,
	}
}

// followingNoteText returns the rendered text of the first noteText element
// after items[i], or "" when a heading or separator intervenes first.
func followingNoteText(items []*html.Node, i int) string {
	for _, n := range items[i+1:] {
		switch {
		case hasClass(n, classNoteText):
			return textContent(n)
		case n.Data == "hr", hasClass(n, classSectionHeading), hasClass(n, classNoteHeading):
			return ""
		}
	}
	return ""
}

// collectItems gathers the block-level elements the walker cares about, in
// document order. Matched elements are not descended into.
func collectItems(root *html.Node) []*html.Node {
	var items []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "hr":
				items = append(items, n)
				return
			case n.Data == "div" && (hasClass(n, classSectionHeading) ||
				hasClass(n, classNoteHeading) || hasClass(n, classNoteText)):
				items = append(items, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return items
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// headingMarkup serializes the children of n with embedded element markup
// intact but text left unescaped. html.Render is unsuitable here: it would
// escape the ">" chapter terminator to "&gt;", which the heading pattern
// must see literally, while the color span has to stay in markup form.
func headingMarkup(n *html.Node) string {
	var buf strings.Builder
	var write func(*html.Node)
	write = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			buf.WriteString("<")
			buf.WriteString(n.Data)
			for _, a := range n.Attr {
				fmt.Fprintf(&buf, " %s=%q", a.Key, a.Val)
			}
			buf.WriteString(">")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				write(c)
			}
			buf.WriteString("</")
			buf.WriteString(n.Data)
			buf.WriteString(">")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		write(c)
	}
	return buf.String()
}
