package model

import (
	"strings"
	"time"
)

// Default page size, US Letter in points.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// Format is the character formatting shared by every fragment of a run.
type Format struct {
	Family string
	Size   float64
	Color  Color
	Bold   bool
	Italic bool
}

// TextFragment is one piece of text shown by a content stream, with the
// graphics state that was current when it was shown. X and Y are in user
// space points with the origin at the bottom-left.
type TextFragment struct {
	Text   string
	X, Y   float64
	Width  float64 // horizontal advance in user space, 0 when unknown
	Format Format

	// FontResource is the resource name used with Tf, e.g. "F1".
	FontResource string
	// BaseFont is the PDF /BaseFont of that resource.
	BaseFont string
}

// Run is text with a single format.
type Run struct {
	Text   string
	Format Format
}

// Paragraph is an ordered sequence of runs.
type Paragraph struct {
	Runs []Run
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Page is one converted page.
type Page struct {
	Number     int // 1-based
	Width      float64
	Height     float64
	Paragraphs []Paragraph
}

// Metadata is copied from the PDF document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	Created  time.Time
	Modified time.Time
}

// Document is the reconstructed document.
type Document struct {
	Metadata Metadata
	Pages    []Page
}

// Paragraphs returns the paragraphs of all pages in order.
func (d *Document) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, p := range d.Pages {
		out = append(out, p.Paragraphs...)
	}
	return out
}

// Families returns the distinct font families used by any run, in first
// use order.
func (d *Document) Families() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range d.Pages {
		for _, para := range p.Paragraphs {
			for _, r := range para.Runs {
				if r.Format.Family != "" && !seen[r.Format.Family] {
					seen[r.Format.Family] = true
					out = append(out, r.Format.Family)
				}
			}
		}
	}
	return out
}

// Text returns the document text, one line per paragraph.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Paragraphs() {
		sb.WriteString(p.Text())
		sb.WriteByte('\n')
	}
	return sb.String()
}
