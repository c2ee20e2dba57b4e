// Package pdftest assembles small PDF files for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Builder collects object bodies and serializes them with a correct
// cross-reference table.
type Builder struct {
	bodies [][]byte
	root   int
	info   int
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Add appends an object body such as "<< /Type /Catalog >>" and returns
// its object number.
func (b *Builder) Add(body string) int {
	b.bodies = append(b.bodies, []byte(body))
	return len(b.bodies)
}

// Reserve allocates an object number to be filled in later with Set.
func (b *Builder) Reserve() int {
	return b.Add("null")
}

// Set replaces the body of object num.
func (b *Builder) Set(num int, body string) {
	b.bodies[num-1] = []byte(body)
}

// AddStream appends a stream object. extra holds additional dictionary
// entries; /Length is added automatically.
func (b *Builder) AddStream(extra string, data []byte) int {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<< /Length %d %s>>\nstream\n", len(data), extra)
	buf.Write(data)
	buf.WriteString("\nendstream")
	b.bodies = append(b.bodies, buf.Bytes())
	return len(b.bodies)
}

// AddFlateStream appends a FlateDecode compressed stream.
func (b *Builder) AddFlateStream(extra string, data []byte) int {
	return b.AddStream("/Filter /FlateDecode "+extra, Deflate(data))
}

// SetRoot sets the catalog object number written to the trailer.
func (b *Builder) SetRoot(num int) { b.root = num }

// SetInfo sets the document information dictionary.
func (b *Builder) SetInfo(num int) { b.info = num }

// Bytes serializes the file with a classic xref table.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.bodies))
	for i, body := range b.bodies {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(b.bodies)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", b.trailer(), xref)
	return buf.Bytes()
}

// BytesBrokenXRef serializes the file with a startxref pointer that does not
// lead to a cross-reference table, forcing readers into recovery.
func (b *Builder) BytesBrokenXRef() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	for i, body := range b.bodies {
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
	}
	fmt.Fprintf(&buf, "trailer\n%s\nstartxref\n999999\n%%%%EOF\n", b.trailer())
	return buf.Bytes()
}

func (b *Builder) trailer() string {
	parts := []string{fmt.Sprintf("/Size %d", len(b.bodies)+1)}
	if b.root > 0 {
		parts = append(parts, fmt.Sprintf("/Root %d 0 R", b.root))
	}
	if b.info > 0 {
		parts = append(parts, fmt.Sprintf("/Info %d 0 R", b.info))
	}
	return "<< " + strings.Join(parts, " ") + " >>"
}

// Deflate compresses data with zlib framing.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// Page describes one page for Document.
type Page struct {
	Content  string
	MediaBox string // defaults to "[0 0 612 792]"; "-" omits it
	Flate    bool
}

// Font describes a font resource shared by every page.
type Font struct {
	Resource string // e.g. "F1"
	BaseFont string // e.g. "Helvetica-Bold"
}

// Document builds a complete file with the given pages and fonts. When no
// fonts are given, /F1 is Helvetica.
func Document(pages []Page, fonts ...Font) []byte {
	b := New()
	catalog := b.Reserve()
	tree := b.Reserve()

	if len(fonts) == 0 {
		fonts = []Font{{Resource: "F1", BaseFont: "Helvetica"}}
	}
	var fontDict strings.Builder
	for _, f := range fonts {
		num := b.Add(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s >>", f.BaseFont))
		fmt.Fprintf(&fontDict, "/%s %d 0 R ", f.Resource, num)
	}

	var kids []string
	for _, pg := range pages {
		var content int
		if pg.Flate {
			content = b.AddFlateStream("", []byte(pg.Content))
		} else {
			content = b.AddStream("", []byte(pg.Content))
		}
		box := pg.MediaBox
		switch box {
		case "":
			box = "/MediaBox [0 0 612 792] "
		case "-":
			box = ""
		default:
			box = "/MediaBox " + box + " "
		}
		num := b.Add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R %s/Resources << /Font << %s>> >> /Contents %d 0 R >>",
			tree, box, fontDict.String(), content))
		kids = append(kids, fmt.Sprintf("%d 0 R", num))
	}

	b.Set(tree, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids)))
	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", tree))
	b.SetRoot(catalog)
	return b.Bytes()
}

// SinglePage builds a one-page US Letter document with /F1 = Helvetica.
func SinglePage(content string) []byte {
	return Document([]Page{{Content: content}})
}
