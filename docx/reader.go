package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/pdfdocx/model"
)

// Reader provides access to the content of a DOCX package.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer

	types      *typesXML
	document   *documentXML
	styles     *stylesXML
	fonts      *fontTableXML
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	pages      [][]model.Paragraph
	pageBreaks int
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a DOCX package held in memory.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		return nil, err
	}
	r.types = &typesXML{}
	if err := r.unmarshal(contentTypesName, r.types); err != nil {
		return nil, fmt.Errorf("parsing content types: %w", err)
	}
	r.document = &documentXML{}
	if err := r.unmarshal(PartDocument, r.document); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	r.processParagraphs()

	// Optional parts
	if styles := (&stylesXML{}); r.unmarshal(PartStyles, styles) == nil {
		r.styles = styles
	}
	if fonts := (&fontTableXML{}); r.unmarshal(PartFontTable, fonts) == nil {
		r.fonts = fonts
	}
	if core := (&corePropertiesXML{}); r.unmarshal(PartCore, core) == nil {
		r.coreProps = core
	}
	if app := (&appPropertiesXML{}); r.unmarshal(PartApp, app) == nil {
		r.appProps = app
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	for _, name := range []string{contentTypesName, "_rels/.rels", PartDocument} {
		if r.getFile(name) == nil {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) unmarshal(name string, v interface{}) error {
	data, err := r.getFileContent(name)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

// Files returns the archive entry names in archive order.
func (r *Reader) Files() []string {
	names := make([]string, len(r.zipReader.File))
	for i, f := range r.zipReader.File {
		names[i] = f.Name
	}
	return names
}

// ContentType returns the declared content type of a part, from its
// override or its extension default.
func (r *Reader) ContentType(name string) string {
	name = strings.TrimPrefix(name, "/")
	for _, o := range r.types.Overrides {
		if strings.TrimPrefix(o.PartName, "/") == name {
			return o.ContentType
		}
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		for _, d := range r.types.Defaults {
			if strings.EqualFold(d.Extension, name[i+1:]) {
				return d.ContentType
			}
		}
	}
	return ""
}

// Relationships returns the relationships declared by source ("" for the
// package).
func (r *Reader) Relationships(source string) ([]Relationship, error) {
	var rels relationshipsXML
	if err := r.unmarshal(relsName(source), &rels); err != nil {
		return nil, err
	}
	out := make([]Relationship, len(rels.Relationships))
	for i, rel := range rels.Relationships {
		out[i] = Relationship{ID: rel.ID, Type: rel.Type, Target: rel.Target}
	}
	return out, nil
}

// Paragraphs returns every text paragraph in document order. Paragraphs
// that only carry a page break are not included.
func (r *Reader) Paragraphs() []model.Paragraph {
	var out []model.Paragraph
	for _, page := range r.pages {
		out = append(out, page...)
	}
	return out
}

// PageBreaks returns the number of page breaks in the body.
func (r *Reader) PageBreaks() int {
	return r.pageBreaks
}

// Text returns the document text, one line per paragraph.
func (r *Reader) Text() string {
	var sb strings.Builder
	for _, p := range r.Paragraphs() {
		sb.WriteString(p.Text())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Fonts returns the font table entries.
func (r *Reader) Fonts() []string {
	if r.fonts == nil {
		return nil
	}
	out := make([]string, len(r.fonts.Fonts))
	for i, f := range r.fonts.Fonts {
		out[i] = f.Name
	}
	return out
}

// StyleIDs returns the IDs of the defined styles.
func (r *Reader) StyleIDs() []string {
	if r.styles == nil {
		return nil
	}
	out := make([]string, len(r.styles.Styles))
	for i, s := range r.styles.Styles {
		out[i] = s.StyleID
	}
	return out
}

// PageSize returns the section page size in points.
func (r *Reader) PageSize() (width, height float64) {
	if r.document.Body == nil {
		return 0, 0
	}
	sz := r.document.Body.SectPr.PgSz
	return float64(sz.W) / twipsPerPoint, float64(sz.H) / twipsPerPoint
}

// Document returns the package content as a model.Document, split into
// pages at page breaks. Every page gets the section page size.
func (r *Reader) Document() *model.Document {
	doc := &model.Document{Metadata: r.Metadata()}
	w, h := r.PageSize()
	for i, paras := range r.pages {
		doc.Pages = append(doc.Pages, model.Page{Number: i + 1, Width: w, Height: h, Paragraphs: paras})
	}
	return doc
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Keywords = r.coreProps.Keywords
		meta.Created, _ = time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Created))
		meta.Modified, _ = time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Modified))
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// processParagraphs splits the body into pages and resolves run formats.
func (r *Reader) processParagraphs() {
	r.pages = [][]model.Paragraph{nil}
	if r.document.Body == nil {
		return
	}

	for _, p := range r.document.Body.Paragraphs {
		para, breaks := r.processParagraph(p)
		for i := 0; i < breaks; i++ {
			r.pages = append(r.pages, nil)
		}
		r.pageBreaks += breaks
		if len(para.Runs) == 0 {
			continue
		}
		last := len(r.pages) - 1
		r.pages[last] = append(r.pages[last], para)
	}
}

// processParagraph processes a single paragraph and counts its page breaks.
func (r *Reader) processParagraph(p paragraphXML) (model.Paragraph, int) {
	var para model.Paragraph
	breaks := 0
	for _, run := range p.Runs {
		for _, br := range run.Breaks {
			if br.Type == "page" {
				breaks++
			}
		}
		text := extractRunText(run)
		if text == "" {
			continue
		}
		para.Runs = append(para.Runs, model.Run{Text: text, Format: runFormat(run.Properties)})
	}
	return para, breaks
}

// extractRunText extracts text from a run element.
func extractRunText(run runXML) string {
	var parts []string
	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}
	for range run.Tabs {
		parts = append(parts, "\t")
	}
	for _, br := range run.Breaks {
		if br.Type == "" || br.Type == "textWrapping" {
			parts = append(parts, "\n")
		}
	}
	return strings.Join(parts, "")
}

func runFormat(props runPropsXML) model.Format {
	f := model.Format{
		Family: props.Font.ASCII,
		Bold:   props.Bold.on(),
		Italic: props.Italic.on(),
	}
	if f.Family == "" {
		f.Family = props.Font.HAnsi
	}
	if n, err := strconv.Atoi(props.FontSize.Val); err == nil {
		f.Size = float64(n) / 2
	}
	if c, err := model.ParseHex(props.Color.Val); err == nil {
		f.Color = c
	}
	return f
}
