package pdfdocx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/docx"
	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/format"
	"github.com/tsawler/pdfdocx/graphicsstate"
	"github.com/tsawler/pdfdocx/layout"
	"github.com/tsawler/pdfdocx/model"
	"github.com/tsawler/pdfdocx/pages"
	"github.com/tsawler/pdfdocx/reader"
)

// MediaType is the media type of the converted output.
const MediaType = docx.MediaType

// Document is a parsed PDF. It is read-only and safe for concurrent
// conversions.
type Document struct {
	r *reader.Reader
}

// ParseDocument parses a PDF held in memory. It fails with
// ErrMalformedDocument when the input is not a PDF or nothing can be
// recovered from it.
func ParseDocument(data []byte) (*Document, error) {
	r, err := reader.ParseDocument(data)
	if err != nil {
		if f := format.Detect(data); f != format.PDF && f != format.Unknown {
			err = fmt.Errorf("%w: input is %s, not PDF", err, f)
		}
		return nil, newConvertError("ParseDocument", err)
	}
	return &Document{r: r}, nil
}

// Open reads and parses a PDF file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, newConvertError("Open", err)
	}
	return ParseDocument(data)
}

// Reader returns the underlying PDF reader.
func (d *Document) Reader() *reader.Reader { return d.r }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.r.PageCount() }

// Metadata returns the document information dictionary.
func (d *Document) Metadata() model.Metadata { return d.r.Info() }

// Stats summarizes the objects and compression of the file.
func (d *Document) Stats() core.Stats { return d.r.Stats() }

// Convert converts doc to a DOCX package. Warnings describe content that
// was skipped or decoded lossily; they never make the conversion fail.
func Convert(doc *Document, opts ...Option) ([]byte, []Warning, error) {
	o := applyOptions(opts)
	m, warnings, err := doc.reconstruct(o)
	if err != nil {
		return nil, warnings, newConvertError("Convert", err)
	}

	pkg, err := docx.Build(m, docx.Options{PageBreaks: o.config.PageBreaks})
	if err != nil {
		return nil, warnings, newConvertError("Convert", err)
	}
	data, err := pkg.Bytes()
	if err != nil {
		return nil, warnings, newConvertError("Convert", err)
	}
	o.log.Debug("package written", "bytes", len(data), "warnings", len(warnings))
	return data, warnings, nil
}

// ConvertBytes parses and converts a PDF held in memory.
func ConvertBytes(data []byte, opts ...Option) ([]byte, []Warning, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}
	return Convert(doc, opts...)
}

// ConvertFile converts the PDF at in and writes the package to out. The
// output is written to a temporary file in the same directory and renamed
// into place, so out is never left partially written. A new file gets mode
// 0644; an existing one keeps its mode.
func ConvertFile(in, out string, opts ...Option) ([]Warning, error) {
	doc, err := Open(in)
	if err != nil {
		return nil, err
	}
	return doc.ConvertTo(out, opts...)
}

// ConvertTo converts the document and writes the package to out the same
// way ConvertFile does.
func (d *Document) ConvertTo(out string, opts ...Option) ([]Warning, error) {
	data, warnings, err := Convert(d, opts...)
	if err != nil {
		return warnings, err
	}
	if err := writeFileAtomic(out, data); err != nil {
		return warnings, newConvertError("ConvertFile", fmt.Errorf("%w: %w", ErrConversion, err))
	}
	return warnings, nil
}

func writeFileAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(name); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// Reconstruct runs the conversion up to the document model without
// writing a package.
func (d *Document) Reconstruct(opts ...Option) (*model.Document, []Warning, error) {
	m, warnings, err := d.reconstruct(applyOptions(opts))
	if err != nil {
		return nil, warnings, newConvertError("Reconstruct", err)
	}
	return m, warnings, nil
}

type pageResult struct {
	page     model.Page
	warnings []Warning
}

func (d *Document) reconstruct(o *options) (*model.Document, []Warning, error) {
	if err := o.config.Validate(); err != nil {
		return nil, nil, err
	}
	indices, err := d.resolvePages(o.pages)
	if err != nil {
		return nil, nil, err
	}

	stats := d.Stats()
	o.log.Debug("converting document",
		"pages", len(indices),
		"objects", stats.Objects,
		"streams", stats.Streams,
		"compressed", stats.CompressedStreams,
		"filters", formatFilters(stats.Filters),
		"recovered", d.r.Table().Recovered())

	results := make([]pageResult, len(indices))
	g, ctx := errgroup.WithContext(o.ctx)
	g.SetLimit(o.config.Workers)
	for i, index := range indices {
		i, index := i, index
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.convertPage(o, index)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	m := &model.Document{Metadata: d.Metadata()}
	var warnings []Warning
	for _, res := range results {
		m.Pages = append(m.Pages, res.page)
		warnings = append(warnings, res.warnings...)
	}
	return m, warnings, nil
}

// convertPage extracts and lays out one page. It shares nothing mutable
// with other pages.
func (d *Document) convertPage(o *options, index int) pageResult {
	cfg := o.config
	number := index + 1
	page := d.r.Pages()[index]

	gs := graphicsstate.Config{FontSize: cfg.DefaultFontSize, Color: cfg.DefaultColor}
	fragments, errs := d.r.ExtractTextFragments(page, gs, font.NewResolver(cfg.FallbackFamily))

	var res pageResult
	for _, err := range errs {
		res.warnings = append(res.warnings, newWarning(number, err))
	}

	width, height := page.Size()
	res.page = layout.NewReconstructor(cfg.Layout).Page(number, fragments, width, height)
	if len(fragments) == 0 && o.ocr != nil {
		if p, ok := d.recognize(o, page, number, &res); ok {
			res.page.Paragraphs = append(res.page.Paragraphs, p)
		}
	}

	o.log.Debug("page converted",
		"page", number,
		"fragments", len(fragments),
		"paragraphs", len(res.page.Paragraphs),
		"warnings", len(res.warnings))
	return res
}

// recognize runs OCR on the first image of a page that produced no text.
// The recognized text becomes one paragraph with the default format.
func (d *Document) recognize(o *options, page *pages.Page, number int, res *pageResult) (model.Paragraph, bool) {
	images := d.r.PageImages(page)
	if len(images) == 0 {
		return model.Paragraph{}, false
	}

	png, err := images[0].ToPNG()
	if err != nil {
		res.warnings = append(res.warnings, Warning{Page: number, Kind: WarningOCR, Err: err})
		return model.Paragraph{}, false
	}
	text, err := o.ocr.Recognize(o.ctx, png)
	if err != nil {
		o.log.Error("OCR failed", "page", number, "err", err)
		res.warnings = append(res.warnings, Warning{Page: number, Kind: WarningOCR, Err: err})
		return model.Paragraph{}, false
	}
	text = strings.TrimSpace(font.Sanitize(text))
	if text == "" {
		return model.Paragraph{}, false
	}

	format := model.Format{
		Family: o.config.FallbackFamily,
		Size:   o.config.DefaultFontSize,
		Color:  o.config.DefaultColor,
	}
	return model.Paragraph{Runs: []model.Run{{Text: text, Format: format}}}, true
}

// resolvePages converts 1-based selections to sorted, unique indices.
func (d *Document) resolvePages(pages []int) ([]int, error) {
	count := d.PageCount()
	if len(pages) == 0 {
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, p := range pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("%w: page %d (document has %d)", ErrPageRange, p, count)
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

func formatFilters(filters map[string]int) string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%s=%d", name, filters[name])
	}
	return buf.String()
}
