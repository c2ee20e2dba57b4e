package reader

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/graphicsstate"
	"github.com/tsawler/pdfdocx/model"
	"github.com/tsawler/pdfdocx/pages"
	"github.com/tsawler/pdfdocx/text"
)

// signatureWindow is how far from either end of the file the header and
// the end-of-file marker may sit.
const signatureWindow = 1024

var (
	headerMarker = []byte("%PDF-")
	eofMarker    = []byte("%%EOF")
)

// Version is a PDF version.
type Version struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7").
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Validate checks the file signatures: a %PDF-x.y header in the first 1024
// bytes and a %%EOF marker in the last 1024.
func Validate(data []byte) (Version, error) {
	head := data
	if len(head) > signatureWindow {
		head = head[:signatureWindow]
	}
	i := bytes.Index(head, headerMarker)
	if i < 0 {
		return Version{}, fmt.Errorf("%w: missing %%PDF- header", core.ErrMalformedDocument)
	}

	tail := data
	if len(tail) > signatureWindow {
		tail = tail[len(tail)-signatureWindow:]
	}
	if !bytes.Contains(tail, eofMarker) {
		return Version{}, fmt.Errorf("%w: missing %%%%EOF marker", core.ErrMalformedDocument)
	}

	v, ok := parseVersion(data[i+len(headerMarker):])
	if !ok {
		return Version{}, fmt.Errorf("%w: invalid version in header", core.ErrMalformedDocument)
	}
	return v, nil
}

func parseVersion(b []byte) (Version, bool) {
	end := 0
	for end < len(b) && end < 8 && (b[end] == '.' || (b[end] >= '0' && b[end] <= '9')) {
		end++
	}
	major, minor, ok := bytes.Cut(b[:end], []byte("."))
	if !ok {
		return Version{}, false
	}
	maj, err1 := strconv.Atoi(string(major))
	mnr, err2 := strconv.Atoi(string(minor))
	if err1 != nil || err2 != nil {
		return Version{}, false
	}
	return Version{Major: maj, Minor: mnr}, true
}

// Reader is a parsed PDF document.
type Reader struct {
	data    []byte
	version Version
	table   *core.ObjectTable
	catalog core.Dict
	pages   []*pages.Page
}

// ParseDocument validates data and builds its object table. It fails with
// core.ErrMalformedDocument when the signatures are missing or no object
// can be recovered.
func ParseDocument(data []byte) (*Reader, error) {
	version, err := Validate(data)
	if err != nil {
		return nil, err
	}
	table, err := core.BuildObjectTable(data)
	if err != nil {
		return nil, err
	}

	r := &Reader{data: data, version: version, table: table}
	r.catalog, _ = table.ResolveDict(table.Trailer().Get("Root"))
	if r.catalog != nil {
		if v, ok := parseVersion([]byte(pages.NewCatalog(r.catalog, table).Version())); ok {
			r.version = v
		}
	}
	r.pages = r.loadPages()
	return r, nil
}

// Open reads a whole file and parses it.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseDocument(data)
}

// loadPages walks the page tree, falling back to scanning for page objects
// when the catalog or tree is unusable.
func (r *Reader) loadPages() []*pages.Page {
	if r.catalog != nil {
		if root, err := pages.NewCatalog(r.catalog, r.table).Pages(); err == nil {
			if list, err := pages.NewPageTree(root, r.table).Pages(); err == nil {
				return list
			}
		}
	}
	return pages.Scan(r.table)
}

// Data returns the raw file bytes.
func (r *Reader) Data() []byte { return r.data }

// Version returns the PDF version.
func (r *Reader) Version() Version { return r.version }

// Table returns the object table.
func (r *Reader) Table() *core.ObjectTable { return r.table }

// Trailer returns the trailer dictionary.
func (r *Reader) Trailer() core.Dict { return r.table.Trailer() }

// Catalog returns the document catalog, or nil when none was found.
func (r *Reader) Catalog() core.Dict { return r.catalog }

// Resolve follows indirect references.
func (r *Reader) Resolve(obj core.Object) core.Object { return r.table.Resolve(obj) }

// PageCount returns the number of pages found.
func (r *Reader) PageCount() int { return len(r.pages) }

// GetPage returns the page at index (0-based).
func (r *Reader) GetPage(index int) (*pages.Page, error) {
	if index < 0 || index >= len(r.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(r.pages))
	}
	return r.pages[index], nil
}

// Pages returns all pages in document order.
func (r *Reader) Pages() []*pages.Page { return r.pages }

// Stats summarizes the objects and compression of the file.
func (r *Reader) Stats() core.Stats { return r.table.Stats() }

// Info returns the document information dictionary as metadata. Missing
// entries are left empty.
func (r *Reader) Info() model.Metadata {
	var m model.Metadata
	info, ok := r.table.ResolveDict(r.Trailer().Get("Info"))
	if !ok {
		return m
	}
	str := func(key string) string {
		s, ok := r.table.Resolve(info.Get(key)).(core.String)
		if !ok {
			return ""
		}
		return font.DecodeText([]byte(s)).Text
	}
	m.Title = str("Title")
	m.Author = str("Author")
	m.Subject = str("Subject")
	m.Keywords = str("Keywords")
	m.Creator = str("Creator")
	m.Producer = str("Producer")
	m.Created, _ = ParseDate(str("CreationDate"))
	m.Modified, _ = ParseDate(str("ModDate"))
	return m
}

// ParseDate parses a PDF date string such as "D:20240131120000+01'00'".
// Trailing fields may be omitted.
func ParseDate(s string) (time.Time, error) {
	if len(s) >= 2 && s[:2] == "D:" {
		s = s[2:]
	}
	digits := 0
	for digits < len(s) && digits < 14 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 4 {
		return time.Time{}, fmt.Errorf("invalid PDF date %q", s)
	}

	field := func(from, to, def int) int {
		if to > digits {
			return def
		}
		n, _ := strconv.Atoi(s[from:to])
		return n
	}
	year := field(0, 4, 0)
	month := field(4, 6, 1)
	day := field(6, 8, 1)
	hour := field(8, 10, 0)
	minute := field(10, 12, 0)
	sec := field(12, 14, 0)

	loc := time.UTC
	if rest := s[digits:]; len(rest) >= 3 && (rest[0] == '+' || rest[0] == '-') {
		tzh, _ := strconv.Atoi(rest[1:3])
		tzm := 0
		if len(rest) >= 6 && rest[3] == '\'' {
			tzm, _ = strconv.Atoi(rest[4:6])
		}
		offset := tzh*3600 + tzm*60
		if rest[0] == '-' {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc), nil
}

// ContentStream returns the decoded content of a page, its streams joined
// by newlines. A stream that cannot be decoded contributes nothing and is
// reported in the second result; the error wraps the filter error.
func (r *Reader) ContentStream(page *pages.Page) ([]byte, []error) {
	var buf bytes.Buffer
	var errs []error
	for i, s := range page.Contents() {
		data, err := s.Decode()
		if err != nil {
			errs = append(errs, fmt.Errorf("content stream %d: %w", i, err))
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}
	return buf.Bytes(), errs
}

// ExtractTextFragments decodes a page's content and replays it with fonts
// from the page resources. The second result collects everything that was
// recovered from along the way.
func (r *Reader) ExtractTextFragments(page *pages.Page, cfg graphicsstate.Config, fonts font.Resolver) ([]model.TextFragment, []error) {
	content, errs := r.ContentStream(page)
	if len(content) == 0 {
		return nil, errs
	}

	ex := text.NewExtractor(cfg, fonts)
	ex.RegisterFonts(page.Resources(), r.table)
	fragments := ex.ExtractFromBytes(content)
	return fragments, append(errs, ex.Diagnostics()...)
}
