package reader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/graphicsstate"
	"github.com/tsawler/pdfdocx/internal/filters"
	"github.com/tsawler/pdfdocx/internal/pdftest"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		want    Version
	}{
		{"valid", "%PDF-1.7\n...\n%%EOF\n", false, Version{1, 7}},
		{"leading junk", "garbage\n%PDF-2.0\n%%EOF", false, Version{2, 0}},
		{"no header", "hello %%EOF", true, Version{}},
		{"no eof", "%PDF-1.4\nstuff", true, Version{}},
		{"bad version", "%PDF-x.y\n%%EOF", true, Version{}},
		{"empty", "", true, Version{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Validate([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, core.ErrMalformedDocument) {
					t.Errorf("expected ErrMalformedDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.want {
				t.Errorf("expected %s, got %s", tt.want, v)
			}
		})
	}
}

func TestValidateSignatureWindow(t *testing.T) {
	late := strings.Repeat(" ", 2000) + "%PDF-1.4\n%%EOF"
	if _, err := Validate([]byte(late)); err == nil {
		t.Error("expected header past 1024 bytes to be rejected")
	}

	early := "%PDF-1.4\n%%EOF" + strings.Repeat(" ", 2000)
	if _, err := Validate([]byte(early)); err == nil {
		t.Errorf("expected %%EOF before the last 1024 bytes to be rejected")
	}
}

func TestParseDocument(t *testing.T) {
	data := pdftest.Document([]pdftest.Page{
		{Content: "BT /F1 12 Tf 100 700 Td (One) Tj ET"},
		{Content: "BT /F1 12 Tf 100 700 Td (Two) Tj ET", MediaBox: "[0 0 595 842]", Flate: true},
	})
	r, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if r.Version() != (Version{1, 4}) {
		t.Errorf("expected version 1.4, got %s", r.Version())
	}
	if r.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", r.PageCount())
	}
	if r.Catalog() == nil {
		t.Error("expected a catalog")
	}

	page, err := r.GetPage(1)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if w, h := page.Size(); w != 595 || h != 842 {
		t.Errorf("expected A4, got %vx%v", w, h)
	}
	content, errs := r.ContentStream(page)
	if len(errs) != 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	if string(content) != "BT /F1 12 Tf 100 700 Td (Two) Tj ET" {
		t.Errorf("unexpected content %q", content)
	}

	if _, err := r.GetPage(2); err == nil {
		t.Error("expected out of range error")
	}

	stats := r.Stats()
	if stats.Streams != 2 || stats.CompressedStreams != 1 || stats.Filters["FlateDecode"] != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	_, err := ParseDocument([]byte("%PDF-1.4\nnothing here\n%%EOF\n"))
	if !errors.Is(err, core.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestParseDocumentRecoversBrokenXRef(t *testing.T) {
	b := pdftest.New()
	b.Add("<< /Type /Catalog /Pages 2 0 R >>")
	b.Add("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.Add("<< /Type /Page /Parent 2 0 R /Contents 4 0 R >>")
	b.AddStream("", []byte("BT (x) Tj ET"))
	b.SetRoot(1)

	r, err := ParseDocument(b.BytesBrokenXRef())
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if !r.Table().Recovered() {
		t.Error("expected the table to come from recovery")
	}
	if r.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", r.PageCount())
	}
}

func TestPagesWithoutCatalog(t *testing.T) {
	b := pdftest.New()
	b.Add("<< /Type /Page /Contents 2 0 R >>")
	b.AddStream("", []byte("BT (orphan) Tj ET"))

	r, err := ParseDocument(b.Bytes())
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if r.Catalog() != nil {
		t.Error("expected no catalog")
	}
	if r.PageCount() != 1 {
		t.Errorf("expected the page object to be found by scanning, got %d", r.PageCount())
	}
}

func TestContentStreamUnsupportedFilter(t *testing.T) {
	b := pdftest.New()
	b.Add("<< /Type /Catalog /Pages 2 0 R >>")
	b.Add("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.Add("<< /Type /Page /Parent 2 0 R /Contents [4 0 R 5 0 R] >>")
	b.AddStream("/Filter /JBIG2Decode", []byte("opaque"))
	b.AddStream("", []byte("BT (kept) Tj ET"))
	b.SetRoot(1)

	r, err := ParseDocument(b.Bytes())
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	page, _ := r.GetPage(0)
	content, errs := r.ContentStream(page)
	if string(content) != "BT (kept) Tj ET" {
		t.Errorf("expected the decodable stream only, got %q", content)
	}
	if len(errs) != 1 || !errors.Is(errs[0], filters.ErrUnsupportedFilter) {
		t.Errorf("expected one ErrUnsupportedFilter, got %v", errs)
	}
}

func TestExtractTextFragments(t *testing.T) {
	data := pdftest.Document(
		[]pdftest.Page{{Content: "BT /F1 12 Tf 100 700 Td (Hello World) Tj ET"}},
		pdftest.Font{Resource: "F1", BaseFont: "Times-Bold"},
	)
	r, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	page, _ := r.GetPage(0)
	frags, errs := r.ExtractTextFragments(page, graphicsstate.DefaultConfig(), font.Resolver{})
	if len(errs) != 0 {
		t.Errorf("unexpected diagnostics %v", errs)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	f := frags[0]
	if f.Text != "Hello World" || f.Format.Family != "Times New Roman" || !f.Format.Bold || f.Format.Size != 12 {
		t.Errorf("unexpected fragment %+v", f)
	}
}

func TestInfo(t *testing.T) {
	b := pdftest.New()
	b.Add("<< /Type /Catalog /Pages 2 0 R >>")
	b.Add("<< /Type /Pages /Kids [] /Count 0 >>")
	info := b.Add("<< /Title (Quarterly Report) /Author <FEFF004A006F> /CreationDate (D:20240131120000+01'00') >>")
	b.SetRoot(1)
	b.SetInfo(info)

	r, err := ParseDocument(b.Bytes())
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	m := r.Info()
	if m.Title != "Quarterly Report" {
		t.Errorf("unexpected title %q", m.Title)
	}
	if m.Author != "Jo" {
		t.Errorf("expected UTF-16 author 'Jo', got %q", m.Author)
	}
	want := time.Date(2024, 1, 31, 11, 0, 0, 0, time.UTC)
	if !m.Created.Equal(want) {
		t.Errorf("expected %v, got %v", want, m.Created)
	}
	if !m.Modified.IsZero() {
		t.Error("expected zero modification time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"D:2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"D:20230615", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"20230615083000Z", time.Date(2023, 6, 15, 8, 30, 0, 0, time.UTC)},
		{"D:20230615083000-05'30'", time.Date(2023, 6, 15, 14, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if _, err := ParseDate("D:x"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, pdftest.SinglePage("BT (x) Tj ET"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if r.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", r.PageCount())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
