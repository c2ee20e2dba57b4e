// Package format identifies the kind of document held in a byte slice, so
// that inputs which are not PDF can be reported by what they are.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// XLSX indicates a Microsoft Excel (.xlsx) document.
	XLSX
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
	// ZIP indicates a ZIP archive of no recognized document format.
	ZIP
	// HTML indicates an HTML document.
	HTML
)

// signatureWindow is how far into the data a PDF header may start.
const signatureWindow = 1024

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ZIP:
		return "ZIP"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect inspects data to determine its format. ZIP archives are opened to
// tell the office formats apart.
func Detect(data []byte) Format {
	window := data[:min(len(data), signatureWindow)]
	if bytes.Contains(window, []byte("%PDF-")) {
		return PDF
	}
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return detectZIP(data)
	}
	if isHTML(window) {
		return HTML
	}
	return Unknown
}

func isHTML(data []byte) bool {
	upper := strings.ToUpper(strings.TrimLeft(string(data), " \t\r\n"))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"), strings.HasPrefix(upper, "<HTML"):
		return true
	case strings.HasPrefix(upper, "<?XML"):
		return strings.Contains(upper, "<HTML")
	}
	return false
}

func detectZIP(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		mimeType, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if strings.HasPrefix(string(mimeType), "application/vnd.oasis.opendocument.text") {
			return ODT
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX
		}
	}
	return ZIP
}
