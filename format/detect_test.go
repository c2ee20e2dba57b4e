package format

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{ZIP, "ZIP"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func zipWith(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"pdf after junk", append(bytes.Repeat([]byte{' '}, 100), "%PDF-1.4"...), PDF},
		{"pdf beyond window", append(bytes.Repeat([]byte{' '}, 2000), "%PDF-1.4"...), Unknown},
		{"docx", zipWith(t, map[string]string{"[Content_Types].xml": "", "word/document.xml": ""}), DOCX},
		{"xlsx", zipWith(t, map[string]string{"xl/workbook.xml": ""}), XLSX},
		{"pptx", zipWith(t, map[string]string{"ppt/presentation.xml": ""}), PPTX},
		{"odt", zipWith(t, map[string]string{"mimetype": "application/vnd.oasis.opendocument.text"}), ODT},
		{"plain zip", zipWith(t, map[string]string{"readme.txt": "hi"}), ZIP},
		{"broken zip", []byte("PK\x03\x04garbage"), Unknown},
		{"html", []byte("  <!DOCTYPE html><html></html>"), HTML},
		{"xhtml", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"></html>`), HTML},
		{"text", []byte(strings.Repeat("hello ", 10)), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
