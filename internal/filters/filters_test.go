package filters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hhrutter/lzw"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"FlateDecode", "Fl", "LZWDecode", "ASCIIHexDecode", "A85", "RunLengthDecode", "CCITTFaxDecode", "DCTDecode"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) returned error: %v", name, err)
		}
	}

	_, err := Lookup("JBIG2Decode")
	if !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("expected ErrUnsupportedFilter, got %v", err)
	}
}

func TestIsImageFilter(t *testing.T) {
	if !IsImageFilter("DCTDecode") {
		t.Error("DCTDecode should be an image filter")
	}
	if IsImageFilter("FlateDecode") {
		t.Error("FlateDecode should not be an image filter")
	}
}

func TestASCIIHexDecode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"48656C6C6F>", "Hello"},
		{"48 65 6c\n6c 6f", "Hello"},
		{"414>", "A@"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ASCIIHexDecode([]byte(tt.in))
		if err != nil {
			t.Errorf("ASCIIHexDecode(%q) error: %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("ASCIIHexDecode(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	if _, err := ASCIIHexDecode([]byte("4G")); err == nil {
		t.Error("expected error for invalid digit")
	}
}

func TestASCII85Decode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"87cURD]i,\"Ebo80~>", "Hello World"},
		{"<~87cURD]i,\"Ebo80~>", "Hello World"},
		{"z~>", "\x00\x00\x00\x00"},
		{"87cUR~>", "Hell"},
	}
	for _, tt := range tests {
		got, err := ASCII85Decode([]byte(tt.in))
		if err != nil {
			t.Errorf("ASCII85Decode(%q) error: %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("ASCII85Decode(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	if _, err := ASCII85Decode([]byte("87cU{~>")); err == nil {
		t.Error("expected error for invalid character")
	}
}

func TestRunLengthDecode(t *testing.T) {
	in := []byte{2, 'a', 'b', 'c', 253, 'x', 128, 'z'}
	got, err := RunLengthDecode(in)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}
	if string(got) != "abcxxxx" {
		t.Errorf("expected %q, got %q", "abcxxxx", got)
	}

	if _, err := RunLengthDecode([]byte{5, 'a'}); err == nil {
		t.Error("expected error for truncated literal run")
	}
}

func TestLZWDecode(t *testing.T) {
	original := []byte("TOBEORNOTTOBEORTOBEORNOT TOBEORNOTTOBEORTOBEORNOT")

	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, true)
	w.Write(original)
	w.Close()

	got, err := LZWDecode(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("LZWDecode failed: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("expected %q, got %q", original, got)
	}
}
