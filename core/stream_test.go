package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tsawler/pdfdocx/internal/filters"
	"github.com/tsawler/pdfdocx/internal/pdftest"
)

func TestStreamDecodeFlate(t *testing.T) {
	original := []byte("BT /F1 12 Tf 100 700 Td (Hello World) Tj ET")
	s := NewStream(Dict{"Filter": Name("FlateDecode")}, pdftest.Deflate(original))

	got, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("expected %q, got %q", original, got)
	}
}

func TestStreamDecodeIdempotent(t *testing.T) {
	s := NewStream(Dict{}, []byte("plain"))
	first, _ := s.Decode()
	second, _ := s.Decode()
	if string(first) != "plain" || string(second) != "plain" {
		t.Errorf("expected unfiltered data unchanged, got %q then %q", first, second)
	}
}

func TestStreamDecodeChain(t *testing.T) {
	hex := []byte("48656c6c6f>")
	s := NewStream(Dict{"Filter": Array{Name("AHx")}}, hex)
	got, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(got) != "Hello" {
		t.Errorf("expected Hello, got %q", got)
	}
}

func TestStreamDecodeUnsupported(t *testing.T) {
	s := NewStream(Dict{"Filter": Name("JBIG2Decode")}, []byte{1, 2, 3})
	_, err := s.Decode()
	if !errors.Is(err, filters.ErrUnsupportedFilter) {
		t.Errorf("expected ErrUnsupportedFilter, got %v", err)
	}
	if names := s.Filters(); len(names) != 1 || names[0] != "JBIG2Decode" {
		t.Errorf("unexpected filters %v", names)
	}
}

func TestStreamDecodeParmsArray(t *testing.T) {
	rows := []byte{0, 1, 2, 2, 1, 1}
	s := NewStream(Dict{
		"Filter":      Array{Name("FlateDecode")},
		"DecodeParms": Array{Dict{"Predictor": Int(12), "Columns": Int(2)}},
	}, pdftest.Deflate(rows))
	got, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []byte{1, 2, 2, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
