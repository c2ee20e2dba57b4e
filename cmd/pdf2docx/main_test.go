package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tsawler/pdfdocx/docx"
	"github.com/tsawler/pdfdocx/internal/pdftest"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"1", []int{1}, false},
		{"1,3-5", []int{1, 3, 4, 5}, false},
		{" 2 , 4 - 5 ", []int{2, 4, 5}, false},
		{"3-3", []int{3}, false},
		{"5-3", nil, true},
		{"0", nil, true},
		{"a", nil, true},
		{"1-", nil, true},
		{",", nil, true},
		{"11", nil, true},
		{"1-2000000000", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePages(tt.in, 10)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePages(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePages(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parsePages(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(in, pdftest.SinglePage("BT /F1 12 Tf 72 700 Td (Hello) Tj ET"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := run([]string{in}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	r, err := docx.Open(filepath.Join(dir, "in.docx"))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if got := r.Text(); got != "Hello\n" {
		t.Errorf("expected %q, got %q", "Hello\n", got)
	}
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(bad, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "good.pdf")
	if err := os.WriteFile(good, pdftest.SinglePage(""), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, exitInput},
		{"malformed input", []string{bad}, exitInput},
		{"missing file", []string{filepath.Join(dir, "missing.pdf")}, exitInput},
		{"page out of range", []string{"-pages", "2", good}, exitInput},
		{"bad page list", []string{"-pages", "x", good}, exitInput},
		{"huge page range", []string{"-pages", "1-2000000000", good}, exitInput},
		{"invalid workers", []string{"-workers", "0", good}, exitInput},
		{"unwritable output", []string{"-o", filepath.Join(dir, "nodir", "out.docx"), good}, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("expected exit %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDumpObject(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.pdf")
	if err := os.WriteFile(in, pdftest.SinglePage("BT ET"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := run([]string{"-dump", "1", in}); code != 0 {
		t.Errorf("expected exit 0 for the catalog, got %d", code)
	}
	if code := run([]string{"-dump", "99", in}); code != exitInput {
		t.Errorf("expected exit %d for a missing object, got %d", exitInput, code)
	}
}
