package model

import (
	"math"
	"testing"
)

func TestCMYKFullBlack(t *testing.T) {
	for _, c := range []float64{0, 0.3, 1} {
		for _, m := range []float64{0, 0.5, 1} {
			for _, y := range []float64{0, 0.7, 1} {
				if got := CMYK(c, m, y, 1); got != Black {
					t.Errorf("CMYK(%v,%v,%v,1): expected black, got %v", c, m, y, got)
				}
			}
		}
	}
}

func TestCMYK(t *testing.T) {
	tests := []struct {
		c, m, y, k float64
		want       string
	}{
		{0, 0, 0, 0, "FFFFFF"},
		{0, 1, 1, 0, "FF0000"},
		{1, 0, 1, 0, "00FF00"},
		{0, 0, 0, 0.5, "808080"},
	}
	for _, tt := range tests {
		if got := CMYK(tt.c, tt.m, tt.y, tt.k).Hex(); got != tt.want {
			t.Errorf("CMYK(%v,%v,%v,%v): expected %s, got %s", tt.c, tt.m, tt.y, tt.k, tt.want, got)
		}
	}
}

func TestGray(t *testing.T) {
	for i := 0; i <= 100; i++ {
		g := float64(i) / 100
		c := Gray(g)
		want := uint8(math.Round(g * 255))
		if c.R != want || c.G != want || c.B != want {
			t.Errorf("Gray(%v): expected all channels %d, got %v", g, want, c)
		}
	}
}

func TestRGB(t *testing.T) {
	if got := RGB(1, 0, 0).Hex(); got != "FF0000" {
		t.Errorf("expected FF0000, got %s", got)
	}
	if got := RGB(2, -1, math.NaN()); got != (Color{R: 255}) {
		t.Errorf("expected clamped red, got %v", got)
	}
	if RGB(0.2, 0.4, 0.6) != RGB(0.2, 0.4, 0.6) {
		t.Error("expected identical results for identical input")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1A2b3C")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c != (Color{0x1a, 0x2b, 0x3c}) {
		t.Errorf("unexpected color %v", c)
	}
	if _, err := ParseHex("12345"); err == nil {
		t.Error("expected error for short input")
	}
}

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Multiply(Matrix{2, 0, 0, 2, 0, 0})
	p := m.Transform(Point{X: 1, Y: 1})
	if p.X != 22 || p.Y != 42 {
		t.Errorf("expected (22,42), got %v", p)
	}
	if s := (Matrix{0, 0, 0, 3, 0, 0}).VerticalScale(); s != 3 {
		t.Errorf("expected vertical scale 3, got %v", s)
	}
}

func TestDocumentFamilies(t *testing.T) {
	doc := &Document{Pages: []Page{
		{Paragraphs: []Paragraph{{Runs: []Run{{Text: "a", Format: Format{Family: "Arial"}}, {Text: "b", Format: Format{Family: "Courier New"}}}}}},
		{Paragraphs: []Paragraph{{Runs: []Run{{Text: "c", Format: Format{Family: "Arial"}}}}}},
	}}
	got := doc.Families()
	if len(got) != 2 || got[0] != "Arial" || got[1] != "Courier New" {
		t.Errorf("unexpected families %v", got)
	}
	if doc.Text() != "ab\nc\n" {
		t.Errorf("unexpected text %q", doc.Text())
	}
}
