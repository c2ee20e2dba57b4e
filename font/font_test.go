package font

import (
	"math"
	"testing"

	"github.com/tsawler/pdfdocx/core"
)

func newTable(objs map[int]core.Object) *core.ObjectTable {
	var list []*core.IndirectObject
	for num, obj := range objs {
		list = append(list, &core.IndirectObject{Ref: core.IndirectRef{Number: num}, Object: obj})
	}
	return core.NewObjectTable(list, core.Dict{})
}

func TestLoadSimpleFontWidths(t *testing.T) {
	table := newTable(map[int]core.Object{
		7: core.Array{core.Int(250), core.Int(600), core.Int(700)},
	})
	dict := core.Dict{
		"Type":      core.Name("Font"),
		"Subtype":   core.Name("TrueType"),
		"BaseFont":  core.Name("ABCDEF+Arial-BoldMT"),
		"FirstChar": core.Int(32),
		"Widths":    core.IndirectRef{Number: 7},
		"Encoding":  core.Name("WinAnsiEncoding"),
	}
	f := Load("F1", dict, table, Resolver{})

	if f.Resolved != (Resolved{"Arial", true, false}) {
		t.Errorf("unexpected resolution %+v", f.Resolved)
	}
	glyphs := f.Glyphs([]byte(" AB"))
	want := []float64{0.25, 0.6, 0.7}
	for i, g := range glyphs {
		if math.Abs(g.Width-want[i]) > 1e-9 {
			t.Errorf("glyph %d: expected width %v, got %v", i, want[i], g.Width)
		}
	}
	if !glyphs[0].Space || glyphs[1].Space {
		t.Error("expected only code 32 to be a space")
	}

	// Code 0x43 is past the /Widths array and falls back to standard metrics.
	if w := f.Glyphs([]byte("C"))[0].Width; math.Abs(w-0.722) > 1e-9 {
		t.Errorf("expected Helvetica-Bold width 0.722, got %v", w)
	}
}

func TestLoadEncodingDifferences(t *testing.T) {
	dict := core.Dict{
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name("Times-Roman"),
		"Encoding": core.Dict{
			"BaseEncoding": core.Name("WinAnsiEncoding"),
			"Differences":  core.Array{core.Int(1), core.Name("fi"), core.Name("bullet")},
		},
	}
	f := Load("F2", dict, newTable(nil), Resolver{})
	got := f.Decode([]byte{1, 2, 0x93, 'a'})
	if got.Text != "ﬁ•“a" {
		t.Errorf("expected differences applied, got %q", got.Text)
	}
	if got.Strategy != StrategyEncoding {
		t.Errorf("expected encoding strategy, got %s", got.Strategy)
	}
}

func TestLoadToUnicode(t *testing.T) {
	cmap := core.NewStream(core.Dict{}, []byte(sampleCMap))
	table := newTable(map[int]core.Object{
		9:  cmap,
		10: core.Dict{"DW": core.Int(500), "W": core.Array{core.Int(0x11), core.Array{core.Int(722)}}},
	})
	dict := core.Dict{
		"Subtype":         core.Name("Type0"),
		"BaseFont":        core.Name("XYZABC+Calibri"),
		"Encoding":        core.Name("Identity-H"),
		"ToUnicode":       core.IndirectRef{Number: 9},
		"DescendantFonts": core.Array{core.IndirectRef{Number: 10}},
	}
	f := Load("F3", dict, table, Resolver{})

	got := f.Decode([]byte{0x00, 0x11, 0x00, 0x20})
	if got.Text != "Ha" || got.Strategy != StrategyToUnicode || got.Lossy {
		t.Errorf("unexpected decode %+v", got)
	}

	glyphs := f.Glyphs([]byte{0x00, 0x11, 0x00, 0x20})
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(glyphs))
	}
	if glyphs[0].Width != 0.722 || glyphs[1].Width != 0.5 {
		t.Errorf("expected widths 0.722 and 0.5, got %v and %v", glyphs[0].Width, glyphs[1].Width)
	}
}

func TestDecodeWithoutFontData(t *testing.T) {
	f := New("F1", "Helvetica", Resolver{})
	got := f.Decode([]byte("plain"))
	if got.Text != "plain" || got.Strategy != StrategyLatin1 {
		t.Errorf("unexpected decode %+v", got)
	}
}

func TestAdvance(t *testing.T) {
	f := New("F1", "Courier", Resolver{})
	// Three glyphs of 0.6em at 10pt, 1pt char spacing, 2pt word spacing on the space.
	got := f.Advance([]byte("a b"), 10, 1, 2, 1)
	if math.Abs(got-(3*6+3+2)) > 1e-9 {
		t.Errorf("expected advance 23, got %v", got)
	}
	if got := f.Advance([]byte("ab"), 10, 0, 0, 0.5); math.Abs(got-6) > 1e-9 {
		t.Errorf("expected scaled advance 6, got %v", got)
	}
}
