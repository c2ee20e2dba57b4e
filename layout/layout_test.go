package layout

import (
	"testing"

	"github.com/tsawler/pdfdocx/model"
)

var plain = model.Format{Family: "Arial", Size: 12}

func frag(text string, x, y float64) model.TextFragment {
	return model.TextFragment{Text: text, X: x, Y: y, Format: plain}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.LineTolerance != 2 || c.ParagraphGap != 20 || !c.JoinWithSpace {
		t.Errorf("unexpected defaults %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}

	c.ParagraphGap = 0
	if err := c.Validate(); err == nil {
		t.Error("expected zero paragraph gap to fail validation")
	}
	c = DefaultConfig()
	c.LineTolerance = -1
	if err := c.Validate(); err == nil {
		t.Error("expected negative line tolerance to fail validation")
	}
}

func TestLinesReadingOrder(t *testing.T) {
	r := NewReconstructor(DefaultConfig())
	lines := r.Lines([]model.TextFragment{
		frag("world", 200, 699),
		frag("second", 100, 680),
		frag("Hello", 100, 700),
	})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "Hello world" {
		t.Errorf("expected first line 'Hello world', got %q", got)
	}
	if got := lines[1].Text(); got != "second" {
		t.Errorf("expected second line 'second', got %q", got)
	}
}

func TestLineToleranceInvariant(t *testing.T) {
	r := NewReconstructor(DefaultConfig())
	// Three intended lines; members differ by at most 2pt, lines by more.
	frags := []model.TextFragment{
		frag("a", 10, 700), frag("b", 50, 698), frag("c", 90, 699.5),
		frag("d", 10, 690), frag("e", 50, 691),
		frag("f", 10, 680), frag("g", 40, 678.5), frag("h", 70, 680),
	}
	lines := r.Lines(frags)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := []string{"a b c", "d e", "f g h"}
	for i, w := range want {
		if got := lines[i].Text(); got != w {
			t.Errorf("line %d: expected %q, got %q", i, w, got)
		}
	}

	r = NewReconstructor(Config{LineTolerance: 0.5, ParagraphGap: 20, JoinWithSpace: true})
	if got := len(r.Lines(frags)); got <= 3 {
		t.Errorf("expected a tighter tolerance to split lines, got %d", got)
	}
}

func TestParagraphGapInvariant(t *testing.T) {
	r := NewReconstructor(DefaultConfig())

	below := r.Paragraphs(r.Lines([]model.TextFragment{frag("one", 72, 700), frag("two", 72, 681)}))
	if len(below) != 1 {
		t.Errorf("expected a 19pt gap to stay in one paragraph, got %d", len(below))
	}

	above := r.Paragraphs(r.Lines([]model.TextFragment{frag("one", 72, 700), frag("two", 72, 670)}))
	if len(above) != 2 {
		t.Errorf("expected a 30pt gap to start a paragraph, got %d", len(above))
	}

	exact := r.Paragraphs(r.Lines([]model.TextFragment{frag("one", 72, 700), frag("two", 72, 680)}))
	if len(exact) != 1 {
		t.Errorf("expected a gap equal to the threshold not to break, got %d", len(exact))
	}
}

func TestRunsMergeByFormat(t *testing.T) {
	r := NewReconstructor(DefaultConfig())
	bold := plain
	bold.Bold = true
	red := plain
	red.Color = model.RGB(1, 0, 0)

	frags := []model.TextFragment{
		frag("The", 72, 700),
		frag("quick", 100, 700),
		{Text: "brown", X: 140, Y: 700, Format: bold},
		{Text: "fox", X: 72, Y: 686, Format: bold},
		{Text: "jumps", X: 100, Y: 686, Format: red},
	}
	paras := r.Paragraphs(r.Lines(frags))
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	runs := r.Runs(paras[0])

	want := []model.Run{
		{Text: "The quick ", Format: plain},
		{Text: "brown fox ", Format: bold},
		{Text: "jumps", Format: red},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(runs), runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d: expected %+v, got %+v", i, want[i], runs[i])
		}
	}
}

func TestRunsRespectExistingWhitespace(t *testing.T) {
	r := NewReconstructor(DefaultConfig())
	runs := r.Runs(Paragraph{Lines: r.Lines([]model.TextFragment{
		frag("Hello ", 72, 700),
		frag("world", 110, 700),
	})})
	if len(runs) != 1 || runs[0].Text != "Hello world" {
		t.Errorf("expected 'Hello world', got %+v", runs)
	}
}

func TestRunsAdjacentFragmentsJoinWithoutSpace(t *testing.T) {
	r := NewReconstructor(DefaultConfig())
	frags := []model.TextFragment{
		{Text: "Hel", X: 72, Y: 700, Width: 18, Format: plain},
		{Text: "lo", X: 90, Y: 700, Width: 12, Format: plain},
		{Text: "there", X: 110, Y: 700, Width: 30, Format: plain},
	}
	runs := r.Runs(Paragraph{Lines: r.Lines(frags)})
	if len(runs) != 1 || runs[0].Text != "Hello there" {
		t.Errorf("expected 'Hello there', got %+v", runs)
	}
}

func TestRunsWithoutJoinSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JoinWithSpace = false
	r := NewReconstructor(cfg)
	runs := r.Runs(Paragraph{Lines: r.Lines([]model.TextFragment{
		frag("ab", 72, 700), frag("cd", 100, 700), frag("ef", 72, 690),
	})})
	if len(runs) != 1 || runs[0].Text != "abcd ef" {
		t.Errorf("expected 'abcd ef', got %+v", runs)
	}
}

func TestPage(t *testing.T) {
	r := NewReconstructor(DefaultConfig())

	page := r.Page(1, []model.TextFragment{frag("Hello World", 100, 700)}, 0, 0)
	if page.Width != model.DefaultPageWidth || page.Height != model.DefaultPageHeight {
		t.Errorf("expected US Letter default, got %vx%v", page.Width, page.Height)
	}
	if len(page.Paragraphs) != 1 || len(page.Paragraphs[0].Runs) != 1 {
		t.Fatalf("expected one paragraph with one run, got %+v", page.Paragraphs)
	}
	if page.Paragraphs[0].Runs[0].Text != "Hello World" {
		t.Errorf("unexpected text %q", page.Paragraphs[0].Runs[0].Text)
	}

	page = r.Page(2, []model.TextFragment{frag("a", 10, 700), frag("b", 10, 670)}, 595, 842)
	if page.Number != 2 || page.Width != 595 || len(page.Paragraphs) != 2 {
		t.Errorf("unexpected page %+v", page)
	}

	if empty := r.Page(3, nil, 612, 792); len(empty.Paragraphs) != 0 {
		t.Errorf("expected no paragraphs, got %d", len(empty.Paragraphs))
	}
}
