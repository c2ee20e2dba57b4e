package graphicsstate

import (
	"errors"
	"testing"

	"github.com/tsawler/pdfdocx/model"
)

func TestNewUsesConfig(t *testing.T) {
	gs := New(Config{FontSize: 10, Color: model.RGB(0, 0, 1)})
	if gs.FontSize != 10 {
		t.Errorf("expected font size 10, got %v", gs.FontSize)
	}
	if gs.Fill.Hex() != "0000FF" {
		t.Errorf("expected fill 0000FF, got %s", gs.Fill.Hex())
	}

	def := New(DefaultConfig())
	if def.FontSize != 12 || def.Fill != model.Black {
		t.Errorf("expected 12pt black default, got %v %v", def.FontSize, def.Fill)
	}
}

func TestSaveRestore(t *testing.T) {
	gs := New(DefaultConfig())
	gs.SetFont("F1", 14)
	gs.Save()
	gs.SetFont("F2", 20)
	gs.Fill = model.RGB(1, 0, 0)

	if err := gs.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if gs.Font != "F1" || gs.FontSize != 14 || gs.Fill != model.Black {
		t.Errorf("state not restored: %+v", gs.State)
	}
	if err := gs.Restore(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
	if gs.Font != "F1" {
		t.Error("unmatched restore changed the state")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	gs := New(DefaultConfig())
	snap := gs.Snapshot()
	gs.SetFont("F9", 30)
	gs.MoveText(10, 10)
	if snap.Font != "" || snap.FontSize != 12 || snap.Position() != (model.Point{}) {
		t.Errorf("snapshot changed after mutation: %+v", snap)
	}
}

func TestTextPositioning(t *testing.T) {
	gs := New(DefaultConfig())
	gs.BeginText()
	gs.MoveText(100, 700)
	if p := gs.Position(); p.X != 100 || p.Y != 700 {
		t.Errorf("expected (100,700), got %v", p)
	}

	gs.MoveTextSetLeading(0, -14)
	if p := gs.Position(); p.X != 100 || p.Y != 686 {
		t.Errorf("expected (100,686), got %v", p)
	}

	gs.NextLine()
	if p := gs.Position(); p.Y != 672 {
		t.Errorf("expected y 672, got %v", p.Y)
	}

	gs.Advance(50)
	if p := gs.Position(); p.X != 150 || p.Y != 672 {
		t.Errorf("expected (150,672), got %v", p)
	}
	gs.MoveText(0, -20)
	if p := gs.Position(); p.X != 100 {
		t.Errorf("expected Td relative to line start, got x %v", p.X)
	}

	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 72, 500})
	if p := gs.Position(); p.X != 72 || p.Y != 500 {
		t.Errorf("expected (72,500), got %v", p)
	}
}

func TestConcatAndEffectiveSize(t *testing.T) {
	gs := New(DefaultConfig())
	gs.SetFont("F1", 1)
	gs.Concat(model.Matrix{1, 0, 0, 1, 0, 792})
	gs.Concat(model.Matrix{1, 0, 0, -1, 0, 0})
	gs.SetTextMatrix(model.Matrix{12, 0, 0, -12, 50, 100})

	p := gs.Position()
	if p.X != 50 || p.Y != 692 {
		t.Errorf("expected (50,692), got %v", p)
	}
	if s := gs.EffectiveFontSize(); s != 12 {
		t.Errorf("expected effective size 12, got %v", s)
	}
}

func TestRiseIsInTextSpace(t *testing.T) {
	tests := []struct {
		name  string
		ctm    model.Matrix
		tm     model.Matrix
		rise   float64
		wantX  float64
		wantY  float64
	}{
		{"identity", model.Identity(), model.Translate(10, 20), 5, 10, 25},
		{"scaled ctm", model.Matrix{2, 0, 0, 2, 0, 0}, model.Translate(10, 20), 5, 20, 50},
		{"scaled text matrix", model.Identity(), model.Matrix{12, 0, 0, 12, 10, 20}, 1, 10, 32},
		{"flipped ctm", model.Matrix{1, 0, 0, -1, 0, 792}, model.Translate(0, 100), 4, 0, 688},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := New(DefaultConfig())
			gs.Concat(tt.ctm)
			gs.SetTextMatrix(tt.tm)
			gs.Rise = tt.rise

			p := gs.Position()
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("expected (%v,%v), got %v", tt.wantX, tt.wantY, p)
			}
		})
	}
}
