package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pdfdocx/model"
)

// Line is a set of fragments sharing a baseline band, sorted left to right.
type Line struct {
	Fragments []model.TextFragment

	// Y is the baseline of the fragment that opened the line.
	Y float64
}

// Text returns the fragment text joined the way runs join it.
func (l Line) Text() string {
	var sb strings.Builder
	for i, f := range l.Fragments {
		if i > 0 && needsSpace(sb.String(), f.Text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Lines sorts fragments into reading order and groups them into lines. A
// fragment joins the current line when its y is within LineTolerance of the
// fragment that opened the line.
func (r *Reconstructor) Lines(fragments []model.TextFragment) []Line {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	current := Line{Y: sorted[0].Y, Fragments: []model.TextFragment{sorted[0]}}
	for _, frag := range sorted[1:] {
		if current.Y-frag.Y <= r.config.LineTolerance {
			current.Fragments = append(current.Fragments, frag)
			continue
		}
		lines = append(lines, sortLine(current))
		current = Line{Y: frag.Y, Fragments: []model.TextFragment{frag}}
	}
	return append(lines, sortLine(current))
}

func sortLine(l Line) Line {
	sort.SliceStable(l.Fragments, func(i, j int) bool {
		return l.Fragments[i].X < l.Fragments[j].X
	})
	return l
}
