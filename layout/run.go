package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/pdfdocx/model"
)

// Runs merges the fragments of a paragraph into maximal runs of identical
// format. Position data is dropped. Fragments on different lines are always
// separated; fragments on one line are separated when JoinWithSpace is set
// and they do not touch.
func (r *Reconstructor) Runs(p Paragraph) []model.Run {
	var runs []model.Run
	var sb strings.Builder
	var format model.Format
	var prev *model.TextFragment

	flush := func() {
		if sb.Len() > 0 {
			runs = append(runs, model.Run{Text: sb.String(), Format: format})
		}
		sb.Reset()
	}

	for li, line := range p.Lines {
		for fi := range line.Fragments {
			frag := &line.Fragments[fi]
			sep := ""
			if prev != nil {
				newLine := fi == 0 && li > 0
				if r.separate(prev, frag, newLine) && needsSpace(lastText(runs, sb.String()), frag.Text) {
					sep = " "
				}
			}

			if prev == nil || frag.Format != format {
				// The separator stays with the run it follows.
				sb.WriteString(sep)
				flush()
				format = frag.Format
				sep = ""
			}
			sb.WriteString(sep)
			sb.WriteString(frag.Text)
			prev = frag
		}
	}
	flush()
	return runs
}

// separate reports whether a space belongs between two consecutive
// fragments.
func (r *Reconstructor) separate(prev, next *model.TextFragment, newLine bool) bool {
	if newLine {
		return true
	}
	if !r.config.JoinWithSpace {
		return false
	}
	if prev.Width <= 0 {
		return true
	}
	size := prev.Format.Size
	if size <= 0 {
		size = 1
	}
	gap := next.X - (prev.X + prev.Width)
	return gap > r.config.WordGap*size
}

// lastText returns the text the next fragment is appended to: the pending
// run, or the last flushed run when nothing is pending.
func lastText(runs []model.Run, pending string) string {
	if pending != "" || len(runs) == 0 {
		return pending
	}
	return runs[len(runs)-1].Text
}

// needsSpace reports whether joining a and b needs a space: neither side
// may already carry whitespace at the seam.
func needsSpace(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(a)
	first, _ := utf8.DecodeRuneInString(b)
	return !unicode.IsSpace(last) && !unicode.IsSpace(first)
}
