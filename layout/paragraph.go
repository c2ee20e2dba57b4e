package layout

// Paragraph is a run of lines without a large vertical gap.
type Paragraph struct {
	Lines []Line
}

// Paragraphs groups consecutive lines. A new paragraph starts when the y
// gap between the last fragment of one line and the first fragment of the
// next exceeds ParagraphGap.
func (r *Reconstructor) Paragraphs(lines []Line) []Paragraph {
	var paras []Paragraph
	var current Paragraph
	for i, line := range lines {
		if i > 0 && len(line.Fragments) > 0 {
			prev := lines[i-1].Fragments
			if len(prev) > 0 && prev[len(prev)-1].Y-line.Fragments[0].Y > r.config.ParagraphGap {
				paras = append(paras, current)
				current = Paragraph{}
			}
		}
		current.Lines = append(current.Lines, line)
	}
	if len(current.Lines) > 0 {
		paras = append(paras, current)
	}
	return paras
}
