package layout

import (
	"github.com/tsawler/pdfdocx/model"
)

// Reconstructor turns the fragments of one page into paragraphs. It holds no
// state between calls and is safe for concurrent use.
type Reconstructor struct {
	config Config
}

// NewReconstructor returns a reconstructor using config.
func NewReconstructor(config Config) *Reconstructor {
	return &Reconstructor{config: config}
}

// Config returns the configuration in use.
func (r *Reconstructor) Config() Config {
	return r.config
}

// Page reconstructs a whole page. A zero width or height is replaced by the
// US Letter default.
func (r *Reconstructor) Page(number int, fragments []model.TextFragment, width, height float64) model.Page {
	if width <= 0 || height <= 0 {
		width, height = model.DefaultPageWidth, model.DefaultPageHeight
	}
	page := model.Page{Number: number, Width: width, Height: height}
	for _, p := range r.Paragraphs(r.Lines(fragments)) {
		if runs := r.Runs(p); len(runs) > 0 {
			page.Paragraphs = append(page.Paragraphs, model.Paragraph{Runs: runs})
		}
	}
	return page
}
