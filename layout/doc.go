// Package layout rebuilds single-column reading order from positioned text
// fragments.
//
// # Reconstruction
//
// A [Reconstructor] works in three steps, each usable on its own:
//
//	r := layout.NewReconstructor(layout.DefaultConfig())
//	lines := r.Lines(fragments)       // sort by (-y, x), cluster by LineTolerance
//	paras := r.Paragraphs(lines)      // break where the line gap exceeds ParagraphGap
//	runs := r.Runs(paras[0])          // merge adjacent fragments with equal format
//
// [Reconstructor.Page] runs all three and returns a [model.Page].
//
// # Configuration
//
// The thresholds are policy, not protocol. The defaults (2pt line tolerance,
// 20pt paragraph gap) suit most producers; [Config.Validate] checks any
// overrides.
package layout
