// Package text replays content stream operations and emits the positioned,
// formatted text fragments they show.
//
// # Text Extraction
//
// The [Extractor] tracks the graphics and text state of one content stream
// at a time:
//
//	ex := text.NewExtractor(graphicsstate.DefaultConfig(), font.Resolver{})
//	ex.RegisterFonts(resources, table)
//	fragments := ex.ExtractFromBytes(content)
//
// Each fragment carries a snapshot of the state when it was shown: user
// space position, resolved font family and style, effective size and fill
// color. Text shown outside a BT/ET block is ignored.
//
// # Diagnostics
//
// Extraction never fails. Skipped syntax, unmatched restores and strings
// that could only be decoded lossily are collected by [Extractor.Diagnostics];
// the latter match [font.ErrDecodeFallback] with errors.Is.
package text
