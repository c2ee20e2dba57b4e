// Package model holds the values passed between the conversion stages.
//
// A [TextFragment] is one positioned, formatted piece of text produced by
// the content-stream interpreter. The layout stage turns fragments into a
// [Document]: pages of [Paragraph] values, each a sequence of [Run] values
// sharing one [Format]. The package generator serializes that tree.
//
// [Color] is the normalized 24-bit RGB form every PDF color space is
// converted to:
//
//	model.CMYK(0, 1, 1, 0).Hex() // "FF0000"
//	model.Gray(0.5)              // {128, 128, 128}
//
// [Matrix], [Point] and [BBox] carry the geometry shared by the stages.
package model
