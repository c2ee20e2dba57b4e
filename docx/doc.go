// Package docx writes and reads WordprocessingML (DOCX) packages.
//
// Build turns a reconstructed model.Document into a Package of XML parts.
// Package.WriteTo serializes it as a deterministic ZIP archive: the same
// document always produces the same bytes. Reader opens a package again and
// exposes its paragraphs and run formatting, which is how generated output
// is verified.
package docx
