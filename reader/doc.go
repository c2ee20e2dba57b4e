// Package reader validates PDF bytes and gives page-level access to the
// parsed object table.
//
// # Opening PDF Files
//
// The whole file is held in memory. Use [Open] for a path or
// [ParseDocument] for bytes already read:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    return err // wraps core.ErrMalformedDocument for non-PDF input
//	}
//
// [Validate] checks the %PDF- header and %%EOF trailer marker without
// parsing anything else.
//
// # Document Information
//
//   - Version() - header version, overridden by the catalog /Version
//   - PageCount(), GetPage(i), Pages() - pages in document order
//   - Info() - the /Info dictionary as model.Metadata
//   - Table(), Trailer() - the underlying object table
//
// # Content
//
// ContentStream returns the decoded content of a page; streams whose filter
// cannot be decoded are replaced by empty content and reported. PageImages
// returns the image XObjects of a page for OCR.
package reader
