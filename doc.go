// Package pdfdocx converts PDF documents to editable DOCX files.
//
// Basic usage:
//
//	data, warnings, err := pdfdocx.ConvertBytes(pdf)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfdocx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, err := pdfdocx.ParseDocument(pdf)
//	if err != nil {
//	    // handle error
//	}
//	data, warnings, err := pdfdocx.Convert(doc,
//	    pdfdocx.WithPages(1, 2, 3),
//	    pdfdocx.WithLogger(logger.Slog(slog.Default())),
//	)
//
// The conversion runs in stages: the reader package builds the object
// table, text replays each page's content stream into positioned text
// fragments, layout groups fragments into lines, paragraphs and runs, and
// docx serializes the result. Pages are independent and are converted in
// parallel.
//
// Parse failures are fatal and reported as ErrMalformedDocument. Content
// that cannot be decoded is skipped and reported as a Warning; the output is
// still usable. Failures while writing the package are fatal and reported as
// ErrConversion, and no partial output is produced.
package pdfdocx
