// Command pdf2docx converts a PDF file to a Word document.
//
// Usage:
//
//	pdf2docx [flags] input.pdf
//
// The output defaults to the input name with a .docx extension. The exit
// status is 2 when the input is malformed or the flags are invalid, and 1
// for any other failure.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/hexdump"

	"github.com/tsawler/pdfdocx"
	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/docx"
	"github.com/tsawler/pdfdocx/logger"
	"github.com/tsawler/pdfdocx/ocr"
)

const (
	exitFailure = 1
	exitInput   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defaults := pdfdocx.DefaultConfig()

	fs := flag.NewFlagSet("pdf2docx", flag.ContinueOnError)
	var (
		output        = fs.String("o", "", "output file (default: input with .docx extension)")
		pageList      = fs.String("pages", "", "pages to convert, e.g. 1,3-5 (default: all)")
		lineTolerance = fs.Float64("line-tolerance", defaults.Layout.LineTolerance, "largest y difference in points within one line")
		paragraphGap  = fs.Float64("paragraph-gap", defaults.Layout.ParagraphGap, "y gap in points that starts a new paragraph")
		fontSize      = fs.Float64("font-size", defaults.DefaultFontSize, "font size for text shown before any Tf")
		workers       = fs.Int("workers", defaults.Workers, "pages converted in parallel")
		noBreaks      = fs.Bool("no-page-breaks", false, "do not separate pages with page breaks")
		useOCR        = fs.Bool("ocr", false, "recognize text on image-only pages (requires the ocr build tag)")
		lang          = fs.String("lang", "eng", "OCR languages, joined with +")
		verbose       = fs.Bool("v", false, "log debug output to stderr")
		verify        = fs.Bool("verify", false, "read the written document back and report its paragraphs")
		dump          = fs.Int("dump", 0, "hex dump the decoded stream of object `N` and exit")
	)
	if err := fs.Parse(args); err != nil {
		return exitInput
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pdf2docx [flags] input.pdf")
		fs.PrintDefaults()
		return exitInput
	}
	input := fs.Arg(0)

	if *verbose {
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		logger.SetLogger(logger.Slog(log))
	}

	if *dump > 0 {
		return dumpObject(input, *dump)
	}

	cfg := defaults
	cfg.Layout.LineTolerance = *lineTolerance
	cfg.Layout.ParagraphGap = *paragraphGap
	cfg.DefaultFontSize = *fontSize
	cfg.Workers = *workers
	cfg.PageBreaks = !*noBreaks

	doc, err := pdfdocx.Open(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf2docx:", err)
		return exitCode(err)
	}

	opts := []pdfdocx.Option{pdfdocx.WithConfig(cfg)}
	if *pageList != "" {
		pages, err := parsePages(*pageList, doc.PageCount())
		if err != nil {
			fmt.Fprintln(os.Stderr, "pdf2docx:", err)
			return exitInput
		}
		opts = append(opts, pdfdocx.WithPages(pages...))
	}
	if *useOCR {
		client, err := ocr.New(ocr.Options{Language: *lang})
		if err != nil {
			fmt.Fprintln(os.Stderr, "pdf2docx:", err)
			return exitFailure
		}
		defer client.Close()
		opts = append(opts, pdfdocx.WithOCR(client))
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".docx"
	}

	warnings, err := doc.ConvertTo(out, opts...)
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf2docx:", err)
		return exitCode(err)
	}

	if *verify {
		r, err := docx.Open(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pdf2docx: verify:", err)
			return exitFailure
		}
		defer r.Close()
		fmt.Printf("%s: %d paragraphs, %d page breaks, fonts %s\n",
			out, len(r.Paragraphs()), r.PageBreaks(), strings.Join(r.Fonts(), ", "))
	}
	return 0
}

func exitCode(err error) int {
	var pathErr *os.PathError
	if pdfdocx.IsInputError(err) || (errors.As(err, &pathErr) && !errors.Is(err, pdfdocx.ErrConversion)) {
		return exitInput
	}
	return exitFailure
}

// dumpObject prints the decoded data of one stream object.
func dumpObject(input string, num int) int {
	doc, err := pdfdocx.Open(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf2docx:", err)
		return exitCode(err)
	}
	obj, ok := doc.Reader().Table().Get(num)
	if !ok {
		fmt.Fprintf(os.Stderr, "pdf2docx: object %d not found\n", num)
		return exitInput
	}
	stream, ok := obj.Object.(*core.Stream)
	if !ok {
		fmt.Printf("%d 0 obj %s\n", num, obj.Object)
		return 0
	}
	body, err := stream.Decode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf2docx:", err)
		return exitFailure
	}
	fmt.Printf("%d 0 obj %s\n", num, stream.Dict)
	fmt.Println(hexdump.Dump(body))
	return 0
}
