package pdfdocx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/pdfdocx/contentstream"
	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/docx"
	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/internal/filters"
)

var (
	// ErrMalformedDocument is returned when the input has no PDF signature
	// or no object can be recovered from it.
	ErrMalformedDocument = core.ErrMalformedDocument

	// ErrConversion is returned when the output package cannot be produced.
	ErrConversion = docx.ErrConversion

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPageRange is returned when a selected page does not exist.
	ErrPageRange = errors.New("page out of range")
)

// ConvertError represents an error that occurred during a specific
// conversion operation. It wraps the underlying error with the operation
// name for context.
type ConvertError struct {
	Op  string // operation name, e.g. "ParseDocument", "Convert"
	Err error  // underlying error
}

func (e *ConvertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfdocx.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfdocx.%s: unknown error", e.Op)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func newConvertError(op string, err error) *ConvertError {
	return &ConvertError{Op: op, Err: err}
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the converter: a malformed document, an invalid configuration or
// a page selection outside the document.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrPageRange)
}

// WarningKind classifies a recovered problem.
type WarningKind string

const (
	WarningUnsupportedFilter WarningKind = "unsupported-filter"
	WarningDecodeFallback    WarningKind = "decode-fallback"
	WarningSyntax            WarningKind = "syntax"
	WarningOCR               WarningKind = "ocr"
	WarningOther             WarningKind = "other"
)

// Warning is a problem that was recovered from. Content related to it may
// be missing from the output.
type Warning struct {
	Page int // 1-based, 0 for document-level warnings
	Kind WarningKind
	Err  error
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s: %v", w.Page, w.Kind, w.Err)
	}
	return fmt.Sprintf("%s: %v", w.Kind, w.Err)
}

// newWarning classifies err.
func newWarning(page int, err error) Warning {
	var syntax *contentstream.SyntaxError
	kind := WarningOther
	switch {
	case errors.Is(err, filters.ErrUnsupportedFilter):
		kind = WarningUnsupportedFilter
	case errors.Is(err, font.ErrDecodeFallback):
		kind = WarningDecodeFallback
	case errors.As(err, &syntax):
		kind = WarningSyntax
	}
	return Warning{Page: page, Kind: kind, Err: err}
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// CountWarnings returns the number of warnings of each kind.
func CountWarnings(warnings []Warning) map[WarningKind]int {
	counts := map[WarningKind]int{}
	for _, w := range warnings {
		counts[w.Kind]++
	}
	return counts
}
