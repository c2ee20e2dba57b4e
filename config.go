package pdfdocx

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/layout"
	"github.com/tsawler/pdfdocx/model"
)

// MaxWorkers bounds Config.Workers.
const MaxWorkers = 16

// Config holds the conversion settings.
type Config struct {
	Layout layout.Config

	// DefaultFontSize applies to text shown before any Tf operator.
	DefaultFontSize float64 `validate:"gt=0,lte=1638"`
	// DefaultColor applies to text shown before any color operator.
	DefaultColor model.Color
	// FallbackFamily is used for fonts whose names match no known family.
	FallbackFamily string `validate:"required"`

	// Workers is the number of pages converted in parallel.
	Workers int `validate:"min=1,max=16"`
	// PageBreaks separates PDF pages with page breaks in the output.
	PageBreaks bool
}

// DefaultConfig returns 12pt black text, Calibri as the fallback family,
// four workers and page breaks on.
func DefaultConfig() Config {
	return Config{
		Layout:          layout.DefaultConfig(),
		DefaultFontSize: 12,
		DefaultColor:    model.Black,
		FallbackFamily:  font.DefaultFallbackFamily,
		Workers:         4,
		PageBreaks:      true,
	}
}

// validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validate checks the configuration, including the nested layout settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
