package layout

import (
	"github.com/go-playground/validator/v10"
)

// Config holds the layout heuristics.
type Config struct {
	// LineTolerance is the largest y difference, in points, between
	// fragments of one line (default: 2).
	LineTolerance float64 `validate:"gte=0"`

	// ParagraphGap is the y gap between consecutive lines, in points, above
	// which a new paragraph starts (default: 20).
	ParagraphGap float64 `validate:"gt=0"`

	// JoinWithSpace inserts a space between merged fragments that do not
	// already carry whitespace (default: true).
	JoinWithSpace bool

	// WordGap is the horizontal gap, as a fraction of the font size, below
	// which two fragments on a line are treated as one word and joined
	// without a space (default: 0.15).
	WordGap float64 `validate:"gte=0,lte=10"`
}

// DefaultConfig returns the default heuristics.
func DefaultConfig() Config {
	return Config{
		LineTolerance: 2,
		ParagraphGap:  20,
		JoinWithSpace: true,
		WordGap:       0.15,
	}
}

// validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validate checks the configuration.
func (c Config) Validate() error {
	return validate.Struct(c)
}
