package pdfdocx

import (
	"context"

	"github.com/tsawler/pdfdocx/logger"
	"github.com/tsawler/pdfdocx/ocr"
)

// Option configures a conversion.
type Option func(*options)

type options struct {
	pages  []int // 1-based, nil means all pages
	config Config
	ocr    ocr.Recognizer
	log    logger.LogFunc
	ctx    context.Context
}

func defaultOptions() *options {
	return &options{
		config: DefaultConfig(),
		log:    logger.Default(),
		ctx:    context.Background(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPages selects pages to convert (1-indexed). Multiple calls are
// cumulative; duplicates are ignored and pages are always emitted in
// document order.
func WithPages(pages ...int) Option {
	return func(o *options) {
		o.pages = append(o.pages, pages...)
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithOCR sets the recognizer used for pages that contain an image but no
// text.
func WithOCR(r ocr.Recognizer) Option {
	return func(o *options) {
		o.ocr = r
	}
}

// WithLogger sets the logger for one conversion. A nil f is ignored.
func WithLogger(f logger.LogFunc) Option {
	return func(o *options) {
		if f != nil {
			o.log = f
		}
	}
}

// WithContext sets the context passed to the OCR recognizer. Pages not yet
// started when it is canceled are not converted.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
