package pdfdocx

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Converter bounds the number of conversions running at once, for servers
// that accept uploads concurrently. Each conversion still parallelizes its
// own pages according to Config.Workers.
type Converter struct {
	sem  *semaphore.Weighted
	opts []Option
}

// NewConverter returns a converter that runs at most maxConcurrent
// conversions at a time with the given default options.
func NewConverter(maxConcurrent int, opts ...Option) (*Converter, error) {
	if maxConcurrent < 1 {
		return nil, fmt.Errorf("%w: maxConcurrent must be at least 1, got %d", ErrInvalidConfig, maxConcurrent)
	}
	if err := applyOptions(opts).config.Validate(); err != nil {
		return nil, err
	}
	return &Converter{sem: semaphore.NewWeighted(int64(maxConcurrent)), opts: opts}, nil
}

// Convert waits for a free slot, then parses and converts data. Options
// are applied after the converter's defaults.
func (c *Converter) Convert(ctx context.Context, data []byte, opts ...Option) ([]byte, []Warning, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, newConvertError("Convert", fmt.Errorf("acquire slot: %w", err))
	}
	defer c.sem.Release(1)

	all := make([]Option, 0, len(c.opts)+len(opts)+1)
	all = append(all, c.opts...)
	all = append(all, WithContext(ctx))
	all = append(all, opts...)
	return ConvertBytes(data, all...)
}
