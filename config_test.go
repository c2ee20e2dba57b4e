package pdfdocx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		shouldErr bool
	}{
		{"default config", func(*Config) {}, false},
		{"zero font size", func(c *Config) { c.DefaultFontSize = 0 }, true},
		{"huge font size", func(c *Config) { c.DefaultFontSize = 5000 }, true},
		{"no fallback family", func(c *Config) { c.FallbackFamily = "" }, true},
		{"no workers", func(c *Config) { c.Workers = 0 }, true},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, true},
		{"max workers", func(c *Config) { c.Workers = MaxWorkers }, false},
		{"negative line tolerance", func(c *Config) { c.Layout.LineTolerance = -1 }, true},
		{"zero paragraph gap", func(c *Config) { c.Layout.ParagraphGap = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.shouldErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 12.0, cfg.DefaultFontSize)
	assert.Equal(t, "000000", cfg.DefaultColor.Hex())
	assert.Equal(t, "Calibri", cfg.FallbackFamily)
	assert.True(t, cfg.PageBreaks)
	assert.Equal(t, 2.0, cfg.Layout.LineTolerance)
	assert.Equal(t, 20.0, cfg.Layout.ParagraphGap)
}

func TestConfig_ValidateConcurrent(t *testing.T) {
	good := DefaultConfig()
	bad := DefaultConfig()
	bad.Workers = 0

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = good.Validate()
			} else {
				errs[i] = bad.Validate()
			}
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if i%2 == 0 {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}
	}
}
