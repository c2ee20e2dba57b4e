//go:build !ocr

package ocr

import "context"

// Client is a stub used when OCR support is not compiled in.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize returns ErrOCRNotEnabled.
func (c *Client) Recognize(context.Context, []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
