package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"
)

// LZWDecode decompresses LZW data. /EarlyChange defaults to 1 as in the PDF
// reference; the predictor parameters are shared with FlateDecode.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	earlyChange := getIntParam(params, "EarlyChange", 1) == 1

	r := lzw.NewReader(bytes.NewReader(data), earlyChange)
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("lzw decompression failed: %w", err)
	}

	predictor := getIntParam(params, "Predictor", 1)
	if predictor > 1 {
		return applyPredictor(out, predictor, params)
	}
	return out, nil
}
