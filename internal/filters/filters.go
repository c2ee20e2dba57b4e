package filters

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFilter is returned for a stream filter this package cannot decode.
var ErrUnsupportedFilter = errors.New("unsupported filter")

// Params holds decode parameters from a stream's /DecodeParms entry,
// already converted to Go values (int, float64, bool, string).
type Params map[string]interface{}

// Func decodes one filter stage.
type Func func(data []byte, params Params) ([]byte, error)

// passThrough leaves image payloads untouched; they are consumed as-is by
// image extraction.
func passThrough(data []byte, _ Params) ([]byte, error) {
	return data, nil
}

var registry = map[string]Func{
	"FlateDecode":     FlateDecode,
	"Fl":              FlateDecode,
	"LZWDecode":       LZWDecode,
	"LZW":             LZWDecode,
	"ASCIIHexDecode":  func(d []byte, _ Params) ([]byte, error) { return ASCIIHexDecode(d) },
	"AHx":             func(d []byte, _ Params) ([]byte, error) { return ASCIIHexDecode(d) },
	"ASCII85Decode":   func(d []byte, _ Params) ([]byte, error) { return ASCII85Decode(d) },
	"A85":             func(d []byte, _ Params) ([]byte, error) { return ASCII85Decode(d) },
	"RunLengthDecode": func(d []byte, _ Params) ([]byte, error) { return RunLengthDecode(d) },
	"RL":              func(d []byte, _ Params) ([]byte, error) { return RunLengthDecode(d) },
	"CCITTFaxDecode":  CCITTFaxDecode,
	"CCF":             CCITTFaxDecode,
	"DCTDecode":       passThrough,
	"DCT":             passThrough,
	"JPXDecode":       passThrough,
}

// Lookup returns the decoder registered for a filter name.
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)
	}
	return fn, nil
}

// IsImageFilter reports whether the filter produces an encoded image
// rather than raw samples.
func IsImageFilter(name string) bool {
	switch name {
	case "DCTDecode", "DCT", "JPXDecode":
		return true
	}
	return false
}

// getIntParam extracts an integer parameter, returning def when the key is
// missing or of the wrong type.
func getIntParam(params Params, key string, def int) int {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func getBoolParam(params Params, key string, def bool) bool {
	if params == nil {
		return def
	}
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
