package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes Group 3 or Group 4 fax data, the usual encoding of
// scanned bi-level pages. /K < 0 selects Group 4; /Columns defaults to 1728
// and a missing /Rows lets the decoder detect the height. /BlackIs1 maps to
// the decoder's Invert option.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	sf := ccitt.Group3
	if getIntParam(params, "K", 0) < 0 {
		sf = ccitt.Group4
	}
	rows := getIntParam(params, "Rows", 0)
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{Invert: getBoolParam(params, "BlackIs1", false)}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, getIntParam(params, "Columns", 1728), rows, opts)
	return io.ReadAll(r)
}
