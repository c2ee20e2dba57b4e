package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses deflate data. It first tries zlib framing and,
// if the header or checksum is rejected, retries the payload as raw deflate.
// A /Predictor parameter is applied to the inflated bytes.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	out, err := inflate(data)
	if err != nil {
		return nil, err
	}

	predictor := getIntParam(params, "Predictor", 1)
	if predictor > 1 {
		out, err = applyPredictor(out, predictor, params)
		if err != nil {
			return nil, fmt.Errorf("predictor failed: %w", err)
		}
	}
	return out, nil
}

func inflate(data []byte) ([]byte, error) {
	out, zerr := zlibDecompress(data)
	if zerr == nil {
		return out, nil
	}
	// Streams written without the two byte zlib header.
	out, rerr := rawDecompress(data)
	if rerr == nil {
		return out, nil
	}
	// A truncated zlib stream often still yields the whole content.
	if len(out) > 0 {
		return out, nil
	}
	return nil, fmt.Errorf("flate decompression failed: zlib: %v, raw: %w", zerr, rerr)
}

func zlibDecompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rawDecompress(data []byte) ([]byte, error) {
	src := data
	// Skip a zlib header that failed its checksum so the body can still be read.
	if len(src) > 2 && src[0]&0x0f == 8 && (uint16(src[0])<<8|uint16(src[1]))%31 == 0 {
		src = src[2:]
	}
	r := flate.NewReader(bytes.NewReader(src))
	defer r.Close()

	var buf bytes.Buffer
	_, err := io.Copy(&buf, r)
	if err != nil && err != io.ErrUnexpectedEOF {
		return buf.Bytes(), err
	}
	return buf.Bytes(), nil
}

// applyPredictor undoes TIFF predictor 2 or the PNG predictors (10-15).
func applyPredictor(data []byte, predictor int, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)
	if bpc != 8 {
		return nil, fmt.Errorf("only 8 bits per component supported, got %d", bpc)
	}
	rowLen := columns * colors

	switch {
	case predictor == 2:
		if rowLen == 0 || len(data)%rowLen != 0 {
			return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowLen)
		}
		out := make([]byte, len(data))
		copy(out, data)
		for row := 0; row < len(out); row += rowLen {
			for i := colors; i < rowLen; i++ {
				out[row+i] += out[row+i-colors]
			}
		}
		return out, nil

	case predictor >= 10 && predictor <= 15:
		stride := rowLen + 1
		if len(data)%stride != 0 {
			return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), stride)
		}
		rows := len(data) / stride
		out := make([]byte, rows*rowLen)
		prev := make([]byte, rowLen)
		for r := 0; r < rows; r++ {
			tag := data[r*stride]
			src := data[r*stride+1 : (r+1)*stride]
			cur := out[r*rowLen : (r+1)*rowLen]
			if err := unfilterRow(tag, src, cur, prev, colors); err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			prev = cur
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

func unfilterRow(tag byte, src, cur, prev []byte, bpp int) error {
	for i := range src {
		var left, upLeft byte
		up := prev[i]
		if i >= bpp {
			left = cur[i-bpp]
			upLeft = prev[i-bpp]
		}
		switch tag {
		case 0:
			cur[i] = src[i]
		case 1:
			cur[i] = src[i] + left
		case 2:
			cur[i] = src[i] + up
		case 3:
			cur[i] = src[i] + byte((int(left)+int(up))/2)
		case 4:
			cur[i] = src[i] + paeth(left, up, upLeft)
		default:
			return fmt.Errorf("unknown PNG filter type %d", tag)
		}
	}
	return nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
