// Package filters implements the PDF stream decompression filters.
//
// Every filter takes the encoded payload plus the stream's decode parameters
// and returns the decoded bytes:
//
//	decoded, err := filters.FlateDecode(data, filters.Params{"Predictor": 12, "Columns": 4})
//
// FlateDecode accepts both zlib framed and raw (headerless) deflate data,
// since a number of producers write the latter. Supported filters are
// FlateDecode, LZWDecode, ASCIIHexDecode, ASCII85Decode, RunLengthDecode and
// CCITTFaxDecode. A filter name not handled here is reported with
// ErrUnsupportedFilter by Lookup.
package filters
