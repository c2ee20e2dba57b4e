// Package font resolves PDF fonts to output font families and decodes the
// bytes of shown strings to Unicode.
//
// # Family resolution
//
// [Resolve] maps a /BaseFont name to a family and style flags:
//
//	font.Resolve("Helvetica-BoldOblique") // {Arial true true}
//	font.Resolve("ABCDEF+TimesNewRomanPS-ItalicMT") // {Times New Roman false true}
//
// The standard 14 fonts are looked up in a fixed table; other names are
// matched by substring, and anything unrecognized gets the fallback family
// of the [Resolver].
//
// # Text decoding
//
// A [Font] built from a font dictionary decodes through its ToUnicode CMap
// or its named encoding. Without either, [DecodeText] tries an ordered list
// of strategies: UTF-16 when a byte order mark is present, then strict
// Latin-1, UTF-8 and Windows-1252, and finally a lossy Latin-1 decode that
// cannot fail. The result records which strategy won; a lossy result is
// reported by callers as [ErrDecodeFallback]. All output is NFC normalized.
package font
