package font

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// ErrDecodeFallback is reported when text could only be decoded lossily.
var ErrDecodeFallback = errors.New("font: text decoded with lossy fallback")

// Strategy identifies how a byte string was turned into text.
type Strategy int

const (
	StrategyUTF16 Strategy = iota
	StrategyLatin1
	StrategyUTF8
	StrategyWindows1252
	StrategyLossyLatin1
	StrategyToUnicode
	StrategyEncoding
)

func (s Strategy) String() string {
	switch s {
	case StrategyUTF16:
		return "utf-16"
	case StrategyLatin1:
		return "latin-1"
	case StrategyUTF8:
		return "utf-8"
	case StrategyWindows1252:
		return "windows-1252"
	case StrategyLossyLatin1:
		return "lossy latin-1"
	case StrategyToUnicode:
		return "tounicode"
	case StrategyEncoding:
		return "font encoding"
	}
	return "unknown"
}

// Decoded is the result of decoding a shown string.
type Decoded struct {
	Text     string
	Strategy Strategy
	Lossy    bool
}

var (
	utf16Decoder = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	latin1       = charmap.ISO8859_1
	win1252      = charmap.Windows1252
)

// DecodeText decodes raw string bytes with the first strategy that yields
// clean text. It never fails; the last strategy replaces control bytes with
// U+FFFD and marks the result lossy.
func DecodeText(raw []byte) Decoded {
	if len(raw) == 0 {
		return Decoded{Strategy: StrategyLatin1}
	}

	if hasBOM(raw) {
		if s, ok := decodeWith(utf16Decoder, raw); ok {
			return Decoded{Text: s, Strategy: StrategyUTF16}
		}
	}
	if s, ok := decodeWith(latin1, raw); ok {
		return Decoded{Text: s, Strategy: StrategyLatin1}
	}
	if utf8.Valid(raw) {
		if s := norm.NFC.String(string(raw)); clean(s) {
			return Decoded{Text: s, Strategy: StrategyUTF8}
		}
	}
	if s, ok := decodeWith(win1252, raw); ok {
		return Decoded{Text: s, Strategy: StrategyWindows1252}
	}
	return Decoded{Text: lossyLatin1(raw), Strategy: StrategyLossyLatin1, Lossy: true}
}

func hasBOM(raw []byte) bool {
	if len(raw) < 2 {
		return false
	}
	return (raw[0] == 0xFE && raw[1] == 0xFF) || (raw[0] == 0xFF && raw[1] == 0xFE)
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	s := norm.NFC.String(string(out))
	return s, clean(s)
}

// clean reports whether s is free of replacement characters and of control
// characters other than tab, newline and carriage return.
func clean(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || !allowedRune(r) {
			return false
		}
	}
	return true
}

func allowedRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20, r >= 0x7F && r <= 0x9F:
		return false
	case r >= 0xFFFE && r <= 0xFFFF:
		return false
	}
	return true
}

func lossyLatin1(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		r := rune(c)
		if !allowedRune(r) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// Sanitize replaces characters that cannot appear in XML text with U+FFFD.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r != utf8.RuneError && !allowedRune(r) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
	}
	return b.String()
}
