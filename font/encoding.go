package font

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding maps single-byte codes to runes for simple fonts.
type Encoding struct {
	Name  string
	table [256]rune
}

var baseEncodings = map[string]*charmap.Charmap{
	"WinAnsiEncoding":  charmap.Windows1252,
	"MacRomanEncoding": charmap.Macintosh,
}

// NewEncoding returns the named base encoding. Unknown names, including
// StandardEncoding, use Latin-1 for the byte values.
func NewEncoding(name string) *Encoding {
	e := &Encoding{Name: name}
	cm := baseEncodings[name]
	for i := 0; i < 256; i++ {
		r := rune(i)
		if cm != nil {
			if d := cm.DecodeByte(byte(i)); d != '\uFFFD' {
				r = d
			}
		}
		e.table[i] = r
	}
	return e
}

// ApplyDifferences overlays a /Differences array: an integer sets the next
// code, and each following name maps that code and advances it.
func (e *Encoding) ApplyDifferences(diffs []interface{}) {
	code := -1
	for _, d := range diffs {
		switch v := d.(type) {
		case int:
			code = v
		case string:
			if code < 0 || code > 255 {
				continue
			}
			if r, ok := glyphRune(v); ok {
				e.table[code] = r
			}
			code++
		}
	}
}

// Decode maps each byte through the encoding.
func (e *Encoding) Decode(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(e.table[c])
	}
	return b.String()
}

// Rune returns the rune for a single code.
func (e *Encoding) Rune(code byte) rune { return e.table[code] }

var glyphNames = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"quoteright": '’', "quoteleft": '‘', "parenleft": '(',
	"parenright": ')', "asterisk": '*', "plus": '+', "comma": ',',
	"hyphen": '-', "period": '.', "slash": '/', "colon": ':',
	"semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_',
	"grave": '`', "braceleft": '{', "bar": '|', "braceright": '}',
	"asciitilde": '~', "zero": '0', "one": '1', "two": '2', "three": '3',
	"four": '4', "five": '5', "six": '6', "seven": '7', "eight": '8',
	"nine": '9', "bullet": '•', "endash": '–', "emdash": '—',
	"quotedblleft": '“', "quotedblright": '”',
	"quotesinglbase": '‚', "quotedblbase": '„',
	"ellipsis": '…', "dagger": '†', "daggerdbl": '‡',
	"trademark": '™', "copyright": '©', "registered": '®',
	"degree": '°', "section": '§', "paragraph": '¶',
	"fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ', "ffi": 'ﬃ',
	"ffl": 'ﬄ', "Euro": '€', "sterling": '£', "yen": '¥',
	"cent": '¢', "minus": '−', "multiply": '×',
	"divide": '÷', "nbspace": '\u00a0', "periodcentered": '·',
	"eacute": 'é', "egrave": 'è', "agrave": 'à',
	"aacute": 'á', "ccedilla": 'ç', "udieresis": 'ü',
	"odieresis": 'ö', "adieresis": 'ä', "germandbls": 'ß',
	"ntilde": 'ñ', "Eacute": 'É', "Udieresis": 'Ü',
	"Odieresis": 'Ö', "Adieresis": 'Ä',
}

// glyphRune resolves a glyph name: single letters, the names above, and
// the uniXXXX and uXXXX[XX] forms.
func glyphRune(name string) (rune, bool) {
	if len(name) == 1 {
		return rune(name[0]), true
	}
	if r, ok := glyphNames[name]; ok {
		return r, true
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		return glyphRune(name[:i])
	}
	var hex string
	switch {
	case strings.HasPrefix(name, "uni") && len(name) == 7:
		hex = name[3:]
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		hex = name[1:]
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
