package font

import (
	"strings"

	"github.com/tsawler/pdfdocx/core"
	"golang.org/x/text/encoding/unicode"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// CMap is a parsed ToUnicode CMap mapping character codes to text.
type CMap struct {
	chars   map[uint32]string
	ranges  []cmapRange
	codeLen int
}

type cmapRange struct {
	lo, hi uint32
	base   []rune   // destination of lo; later codes increment the last rune
	list   []string // explicit destinations when given as an array
}

// ParseCMap parses the bfchar, bfrange and codespacerange sections of a
// ToUnicode CMap. Malformed entries are skipped.
func ParseCMap(data []byte) *CMap {
	c := &CMap{chars: make(map[uint32]string)}
	lex := core.NewLexer(data)

	for {
		tok, err := lex.NextToken()
		if err != nil {
			continue
		}
		if tok.Type == core.TokenEOF {
			break
		}
		if tok.Type != core.TokenKeyword {
			continue
		}
		switch string(tok.Value) {
		case "begincodespacerange":
			c.parseCodespace(lex)
		case "beginbfchar":
			c.parseBfChar(lex)
		case "beginbfrange":
			c.parseBfRange(lex)
		}
	}
	if c.codeLen == 0 {
		c.codeLen = 1
	}
	return c
}

// section collects tokens up to the named end keyword.
func section(lex *core.Lexer, end string) []core.Token {
	var toks []core.Token
	for {
		tok, err := lex.NextToken()
		if err != nil {
			continue
		}
		if tok.Type == core.TokenEOF {
			return toks
		}
		if tok.Type == core.TokenKeyword && string(tok.Value) == end {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (c *CMap) parseCodespace(lex *core.Lexer) {
	toks := section(lex, "endcodespacerange")
	for _, tok := range toks {
		if tok.Type == core.TokenHexString {
			if n := len(core.DecodeHex(tok.Value)); n > c.codeLen {
				c.codeLen = n
			}
		}
	}
}

func (c *CMap) parseBfChar(lex *core.Lexer) {
	toks := section(lex, "endbfchar")
	for i := 0; i+1 < len(toks); i += 2 {
		src, dst := toks[i], toks[i+1]
		if src.Type != core.TokenHexString {
			continue
		}
		code := core.DecodeHex(src.Value)
		c.noteCodeLen(len(code))
		if s, ok := destination(dst); ok {
			c.chars[codeValue(code)] = s
		}
	}
}

func (c *CMap) parseBfRange(lex *core.Lexer) {
	toks := section(lex, "endbfrange")
	for i := 0; i+2 < len(toks); {
		lo, hi := toks[i], toks[i+1]
		if lo.Type != core.TokenHexString || hi.Type != core.TokenHexString {
			i++
			continue
		}
		loCode := core.DecodeHex(lo.Value)
		c.noteCodeLen(len(loCode))
		r := cmapRange{lo: codeValue(loCode), hi: codeValue(core.DecodeHex(hi.Value))}

		dst := toks[i+2]
		i += 3
		switch dst.Type {
		case core.TokenHexString:
			r.base = []rune(utf16Text(core.DecodeHex(dst.Value)))
		case core.TokenArrayStart:
			for i < len(toks) && toks[i].Type != core.TokenArrayEnd {
				if s, ok := destination(toks[i]); ok {
					r.list = append(r.list, s)
				}
				i++
			}
			i++
		default:
			continue
		}
		if r.hi >= r.lo {
			c.ranges = append(c.ranges, r)
		}
	}
}

func (c *CMap) noteCodeLen(n int) {
	if c.codeLen == 0 && n > 0 {
		c.codeLen = n
	}
}

func destination(tok core.Token) (string, bool) {
	switch tok.Type {
	case core.TokenHexString:
		return utf16Text(core.DecodeHex(tok.Value)), true
	case core.TokenName:
		if r, ok := glyphRune(string(tok.Value)); ok {
			return string(r), true
		}
	}
	return "", false
}

func codeValue(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// utf16Text decodes a big-endian UTF-16 destination. Odd-length values are
// read as single bytes.
func utf16Text(b []byte) string {
	if len(b)%2 != 0 {
		var sb strings.Builder
		for _, c := range b {
			sb.WriteRune(rune(c))
		}
		return sb.String()
	}
	out, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// CodeLength is the number of bytes per character code.
func (c *CMap) CodeLength() int { return c.codeLen }

// Lookup returns the text mapped to a character code.
func (c *CMap) Lookup(code uint32) (string, bool) {
	if s, ok := c.chars[code]; ok {
		return s, true
	}
	for _, r := range c.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		off := int(code - r.lo)
		if r.list != nil {
			if off < len(r.list) {
				return r.list[off], true
			}
			return "", false
		}
		if len(r.base) == 0 {
			return "", false
		}
		out := make([]rune, len(r.base))
		copy(out, r.base)
		out[len(out)-1] += rune(off)
		return string(out), true
	}
	return "", false
}

// Decode maps every code in raw. The second result is false when at least
// one code had no mapping; such codes are dropped.
func (c *CMap) Decode(raw []byte) (string, bool) {
	var b strings.Builder
	complete := true
	for _, code := range splitCodes(raw, c.codeLen) {
		if s, ok := c.Lookup(code); ok {
			b.WriteString(s)
		} else {
			complete = false
		}
	}
	return b.String(), complete
}

func splitCodes(raw []byte, n int) []uint32 {
	if n <= 0 {
		n = 1
	}
	codes := make([]uint32, 0, len(raw)/n+1)
	for i := 0; i < len(raw); i += n {
		end := i + n
		if end > len(raw) {
			end = len(raw)
		}
		codes = append(codes, codeValue(raw[i:end]))
	}
	return codes
}
