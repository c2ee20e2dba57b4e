package core

import (
	"bytes"
	"fmt"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment
	TokenKeyword     // true, false, null, obj, endobj, stream, ...
	TokenInteger     // 123
	TokenReal        // 3.14
	TokenString      // (hello), escapes resolved
	TokenHexString   // <48656C6C6F>, digits only
	TokenName        // /Type, #xx escapes resolved
	TokenArrayStart  // [
	TokenArrayEnd    // ]
	TokenDictStart   // <<
	TokenDictEnd     // >>
	TokenIndirectRef // R
)

// Token is one lexical unit. Pos is the offset of its first byte and End the
// offset just past its last byte.
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int
	End   int
}

// Lexer tokenizes PDF syntax from an in-memory buffer.
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer returns a lexer positioned at the start of data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Pos returns the current read offset.
func (l *Lexer) Pos() int { return l.pos }

// Seek moves the read offset.
func (l *Lexer) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(l.data) {
		pos = len(l.data)
	}
	l.pos = pos
}

// Data returns the underlying buffer.
func (l *Lexer) Data() []byte { return l.data }

// NextToken returns the next token, skipping whitespace. Comments are
// returned as tokens so callers can decide to skip them.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.data) {
		return Token{Type: TokenEOF, Pos: start, End: start}, nil
	}

	b := l.data[l.pos]
	switch b {
	case '%':
		for l.pos < len(l.data) && l.data[l.pos] != '\r' && l.data[l.pos] != '\n' {
			l.pos++
		}
		return l.token(TokenComment, l.data[start:l.pos], start), nil
	case '[':
		l.pos++
		return l.token(TokenArrayStart, l.data[start:l.pos], start), nil
	case ']':
		l.pos++
		return l.token(TokenArrayEnd, l.data[start:l.pos], start), nil
	case '(':
		return l.readString()
	case '<':
		if l.peekAt(1) == '<' {
			l.pos += 2
			return l.token(TokenDictStart, l.data[start:l.pos], start), nil
		}
		return l.readHexString()
	case '>':
		if l.peekAt(1) == '>' {
			l.pos += 2
			return l.token(TokenDictEnd, l.data[start:l.pos], start), nil
		}
		l.pos++
		return Token{}, fmt.Errorf("unexpected '>' at offset %d", start)
	case '/':
		return l.readName(), nil
	case ')', '{', '}':
		l.pos++
		return Token{}, fmt.Errorf("unexpected %q at offset %d", b, start)
	}

	if isDigit(b) || b == '-' || b == '+' || b == '.' {
		return l.readNumber(), nil
	}
	return l.readKeyword(), nil
}

func (l *Lexer) token(t TokenType, value []byte, start int) Token {
	return Token{Type: t, Value: value, Pos: start, End: l.pos}
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off < len(l.data) {
		return l.data[l.pos+off]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
}

// readString reads a balanced literal string and resolves its escapes.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	value, closed, end := ReadLiteralString(l.data, l.pos)
	l.pos = end
	if !closed {
		return Token{}, fmt.Errorf("unterminated string at offset %d", start)
	}
	return l.token(TokenString, value, start), nil
}

// ReadLiteralString decodes the literal string starting at data[pos], which
// must be '('. It returns the unescaped bytes, whether the closing
// parenthesis was found and the offset after the string. An unterminated
// string consumes the rest of data and returns what was read.
func ReadLiteralString(data []byte, pos int) ([]byte, bool, int) {
	var buf bytes.Buffer
	i := pos + 1
	depth := 1
	for i < len(data) {
		c := data[i]
		i++
		switch c {
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return buf.Bytes(), true, i
			}
			buf.WriteByte(c)
		case '\\':
			if i >= len(data) {
				return buf.Bytes(), false, i
			}
			e := data[i]
			i++
			switch e {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '\r':
				// line continuation
				if i < len(data) && data[i] == '\n' {
					i++
				}
			case '\n':
			default:
				if isOctalDigit(e) {
					v := int(e - '0')
					for k := 0; k < 2 && i < len(data) && isOctalDigit(data[i]); k++ {
						v = v*8 + int(data[i]-'0')
						i++
					}
					buf.WriteByte(byte(v))
				} else {
					// \( \) \\ and unknown escapes keep the character
					buf.WriteByte(e)
				}
			}
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes(), false, i
}

func (l *Lexer) readHexString() (Token, error) {
	start := l.pos
	l.pos++
	var buf bytes.Buffer
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			return l.token(TokenHexString, buf.Bytes(), start), nil
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return Token{}, fmt.Errorf("invalid hex digit %q at offset %d", c, l.pos-1)
		}
		buf.WriteByte(c)
	}
	return Token{}, fmt.Errorf("unterminated hex string at offset %d", start)
}

func (l *Lexer) readName() Token {
	start := l.pos
	l.pos++
	var buf bytes.Buffer
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && l.pos+2 < len(l.data) && isHexDigit(l.data[l.pos+1]) && isHexDigit(l.data[l.pos+2]) {
			buf.WriteByte(hexValue(l.data[l.pos+1])<<4 | hexValue(l.data[l.pos+2]))
			l.pos += 3
			continue
		}
		buf.WriteByte(c)
		l.pos++
	}
	return l.token(TokenName, buf.Bytes(), start)
}

func (l *Lexer) readNumber() Token {
	start := l.pos
	isReal := false
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isDigit(c):
		case c == '.' && !isReal:
			isReal = true
		case (c == '-' || c == '+') && l.pos == start:
		default:
			return l.numberToken(start, isReal)
		}
		l.pos++
	}
	return l.numberToken(start, isReal)
}

func (l *Lexer) numberToken(start int, isReal bool) Token {
	if isReal {
		return l.token(TokenReal, l.data[start:l.pos], start)
	}
	return l.token(TokenInteger, l.data[start:l.pos], start)
}

// readKeyword reads a bare word up to the next whitespace or delimiter.
func (l *Lexer) readKeyword() Token {
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	value := l.data[start:l.pos]
	if len(value) == 1 && value[0] == 'R' {
		return l.token(TokenIndirectRef, value, start)
	}
	return l.token(TokenKeyword, value, start)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case isDigit(b):
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

// DecodeHex converts hex digits to bytes, padding an odd final digit with 0.
func DecodeHex(digits []byte) []byte {
	out := make([]byte, 0, (len(digits)+1)/2)
	for i := 0; i < len(digits); i += 2 {
		hi := hexValue(digits[i])
		var lo byte
		if i+1 < len(digits) {
			lo = hexValue(digits[i+1])
		}
		out = append(out, hi<<4|lo)
	}
	return out
}
