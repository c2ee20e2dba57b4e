package core

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ReferenceResolver resolves indirect references met while parsing, such as
// an indirect stream /Length.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser builds Objects from the tokens of a Lexer. It keeps a small
// lookahead queue so "num gen R" can be told apart from two integers.
type Parser struct {
	lexer    *Lexer
	queue    []Token
	resolver ReferenceResolver
}

// NewParser returns a parser reading data from the start.
func NewParser(data []byte) *Parser {
	return &Parser{lexer: NewLexer(data)}
}

// SetReferenceResolver sets the resolver used for indirect stream lengths.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

// Seek positions the parser at offset and drops any lookahead.
func (p *Parser) Seek(offset int) {
	p.lexer.Seek(offset)
	p.queue = p.queue[:0]
}

// Pos returns the offset of the next unread token.
func (p *Parser) Pos() int {
	if len(p.queue) > 0 {
		return p.queue[0].Pos
	}
	return p.lexer.Pos()
}

// peek returns the n-th upcoming token without consuming it. Comments are
// dropped.
func (p *Parser) peek(n int) (Token, error) {
	for len(p.queue) <= n {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return Token{}, err
		}
		if tok.Type == TokenComment {
			continue
		}
		p.queue = append(p.queue, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	if n >= len(p.queue) {
		return p.queue[len(p.queue)-1], nil
	}
	return p.queue[n], nil
}

func (p *Parser) next() (Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return Token{}, err
	}
	if tok.Type != TokenEOF {
		p.queue = p.queue[1:]
	}
	return tok, nil
}

func isKeyword(tok Token, kw string) bool {
	return tok.Type == TokenKeyword && string(tok.Value) == kw
}

// ParseObject parses the next direct object. It returns io.EOF at the end
// of input.
func (p *Parser) ParseObject() (Object, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokenEOF:
		return nil, io.EOF
	case TokenKeyword:
		switch string(tok.Value) {
		case "null":
			return Null{}, nil
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, fmt.Errorf("unexpected keyword %q at offset %d", tok.Value, tok.Pos)
	case TokenInteger:
		return p.parseInteger(tok)
	case TokenReal:
		f, err := strconv.ParseFloat(string(tok.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q at offset %d", tok.Value, tok.Pos)
		}
		return Real(f), nil
	case TokenString:
		return String(tok.Value), nil
	case TokenHexString:
		return String(DecodeHex(tok.Value)), nil
	case TokenName:
		return Name(tok.Value), nil
	case TokenArrayStart:
		return p.parseArray()
	case TokenDictStart:
		return p.parseDict()
	}
	return nil, fmt.Errorf("unexpected token %q at offset %d", tok.Value, tok.Pos)
}

// parseInteger returns an Int, or an IndirectRef when followed by "gen R".
func (p *Parser) parseInteger(tok Token) (Object, error) {
	n, err := strconv.ParseInt(string(tok.Value), 10, 64)
	if err != nil {
		// "-" or "+" alone, or an overflowing literal
		f, ferr := strconv.ParseFloat(string(tok.Value), 64)
		if ferr != nil {
			return nil, fmt.Errorf("invalid number %q at offset %d", tok.Value, tok.Pos)
		}
		return Real(f), nil
	}

	gen, err := p.peek(0)
	if err != nil || gen.Type != TokenInteger {
		return Int(n), nil
	}
	r, err := p.peek(1)
	if err != nil || r.Type != TokenIndirectRef {
		return Int(n), nil
	}
	g, err := strconv.Atoi(string(gen.Value))
	if err != nil {
		return Int(n), nil
	}
	p.next()
	p.next()
	return IndirectRef{Number: int(n), Generation: g}, nil
}

func (p *Parser) parseArray() (Object, error) {
	arr := Array{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenArrayEnd:
			p.next()
			return arr, nil
		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF in array")
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("error parsing array element: %w", err)
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) parseDict() (Object, error) {
	dict := Dict{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenDictEnd:
			return dict, nil
		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF in dictionary")
		case TokenName:
		default:
			return nil, fmt.Errorf("expected name for dictionary key at offset %d, got %q", tok.Pos, tok.Value)
		}

		key := string(tok.Value)
		if next, err := p.peek(0); err == nil && next.Type == TokenDictEnd {
			// key without a value
			dict[key] = Null{}
			continue
		}
		value, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("error parsing value for key /%s: %w", key, err)
		}
		dict[key] = value
	}
}

// ParseIndirectObject parses "num gen obj <object> endobj", including a
// stream body when the object is a dictionary followed by "stream".
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	numTok, err := p.next()
	if err != nil {
		return nil, err
	}
	genTok, err := p.next()
	if err != nil {
		return nil, err
	}
	objTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if numTok.Type != TokenInteger || genTok.Type != TokenInteger || !isKeyword(objTok, "obj") {
		return nil, fmt.Errorf("expected object header at offset %d", numTok.Pos)
	}
	num, _ := strconv.Atoi(string(numTok.Value))
	gen, _ := strconv.Atoi(string(genTok.Value))

	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("object %d %d: %w", num, gen, err)
	}

	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if isKeyword(tok, "stream") {
		dict, ok := obj.(Dict)
		if !ok {
			return nil, fmt.Errorf("object %d %d: stream must follow a dictionary", num, gen)
		}
		p.next()
		stream, err := p.parseStream(dict, tok.End)
		if err != nil {
			return nil, fmt.Errorf("object %d %d: %w", num, gen, err)
		}
		obj = stream
		if tok, err = p.peek(0); err != nil {
			return nil, err
		}
	}

	// A missing endobj is tolerated; the next header starts a new object.
	if isKeyword(tok, "endobj") {
		p.next()
	}

	return &IndirectObject{Ref: IndirectRef{Number: num, Generation: gen}, Object: obj}, nil
}

var endstreamKeyword = []byte("endstream")

// parseStream reads the payload that starts after the "stream" keyword at
// offset start. /Length is trusted when "endstream" follows it, otherwise
// the payload runs to the next "endstream".
func (p *Parser) parseStream(dict Dict, start int) (*Stream, error) {
	data := p.lexer.Data()
	for start < len(data) && data[start] == ' ' {
		start++
	}
	if start < len(data) && data[start] == '\r' {
		start++
	}
	if start < len(data) && data[start] == '\n' {
		start++
	}

	if length := p.streamLength(dict); length >= 0 && start+length <= len(data) {
		end := start + length
		after := end
		for after < len(data) && isWhitespace(data[after]) {
			after++
		}
		if bytes.HasPrefix(data[after:], endstreamKeyword) {
			p.Seek(after + len(endstreamKeyword))
			return NewStream(dict, data[start:end]), nil
		}
	}

	idx := bytes.Index(data[start:], endstreamKeyword)
	if idx < 0 {
		return nil, fmt.Errorf("stream at offset %d has no endstream", start)
	}
	end := start + idx
	if end > start && data[end-1] == '\n' {
		end--
	}
	if end > start && data[end-1] == '\r' {
		end--
	}
	p.Seek(start + idx + len(endstreamKeyword))
	return NewStream(dict, data[start:end]), nil
}

// streamLength returns the declared /Length, or -1 when it is missing or
// cannot be resolved.
func (p *Parser) streamLength(dict Dict) int {
	switch v := dict.Get("Length").(type) {
	case Int:
		return int(v)
	case IndirectRef:
		if p.resolver == nil {
			return -1
		}
		obj, err := p.resolver.ResolveReference(v)
		if err != nil {
			return -1
		}
		if n, ok := obj.(Int); ok {
			return int(n)
		}
	}
	return -1
}
