package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/pdfdocx/core"
)

// Operation is one operator with the operands that preceded it.
type Operation struct {
	Op       Op
	Operator string
	Operands []core.Object
	Offset   int

	// Truncated marks a show-text operation synthesized for a string
	// literal that was never closed.
	Truncated bool
}

// SyntaxError describes input that was skipped while tokenizing.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("content stream offset %d: %s", e.Offset, e.Msg)
}

// Parser tokenizes one content stream. It holds its own operand stack, so
// separate parsers can run concurrently.
type Parser struct {
	data     []byte
	pos      int
	lexer    *core.Lexer
	operands []core.Object
	ops      []Operation
	diags    []error
}

// NewParser returns a parser over data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data, lexer: core.NewLexer(data)}
}

// Parse tokenizes the whole stream. It always returns the operations it
// could recognize; the second result lists what was skipped.
func (p *Parser) Parse() ([]Operation, []error) {
	for {
		obj, kw, ok := p.next()
		if !ok {
			break
		}
		if kw == "" {
			p.operands = append(p.operands, obj)
			continue
		}
		p.operator(kw)
	}
	if len(p.operands) > 0 {
		p.diag(len(p.data), fmt.Sprintf("%d operands without operator at end of stream", len(p.operands)))
	}
	return p.ops, p.diags
}

func (p *Parser) diag(offset int, msg string) {
	p.diags = append(p.diags, &SyntaxError{Offset: offset, Msg: msg})
}

func (p *Parser) emit(op Op, keyword string, offset int) {
	operands := make([]core.Object, len(p.operands))
	copy(operands, p.operands)
	p.ops = append(p.ops, Operation{Op: op, Operator: keyword, Operands: operands, Offset: offset})
	p.operands = p.operands[:0]
}

func (p *Parser) operator(kw string) {
	start := p.pos - len(kw)
	switch kw {
	case "true":
		p.operands = append(p.operands, core.Bool(true))
	case "false":
		p.operands = append(p.operands, core.Bool(false))
	case "null":
		p.operands = append(p.operands, core.Null{})
	case "BI":
		p.skipInlineImage()
		p.operands = p.operands[:0]
		p.ops = append(p.ops, Operation{Op: OpInlineImage, Operator: kw, Offset: start})
	default:
		p.emit(LookupOp(kw), kw, start)
	}
}

// next returns the next operand, or the keyword of an operator. ok is false
// at the end of the data.
func (p *Parser) next() (obj core.Object, keyword string, ok bool) {
	for {
		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, "", false
		}
		start := p.pos

		if p.data[p.pos] == '(' {
			if s, ok := p.literal(); ok {
				return s, "", true
			}
			continue
		}

		p.lexer.Seek(p.pos)
		tok, err := p.lexer.NextToken()
		p.pos = p.lexer.Pos()
		if err != nil {
			p.diag(start, err.Error())
			if p.pos <= start {
				p.pos = start + 1
			}
			continue
		}

		switch tok.Type {
		case core.TokenEOF:
			return nil, "", false
		case core.TokenComment:
			continue
		case core.TokenInteger:
			n, err := strconv.ParseInt(string(tok.Value), 10, 64)
			if err != nil {
				f, ferr := strconv.ParseFloat(string(tok.Value), 64)
				if ferr != nil {
					p.diag(start, fmt.Sprintf("invalid number %q", tok.Value))
					continue
				}
				return core.Real(f), "", true
			}
			return core.Int(n), "", true
		case core.TokenReal:
			f, err := strconv.ParseFloat(string(tok.Value), 64)
			if err != nil {
				p.diag(start, fmt.Sprintf("invalid number %q", tok.Value))
				continue
			}
			return core.Real(f), "", true
		case core.TokenName:
			return core.Name(tok.Value), "", true
		case core.TokenHexString:
			return core.String(core.DecodeHex(tok.Value)), "", true
		case core.TokenArrayStart:
			return p.array(start), "", true
		case core.TokenDictStart:
			if d, ok := p.dict(start); ok {
				return d, "", true
			}
			continue
		case core.TokenKeyword, core.TokenIndirectRef:
			return nil, string(tok.Value), true
		default:
			p.diag(start, fmt.Sprintf("unexpected %q", tok.Value))
		}
	}
}

// literal reads a string literal. An unterminated literal is cut at the
// first text operator or line end after it, whichever comes first, and
// emitted as a truncated show-text operation; ok is false in that case.
func (p *Parser) literal() (core.String, bool) {
	start := p.pos
	value, closed, end := core.ReadLiteralString(p.data, start)
	if closed {
		p.pos = end
		return core.String(value), true
	}

	cut, kw := p.truncationPoint(start + 1)
	value, _, _ = core.ReadLiteralString(p.data[:cut], start)
	text := core.String(bytes.TrimRight(value, " \t\r\n\f"))
	p.diag(start, "unterminated string literal truncated")

	op := Operation{Op: OpShowText, Operator: "Tj", Offset: start, Truncated: true}
	switch kw {
	case "Tj", "'":
		op.Op, op.Operator = LookupOp(kw), kw
		op.Operands = []core.Object{text}
	case "TJ":
		op.Op, op.Operator = OpShowTextArray, kw
		op.Operands = []core.Object{core.Array{text}}
	case "\"":
		op.Op, op.Operator = OpMoveShowSpacing, kw
		op.Operands = append(append([]core.Object{}, p.operands...), text)
	default:
		// ET or end of line: resume at the cut.
		op.Operands = []core.Object{text}
		kw = ""
	}
	p.pos = cut + len(kw)
	p.operands = p.operands[:0]
	p.ops = append(p.ops, op)
	return "", false
}

// truncationOps are the operators that end an unterminated literal.
var truncationOps = []string{"Tj", "TJ", "'", "\"", "ET"}

// truncationPoint returns the offset of the first whitespace delimited text
// operator at or after from, or of the line end. kw is empty for a line end.
func (p *Parser) truncationPoint(from int) (int, string) {
	for i := from; i < len(p.data); i++ {
		c := p.data[i]
		if c == '\r' || c == '\n' {
			return i, ""
		}
		if !isSpace(p.data[i-1]) {
			continue
		}
		for _, kw := range truncationOps {
			e := i + len(kw)
			if bytes.HasPrefix(p.data[i:], []byte(kw)) && (e == len(p.data) || isSpace(p.data[e])) {
				return i, kw
			}
		}
	}
	return len(p.data), ""
}

// array collects operands up to the closing bracket. A keyword inside an
// array ends it early.
func (p *Parser) array(start int) core.Array {
	arr := core.Array{}
	for {
		p.skipSpace()
		if p.pos >= len(p.data) {
			p.diag(start, "unterminated array")
			return arr
		}
		switch p.data[p.pos] {
		case ']':
			p.pos++
			return arr
		case '(':
			s, ok := p.literal()
			if !ok {
				return arr
			}
			arr = append(arr, s)
			continue
		}
		obj, kw, ok := p.next()
		if !ok {
			p.diag(start, "unterminated array")
			return arr
		}
		if kw != "" {
			p.diag(start, fmt.Sprintf("operator %q inside array", kw))
			p.pos -= len(kw)
			return arr
		}
		arr = append(arr, obj)
	}
}

// dict parses an inline dictionary such as the properties of BDC.
func (p *Parser) dict(start int) (core.Dict, bool) {
	parser := core.NewParser(p.data)
	parser.Seek(start)
	obj, err := parser.ParseObject()
	if err != nil {
		p.diag(start, err.Error())
		return nil, false
	}
	p.pos = parser.Pos()
	d, ok := obj.(core.Dict)
	return d, ok
}

// skipInlineImage moves past "ID <binary> EI" following BI.
func (p *Parser) skipInlineImage() {
	id := bytes.Index(p.data[p.pos:], []byte("ID"))
	if id < 0 {
		p.pos = len(p.data)
		return
	}
	i := p.pos + id + 2
	for i < len(p.data) {
		j := bytes.Index(p.data[i:], []byte("EI"))
		if j < 0 {
			p.pos = len(p.data)
			return
		}
		at := i + j
		if at > 0 && isSpace(p.data[at-1]) && (at+2 == len(p.data) || isSpace(p.data[at+2])) {
			p.pos = at + 2
			return
		}
		i = at + 2
	}
	p.pos = len(p.data)
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}
