package core

import (
	"testing"
)

func TestLexerTokens(t *testing.T) {
	input := "<< /Type /Page /Count 3 /Scale -1.5 >> [ (a\\(b\\)) <414243> ] 12 0 R % comment\ntrue"
	l := NewLexer([]byte(input))

	expected := []struct {
		typ   TokenType
		value string
	}{
		{TokenDictStart, "<<"},
		{TokenName, "Type"},
		{TokenName, "Page"},
		{TokenName, "Count"},
		{TokenInteger, "3"},
		{TokenName, "Scale"},
		{TokenReal, "-1.5"},
		{TokenDictEnd, ">>"},
		{TokenArrayStart, "["},
		{TokenString, "a(b)"},
		{TokenHexString, "414243"},
		{TokenArrayEnd, "]"},
		{TokenInteger, "12"},
		{TokenInteger, "0"},
		{TokenIndirectRef, "R"},
		{TokenComment, "% comment"},
		{TokenKeyword, "true"},
		{TokenEOF, ""},
	}

	for i, exp := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != exp.typ {
			t.Errorf("token %d: expected type %v, got %v", i, exp.typ, tok.Type)
		}
		if string(tok.Value) != exp.value {
			t.Errorf("token %d: expected value %q, got %q", i, exp.value, tok.Value)
		}
	}
}

func TestReadLiteralString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		closed bool
	}{
		{"simple", "(Hello World)", "Hello World", true},
		{"nested", "(a (b) c)", "a (b) c", true},
		{"escapes", `(line\nbreak\ttab\\slash)`, "line\nbreak\ttab\\slash", true},
		{"octal", `(\101\102\7)`, "AB\x07", true},
		{"octal followed by digit", `(\0053)`, "\x053", true},
		{"continuation", "(abc\\\ndef)", "abcdef", true},
		{"unbalanced", "(abc", "abc", false},
		{"unbalanced nested", "(abc (def)", "abc (def)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, closed, end := ReadLiteralString([]byte(tt.input), 0)
			if string(got) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if closed != tt.closed {
				t.Errorf("expected closed=%v, got %v", tt.closed, closed)
			}
			if end != len(tt.input) {
				t.Errorf("expected end %d, got %d", len(tt.input), end)
			}
		})
	}
}

func TestLexerNameEscapes(t *testing.T) {
	l := NewLexer([]byte("/A#20B /C#2"))
	tok, _ := l.NextToken()
	if string(tok.Value) != "A B" {
		t.Errorf("expected %q, got %q", "A B", tok.Value)
	}
	tok, _ = l.NextToken()
	if string(tok.Value) != "C#2" {
		t.Errorf("expected %q, got %q", "C#2", tok.Value)
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{"(unterminated", "<4G>", ">", "<414243"} {
		l := NewLexer([]byte(input))
		if _, err := l.NextToken(); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestDecodeHex(t *testing.T) {
	if got := string(DecodeHex([]byte("48656c6c6f"))); got != "Hello" {
		t.Errorf("expected Hello, got %q", got)
	}
	if got := DecodeHex([]byte("414")); len(got) != 2 || got[1] != 0x40 {
		t.Errorf("expected odd digit padded with 0, got %v", got)
	}
}
