package font

import (
	"testing"
	"unicode/utf8"
)

func TestDecodeTextStrategies(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		want     string
		strategy Strategy
		lossy    bool
	}{
		{"ascii", []byte("Hello"), "Hello", StrategyLatin1, false},
		{"latin-1 accent", []byte{'c', 'a', 'f', 0xE9}, "café", StrategyLatin1, false},
		{"utf-16 be bom", []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'}, "Hi", StrategyUTF16, false},
		{"utf-16 le bom", []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}, "Hi", StrategyUTF16, false},
		{"utf-8 em dash", []byte("a—b"), "a—b", StrategyUTF8, false},
		{"windows-1252 quotes", []byte{0x93, 'x', 0x94}, "“x”", StrategyWindows1252, false},
		{"control bytes", []byte{'a', 0x01, 'b'}, "a\uFFFDb", StrategyLossyLatin1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeText(tt.raw)
			if got.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Text)
			}
			if got.Strategy != tt.strategy {
				t.Errorf("expected strategy %s, got %s", tt.strategy, got.Strategy)
			}
			if got.Lossy != tt.lossy {
				t.Errorf("expected lossy=%v, got %v", tt.lossy, got.Lossy)
			}
		})
	}
}

func TestDecodeTextNeverFails(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	got := DecodeText(raw)
	if !utf8.ValidString(got.Text) {
		t.Error("expected valid UTF-8 output")
	}
	if Sanitize(got.Text) != got.Text {
		t.Error("expected output free of XML-invalid characters")
	}
}

func TestDecodeTextNormalizesNFC(t *testing.T) {
	got := DecodeText([]byte("e\u0301"))
	if got.Text != "\u00e9" {
		t.Errorf("expected composed é, got %q", got.Text)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("ok\ttext\n"); got != "ok\ttext\n" {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if got := Sanitize("a\x00b\x1fc"); got != "a\uFFFDb\uFFFDc" {
		t.Errorf("expected controls replaced, got %q", got)
	}
}
