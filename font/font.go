package font

import (
	"github.com/tsawler/pdfdocx/core"
	"golang.org/x/text/unicode/norm"
)

// ObjectResolver follows indirect references. *core.ObjectTable satisfies it.
type ObjectResolver interface {
	Resolve(obj core.Object) core.Object
}

// Font is a font resource of a page, ready to decode and measure shown
// strings.
type Font struct {
	Resource string
	BaseFont string
	Subtype  string
	Resolved Resolved

	encoding     *Encoding
	cmap         *CMap
	composite    bool
	firstChar    int
	widths       []float64
	cidWidths    map[uint32]float64
	defaultWidth float64
}

// New returns a font known only by name, measured with standard metrics.
func New(resource, baseFont string, r Resolver) *Font {
	return &Font{
		Resource: resource,
		BaseFont: baseFont,
		Resolved: r.Resolve(baseFont),
	}
}

// Load builds a font from its dictionary. Missing or malformed entries are
// skipped; a font always results.
func Load(resource string, dict core.Dict, objs ObjectResolver, r Resolver) *Font {
	baseFont, _ := dict.GetName("BaseFont")
	f := New(resource, string(baseFont), r)
	if subtype, ok := dict.GetName("Subtype"); ok {
		f.Subtype = string(subtype)
	}

	if s, ok := objs.Resolve(dict.Get("ToUnicode")).(*core.Stream); ok {
		if data, err := s.Decode(); err == nil {
			f.cmap = ParseCMap(data)
		}
	}

	if f.Subtype == "Type0" {
		f.composite = true
		f.loadDescendant(dict, objs)
		return f
	}

	f.loadEncoding(objs.Resolve(dict.Get("Encoding")), objs)
	if first, ok := core.Number(objs.Resolve(dict.Get("FirstChar"))); ok {
		f.firstChar = int(first)
	}
	if arr, ok := objs.Resolve(dict.Get("Widths")).(core.Array); ok {
		f.widths = make([]float64, len(arr))
		for i, w := range arr {
			f.widths[i], _ = core.Number(objs.Resolve(w))
		}
	}
	if desc, ok := objs.Resolve(dict.Get("FontDescriptor")).(core.Dict); ok {
		f.defaultWidth, _ = core.Number(objs.Resolve(desc.Get("MissingWidth")))
	}
	return f
}

func (f *Font) loadEncoding(obj core.Object, objs ObjectResolver) {
	switch enc := obj.(type) {
	case core.Name:
		f.encoding = NewEncoding(string(enc))
	case core.Dict:
		base, _ := enc.GetName("BaseEncoding")
		f.encoding = NewEncoding(string(base))
		if arr, ok := objs.Resolve(enc.Get("Differences")).(core.Array); ok {
			diffs := make([]interface{}, 0, len(arr))
			for _, d := range arr {
				switch v := d.(type) {
				case core.Int:
					diffs = append(diffs, int(v))
				case core.Name:
					diffs = append(diffs, string(v))
				}
			}
			f.encoding.ApplyDifferences(diffs)
		}
	}
}

// loadDescendant reads /DW and /W from the CIDFont of a Type0 font.
func (f *Font) loadDescendant(dict core.Dict, objs ObjectResolver) {
	f.defaultWidth = 1000
	arr, ok := objs.Resolve(dict.Get("DescendantFonts")).(core.Array)
	if !ok || len(arr) == 0 {
		return
	}
	desc, ok := objs.Resolve(arr[0]).(core.Dict)
	if !ok {
		return
	}
	if dw, ok := core.Number(objs.Resolve(desc.Get("DW"))); ok {
		f.defaultWidth = dw
	}
	w, ok := objs.Resolve(desc.Get("W")).(core.Array)
	if !ok {
		return
	}

	// Entries are either "c [w1 w2 ...]" or "cFirst cLast w".
	f.cidWidths = make(map[uint32]float64)
	for i := 0; i < len(w); {
		first, ok := core.Number(objs.Resolve(w[i]))
		if !ok || i+1 >= len(w) {
			break
		}
		if list, ok := objs.Resolve(w[i+1]).(core.Array); ok {
			for j, v := range list {
				width, _ := core.Number(objs.Resolve(v))
				f.cidWidths[uint32(first)+uint32(j)] = width
			}
			i += 2
			continue
		}
		if i+2 >= len(w) {
			break
		}
		last, _ := core.Number(objs.Resolve(w[i+1]))
		width, _ := core.Number(objs.Resolve(w[i+2]))
		for c := uint32(first); c <= uint32(last) && c-uint32(first) < 0x10000; c++ {
			f.cidWidths[c] = width
		}
		i += 3
	}
}

// codeLength is the number of bytes per character code.
func (f *Font) codeLength() int {
	if f.cmap != nil {
		return f.cmap.CodeLength()
	}
	if f.composite {
		return 2
	}
	return 1
}

// Decode turns the bytes of a shown string into text, preferring the
// ToUnicode CMap, then the font's encoding, then DecodeText.
func (f *Font) Decode(raw []byte) Decoded {
	if f.cmap != nil {
		s, complete := f.cmap.Decode(raw)
		if s != "" || f.composite {
			return finish(s, StrategyToUnicode, !complete)
		}
	}
	if f.encoding != nil && !f.composite {
		return finish(f.encoding.Decode(raw), StrategyEncoding, false)
	}
	return DecodeText(raw)
}

func finish(s string, strategy Strategy, lossy bool) Decoded {
	clean := Sanitize(s)
	return Decoded{
		Text:     norm.NFC.String(clean),
		Strategy: strategy,
		Lossy:    lossy || clean != s,
	}
}

// Glyph is the measurement of one character code.
type Glyph struct {
	Code  uint32
	Width float64 // in text space units per unit of font size
	Space bool    // single-byte code 32, which receives word spacing
}

// Glyphs splits raw into character codes and measures each.
func (f *Font) Glyphs(raw []byte) []Glyph {
	n := f.codeLength()
	codes := splitCodes(raw, n)
	glyphs := make([]Glyph, len(codes))
	for i, code := range codes {
		glyphs[i] = Glyph{
			Code:  code,
			Width: f.width(code) / 1000,
			Space: n == 1 && code == 32,
		}
	}
	return glyphs
}

func (f *Font) width(code uint32) float64 {
	if f.composite {
		if w, ok := f.cidWidths[code]; ok {
			return w
		}
		return f.defaultWidth
	}
	if i := int(code) - f.firstChar; i >= 0 && i < len(f.widths) {
		return f.widths[i]
	}
	if f.defaultWidth > 0 {
		return f.defaultWidth
	}
	r := rune(code)
	if f.encoding != nil && code < 256 {
		r = f.encoding.Rune(byte(code))
	}
	return float64(StandardWidth(f.Resolved, r))
}

// Advance returns the horizontal displacement, in unscaled text space, of
// showing raw with the given text state parameters. hscale is the
// horizontal scaling as a fraction.
func (f *Font) Advance(raw []byte, size, charSpacing, wordSpacing, hscale float64) float64 {
	var tx float64
	for _, g := range f.Glyphs(raw) {
		w := g.Width*size + charSpacing
		if g.Space {
			w += wordSpacing
		}
		tx += w * hscale
	}
	return tx
}
