package text

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfdocx/contentstream"
	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/font"
	"github.com/tsawler/pdfdocx/graphicsstate"
	"github.com/tsawler/pdfdocx/model"
)

// spaceKern is the TJ adjustment, in thousandths of an em, past which a gap
// between two strings is treated as a word break.
const spaceKern = -250

// DecodeError reports a shown string that no strict strategy could decode.
type DecodeError struct {
	Offset int
	Font   string
	Text   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset %d: font %s: lossy decode %q", e.Offset, e.Font, e.Text)
}

func (e *DecodeError) Unwrap() error { return font.ErrDecodeFallback }

// Extractor turns content stream operations into text fragments.
type Extractor struct {
	cfg      graphicsstate.Config
	resolver font.Resolver
	fonts    map[string]*font.Font

	gs        *graphicsstate.GraphicsState
	inText    bool
	fragments []model.TextFragment
	diags     []error
}

// NewExtractor returns an extractor whose streams start from cfg.
func NewExtractor(cfg graphicsstate.Config, resolver font.Resolver) *Extractor {
	return &Extractor{
		cfg:      cfg,
		resolver: resolver,
		fonts:    make(map[string]*font.Font),
	}
}

// RegisterFont makes f available to Tf under its resource name.
func (e *Extractor) RegisterFont(f *font.Font) {
	e.fonts[f.Resource] = f
}

// RegisterFonts loads every font of a /Resources dictionary.
func (e *Extractor) RegisterFonts(resources core.Dict, objs font.ObjectResolver) {
	if resources == nil {
		return
	}
	fonts, ok := objs.Resolve(resources.Get("Font")).(core.Dict)
	if !ok {
		return
	}
	for _, name := range fonts.Keys() {
		dict, ok := objs.Resolve(fonts.Get(name)).(core.Dict)
		if !ok {
			continue
		}
		e.RegisterFont(font.Load(name, dict, objs, e.resolver))
	}
}

// Fonts returns the registered fonts by resource name.
func (e *Extractor) Fonts() map[string]*font.Font {
	return e.fonts
}

// Diagnostics returns the problems recovered from since the extractor was
// created.
func (e *Extractor) Diagnostics() []error {
	return e.diags
}

// ExtractFromBytes parses and replays a decoded content stream.
func (e *Extractor) ExtractFromBytes(data []byte) []model.TextFragment {
	ops, diags := contentstream.NewParser(data).Parse()
	e.diags = append(e.diags, diags...)
	return e.Extract(ops)
}

// Extract replays ops from a fresh graphics state and returns the fragments
// shown, in stream order.
func (e *Extractor) Extract(ops []contentstream.Operation) []model.TextFragment {
	e.gs = graphicsstate.New(e.cfg)
	e.inText = false
	e.fragments = nil

	for _, op := range ops {
		e.process(op)
	}
	return e.fragments
}

func (e *Extractor) process(op contentstream.Operation) {
	nums, _ := core.Array(op.Operands).Numbers()

	switch op.Op {
	case contentstream.OpSave:
		e.gs.Save()
	case contentstream.OpRestore:
		if err := e.gs.Restore(); err != nil {
			e.diags = append(e.diags, fmt.Errorf("offset %d: %w", op.Offset, err))
		}
	case contentstream.OpConcat:
		if m, ok := matrix(nums); ok {
			e.gs.Concat(m)
		}

	case contentstream.OpBeginText:
		e.inText = true
		e.gs.BeginText()
	case contentstream.OpEndText:
		e.inText = false

	case contentstream.OpSetFont:
		if len(op.Operands) == 2 {
			name, ok := op.Operands[0].(core.Name)
			size, ok2 := core.Number(op.Operands[1])
			if ok && ok2 {
				e.gs.SetFont(string(name), size)
			}
		}
	case contentstream.OpSetLeading:
		if len(nums) == 1 {
			e.gs.Leading = nums[0]
		}
	case contentstream.OpSetCharSpacing:
		if len(nums) == 1 {
			e.gs.CharSpacing = nums[0]
		}
	case contentstream.OpSetWordSpacing:
		if len(nums) == 1 {
			e.gs.WordSpacing = nums[0]
		}
	case contentstream.OpSetHorizScaling:
		if len(nums) == 1 {
			e.gs.HorizScaling = nums[0]
		}
	case contentstream.OpSetRise:
		if len(nums) == 1 {
			e.gs.Rise = nums[0]
		}

	case contentstream.OpTextMatrix:
		if m, ok := matrix(nums); ok {
			e.gs.SetTextMatrix(m)
		}
	case contentstream.OpTextMove:
		if len(nums) == 2 {
			e.gs.MoveText(nums[0], nums[1])
		}
	case contentstream.OpTextMoveLeading:
		if len(nums) == 2 {
			e.gs.MoveTextSetLeading(nums[0], nums[1])
		}
	case contentstream.OpNextLine:
		e.gs.NextLine()

	case contentstream.OpShowText:
		if s, ok := lastString(op.Operands); ok {
			e.show(op.Offset, []core.String{s}, nil)
		}
	case contentstream.OpShowTextArray:
		if len(op.Operands) == 1 {
			if arr, ok := op.Operands[0].(core.Array); ok {
				e.showArray(op.Offset, arr)
			}
		}
	case contentstream.OpMoveShow:
		e.gs.NextLine()
		if s, ok := lastString(op.Operands); ok {
			e.show(op.Offset, []core.String{s}, nil)
		}
	case contentstream.OpMoveShowSpacing:
		if len(op.Operands) == 3 {
			if tw, ok := core.Number(op.Operands[0]); ok {
				e.gs.WordSpacing = tw
			}
			if tc, ok := core.Number(op.Operands[1]); ok {
				e.gs.CharSpacing = tc
			}
			e.gs.NextLine()
			if s, ok := op.Operands[2].(core.String); ok {
				e.show(op.Offset, []core.String{s}, nil)
			}
		}

	case contentstream.OpSetFillGray, contentstream.OpSetFillRGB, contentstream.OpSetFillCMYK:
		if c, ok := deviceColor(nums); ok && len(nums) == colorArity(op.Op) {
			e.gs.Fill = c
		}
	case contentstream.OpSetStrokeGray, contentstream.OpSetStrokeRGB, contentstream.OpSetStrokeCMYK:
		if c, ok := deviceColor(nums); ok && len(nums) == colorArity(op.Op) {
			e.gs.Stroke = c
		}
	case contentstream.OpSetFillColor:
		if c, ok := deviceColor(leadingNumbers(op.Operands)); ok {
			e.gs.Fill = c
		}
	case contentstream.OpSetStrokeColor:
		if c, ok := deviceColor(leadingNumbers(op.Operands)); ok {
			e.gs.Stroke = c
		}
	case contentstream.OpSetFillSpace:
		if name, ok := lastName(op.Operands); ok {
			e.gs.FillSpace = name
			e.gs.Fill = model.Black
		}
	case contentstream.OpSetStrokeSpace:
		if name, ok := lastName(op.Operands); ok {
			e.gs.StrokeSpace = name
			e.gs.Stroke = model.Black
		}
	}
}

// showArray handles TJ: strings are joined into one fragment, and a kern
// wide enough to be a word gap becomes a space.
func (e *Extractor) showArray(offset int, arr core.Array) {
	var parts []core.String
	var kerns []float64
	pending := 0.0
	for _, item := range arr {
		switch v := item.(type) {
		case core.String:
			parts = append(parts, v)
			kerns = append(kerns, pending)
			pending = 0
		default:
			if n, ok := core.Number(v); ok {
				pending += n
			}
		}
	}
	if len(parts) == 0 {
		e.advanceKern(pending)
		return
	}
	e.advanceKern(kerns[0])
	kerns[0] = 0
	e.show(offset, parts, kerns)
	e.advanceKern(pending)
}

// show emits one fragment for the given strings. kerns[i] is the TJ
// adjustment applied before parts[i]; nil means none.
func (e *Extractor) show(offset int, parts []core.String, kerns []float64) {
	if !e.inText {
		return
	}
	f := e.font()
	state := e.gs.Snapshot()

	var sb strings.Builder
	for i, raw := range parts {
		if kerns != nil && i > 0 {
			if kerns[i] <= spaceKern && !endsWithSpace(sb.String()) {
				sb.WriteByte(' ')
			}
		}
		if kerns != nil {
			e.advanceKern(kerns[i])
		}

		dec := f.Decode([]byte(raw))
		if dec.Lossy {
			e.diags = append(e.diags, &DecodeError{Offset: offset, Font: f.Resource, Text: dec.Text})
		}
		sb.WriteString(dec.Text)

		tx := f.Advance([]byte(raw), e.gs.FontSize, e.gs.CharSpacing, e.gs.WordSpacing, 1)
		e.gs.Advance(tx)
	}

	if sb.Len() == 0 {
		return
	}

	pos := state.Position()
	e.fragments = append(e.fragments, model.TextFragment{
		Text:  sb.String(),
		X:     pos.X,
		Y:     pos.Y,
		Width: e.gs.Position().X - pos.X,
		Format: model.Format{
			Family: f.Resolved.Family,
			Size:   state.EffectiveFontSize(),
			Color:  state.Fill,
			Bold:   f.Resolved.Bold,
			Italic: f.Resolved.Italic,
		},
		FontResource: state.Font,
		BaseFont:     f.BaseFont,
	})
}

func (e *Extractor) advanceKern(k float64) {
	if k != 0 {
		e.gs.Advance(-k / 1000 * e.gs.FontSize)
	}
}

// font returns the current font, creating a name-only font for resources
// that were never registered.
func (e *Extractor) font() *font.Font {
	name := e.gs.Font
	if f, ok := e.fonts[name]; ok {
		return f
	}
	f := font.New(name, name, e.resolver)
	e.fonts[name] = f
	return f
}

func endsWithSpace(s string) bool {
	return s == "" || strings.HasSuffix(s, " ")
}

func matrix(nums []float64) (model.Matrix, bool) {
	if len(nums) != 6 {
		return model.Matrix{}, false
	}
	var m model.Matrix
	copy(m[:], nums)
	return m, true
}

// deviceColor interprets color operands by count: one gray, three RGB or
// four CMYK components.
// colorArity is the operand count of a device color operator.
func colorArity(op contentstream.Op) int {
	switch op {
	case contentstream.OpSetFillGray, contentstream.OpSetStrokeGray:
		return 1
	case contentstream.OpSetFillRGB, contentstream.OpSetStrokeRGB:
		return 3
	case contentstream.OpSetFillCMYK, contentstream.OpSetStrokeCMYK:
		return 4
	}
	return 0
}

// deviceColor picks the color model from the operand count, as sc and scn
// require.
func deviceColor(nums []float64) (model.Color, bool) {
	switch len(nums) {
	case 1:
		return model.Gray(nums[0]), true
	case 3:
		return model.RGB(nums[0], nums[1], nums[2]), true
	case 4:
		return model.CMYK(nums[0], nums[1], nums[2], nums[3]), true
	}
	return model.Color{}, false
}

// leadingNumbers returns the numeric operands of sc/scn, ignoring a trailing
// pattern name.
func leadingNumbers(operands []core.Object) []float64 {
	var nums []float64
	for _, o := range operands {
		n, ok := core.Number(o)
		if !ok {
			break
		}
		nums = append(nums, n)
	}
	return nums
}

func lastString(operands []core.Object) (core.String, bool) {
	if len(operands) == 0 {
		return "", false
	}
	s, ok := operands[len(operands)-1].(core.String)
	return s, ok
}

func lastName(operands []core.Object) (string, bool) {
	if len(operands) == 0 {
		return "", false
	}
	n, ok := operands[len(operands)-1].(core.Name)
	return string(n), ok
}
