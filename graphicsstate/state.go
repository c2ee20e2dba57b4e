package graphicsstate

import (
	"errors"

	"github.com/tsawler/pdfdocx/model"
)

// ErrStackUnderflow is returned by Restore without a matching Save.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// Config holds the initial values of a fresh state.
type Config struct {
	FontSize float64     `validate:"gt=0"`
	Color    model.Color // fill and stroke
}

// DefaultConfig returns 12pt black text.
func DefaultConfig() Config {
	return Config{FontSize: 12, Color: model.Black}
}

// State is a copyable snapshot of the graphics and text state.
type State struct {
	CTM model.Matrix

	Font     string // resource name selected by Tf
	FontSize float64

	Fill        model.Color
	Stroke      model.Color
	FillSpace   string // color space selected by cs
	StrokeSpace string

	CharSpacing  float64
	WordSpacing  float64
	HorizScaling float64 // percent
	Leading      float64
	Rise         float64

	TextMatrix model.Matrix
	LineMatrix model.Matrix
}

// GraphicsState is the mutable state of one content stream interpreter.
type GraphicsState struct {
	State
	stack []State
}

// New returns a state initialized from cfg.
func New(cfg Config) *GraphicsState {
	return &GraphicsState{State: State{
		CTM:          model.Identity(),
		FontSize:     cfg.FontSize,
		Fill:         cfg.Color,
		Stroke:       cfg.Color,
		FillSpace:    "DeviceGray",
		StrokeSpace:  "DeviceGray",
		HorizScaling: 100,
		TextMatrix:   model.Identity(),
		LineMatrix:   model.Identity(),
	}}
}

// Snapshot returns a copy of the current state.
func (gs *GraphicsState) Snapshot() State {
	return gs.State
}

// Save pushes the current state (q).
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, gs.State)
}

// Restore pops the last saved state (Q). An unmatched Q leaves the state
// unchanged.
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}
	gs.State = gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]
	return nil
}

// Depth returns the number of saved states.
func (gs *GraphicsState) Depth() int { return len(gs.stack) }

// Concat premultiplies the CTM by m (cm).
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFont selects a font resource and size (Tf).
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Font = name
	gs.FontSize = size
}

// BeginText resets the text matrices (BT).
func (gs *GraphicsState) BeginText() {
	gs.TextMatrix = model.Identity()
	gs.LineMatrix = model.Identity()
}

// SetTextMatrix sets both text matrices (Tm).
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.TextMatrix = m
	gs.LineMatrix = m
}

// MoveText starts a new line offset from the start of the current one (Td).
func (gs *GraphicsState) MoveText(tx, ty float64) {
	gs.LineMatrix = model.Translate(tx, ty).Multiply(gs.LineMatrix)
	gs.TextMatrix = gs.LineMatrix
}

// MoveTextSetLeading is Td that also sets the leading to -ty (TD).
func (gs *GraphicsState) MoveTextSetLeading(tx, ty float64) {
	gs.Leading = -ty
	gs.MoveText(tx, ty)
}

// NextLine moves to the start of the next line (T*).
func (gs *GraphicsState) NextLine() {
	gs.MoveText(0, -gs.Leading)
}

// Advance moves the text position along the baseline by w unscaled text
// space units, applying horizontal scaling.
func (gs *GraphicsState) Advance(w float64) {
	tx := w * gs.HorizScaling / 100
	gs.TextMatrix = model.Translate(tx, 0).Multiply(gs.TextMatrix)
}

// Position returns the text origin in user space.
func (s State) Position() model.Point {
	m := model.Translate(0, s.Rise).Multiply(s.TextMatrix).Multiply(s.CTM)
	return model.Point{X: m[4], Y: m[5]}
}

// EffectiveFontSize returns the font size as rendered, after the text
// matrix and CTM scaling.
func (s State) EffectiveFontSize() float64 {
	scale := s.TextMatrix.Multiply(s.CTM).VerticalScale()
	if scale == 0 {
		return s.FontSize
	}
	size := s.FontSize * scale
	if size < 0 {
		size = -size
	}
	return size
}
