package model

import "math"

// Point is a position in PDF user space (origin bottom-left).
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle with its origin at the bottom-left.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBoxFromPoints returns the rectangle spanned by two corners.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		X:      math.Min(p1.X, p2.X),
		Y:      math.Min(p1.Y, p2.Y),
		Width:  math.Abs(p2.X - p1.X),
		Height: math.Abs(p2.Y - p1.Y),
	}
}

// IsValid reports whether the box has a positive area.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}

// Matrix is a 2D affine transform [a b c d e f].
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Transform applies the matrix to p.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m × other, i.e. m applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// VerticalScale returns the length of the transformed unit y vector, the
// factor a font size is scaled by.
func (m Matrix) VerticalScale() float64 {
	return math.Hypot(m[2], m[3])
}
