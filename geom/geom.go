// Package geom provides points, vectors and axis-aligned rectangles over
// fixed-point world units.
package geom

import (
	"fmt"

	"github.com/pthm-cable/slide/fixed"
)

// Vector is a displacement in world units.
type Vector struct {
	X, Y fixed.Fixed
}

// Point is a position in world units.
type Point struct {
	X, Y fixed.Fixed
}

// Size is a width/height pair in world units.
type Size struct {
	W, H fixed.Fixed
}

// Vec builds a vector from whole world units.
func Vec(x, y int) Vector { return Vector{fixed.FromInt(x), fixed.FromInt(y)} }

// Pt builds a point from whole world units.
func Pt(x, y int) Point { return Point{fixed.FromInt(x), fixed.FromInt(y)} }

// Sz builds a size from whole world units.
func Sz(w, h int) Size { return Size{fixed.FromInt(w), fixed.FromInt(h)} }

// --- Vector ---

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Neg() Vector         { return Vector{-v.X, -v.Y} }

// Scale multiplies both components by a fixed-point factor.
func (v Vector) Scale(f fixed.Fixed) Vector { return Vector{v.X.Mul(f), v.Y.Mul(f)} }

// Mul and Div scale by plain integers.
func (v Vector) Mul(n int) Vector { return Vector{v.X * fixed.Fixed(n), v.Y * fixed.Fixed(n)} }
func (v Vector) Div(n int) Vector { return Vector{v.X / fixed.Fixed(n), v.Y / fixed.Fixed(n)} }

// MulDiv scales by num/den, multiplying first.
func (v Vector) MulDiv(num, den fixed.Fixed) Vector {
	return Vector{fixed.MulDiv(v.X, num, den), fixed.MulDiv(v.Y, num, den)}
}

func (v Vector) Dot(o Vector) fixed.Fixed { return v.X.Mul(o.X) + v.Y.Mul(o.Y) }

// Perpendicular rotates the vector 90 degrees: (x, y) -> (-y, x).
func (v Vector) Perpendicular() Vector { return Vector{-v.Y, v.X} }

// LengthSq returns the squared length.
func (v Vector) LengthSq() fixed.Fixed { return v.Dot(v) }

// Length returns the Euclidean length.
func (v Vector) Length() fixed.Fixed {
	if v.X == 0 {
		return v.Y.Abs()
	}
	if v.Y == 0 {
		return v.X.Abs()
	}
	return v.LengthSq().Sqrt()
}

// Normalize returns a unit vector in the same direction; zero stays zero.
func (v Vector) Normalize() Vector {
	// Axis-aligned vectors are exact
	switch {
	case v.X == 0 && v.Y == 0:
		return v
	case v.X == 0:
		return Vector{0, fixed.One * fixed.Fixed(v.Y.Sign())}
	case v.Y == 0:
		return Vector{fixed.One * fixed.Fixed(v.X.Sign()), 0}
	}
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{v.X.Div(l), v.Y.Div(l)}
}

// ProjectOn returns the component of v along axis. axis need not be unit length.
func (v Vector) ProjectOn(axis Vector) Vector {
	d := axis.LengthSq()
	if d == 0 {
		return Vector{}
	}
	n := v.Dot(axis)
	return Vector{fixed.MulDiv(axis.X, n, d), fixed.MulDiv(axis.Y, n, d)}
}

func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// AlmostZero reports whether both components are strictly below threshold in magnitude.
func (v Vector) AlmostZero(threshold fixed.Fixed) bool {
	return v.X.Abs() < threshold && v.Y.Abs() < threshold
}

func (v Vector) ToPoint() Point { return Point(v) }

func (v Vector) String() string { return fmt.Sprintf("(%s, %s)", v.X, v.Y) }

// --- Point ---

func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y} }
func (p Point) Sub(o Point) Vector { return Vector{p.X - o.X, p.Y - o.Y} }
func (p Point) ToVector() Vector   { return Vector(p) }

// AddSize offsets the point by a size, as when finding a far corner.
func (p Point) AddSize(s Size) Point { return Point{p.X + s.W, p.Y + s.H} }

func (p Point) String() string { return fmt.Sprintf("(%s, %s)", p.X, p.Y) }

// --- Size ---

func (s Size) Half() Size       { return Size{s.W / 2, s.H / 2} }
func (s Size) ToVector() Vector { return Vector{s.W, s.H} }
