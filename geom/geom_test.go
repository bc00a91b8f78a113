package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/slide/fixed"
)

func TestVectorArithmetic(t *testing.T) {
	a, b := Vec(3, -2), Vec(1, 4)

	assert.Equal(t, Vec(4, 2), a.Add(b))
	assert.Equal(t, Vec(2, -6), a.Sub(b))
	assert.Equal(t, Vec(-3, 2), a.Neg())
	assert.Equal(t, Vec(6, -4), a.Mul(2))
	assert.Equal(t, Vector{fixed.FromFloat(1.5), -fixed.One}, a.Div(2))
	assert.Equal(t, fixed.FromInt(-5), a.Dot(b))
	assert.Equal(t, Vec(2, 3), a.Perpendicular())
}

func TestPerpendicularIsOrthogonal(t *testing.T) {
	for _, v := range []Vector{Vec(1, 0), Vec(0, 2), Vec(-3, 5), Vec(7, 7)} {
		assert.Equal(t, fixed.Fixed(0), v.Dot(v.Perpendicular()), "v=%s", v)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Vec(1, 0), Vec(5, 0).Normalize())
	assert.Equal(t, Vec(0, -1), Vec(0, -3).Normalize())
	assert.Equal(t, Vector{}, Vector{}.Normalize())

	n := Vec(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.X.Float64(), 1e-4)
	assert.InDelta(t, 0.8, n.Y.Float64(), 1e-4)
}

func TestProjectOn(t *testing.T) {
	// Non-unit axis still gives the true projection
	assert.Equal(t, Vec(0, 2), Vec(3, 2).ProjectOn(Vec(0, -5)))
	assert.Equal(t, Vec(3, 0), Vec(3, 2).ProjectOn(Vec(8, 0)))
	assert.Equal(t, Vector{}, Vec(3, 2).ProjectOn(Vector{}))

	// Removing the projection leaves a perpendicular remainder
	v := Vec(2, 1)
	axis := Vec(1, 1)
	rest := v.Sub(v.ProjectOn(axis))
	assert.Equal(t, fixed.Fixed(0), rest.Dot(axis))
}

func TestAlmostZero(t *testing.T) {
	threshold := fixed.One / 16
	assert.True(t, Vector{threshold - 1, -(threshold - 1)}.AlmostZero(threshold))
	assert.False(t, Vector{threshold, 0}.AlmostZero(threshold))
	assert.False(t, Vector{0, -threshold}.AlmostZero(threshold))
}

func TestRectEdges(t *testing.T) {
	r := R(-6, -26, 12, 27)
	assert.Equal(t, fixed.FromInt(-6), r.MinX())
	assert.Equal(t, fixed.FromInt(6), r.MaxX())
	assert.Equal(t, fixed.FromInt(1), r.MaxY())
	assert.Equal(t, [4]Point{Pt(-6, -26), Pt(6, -26), Pt(6, 1), Pt(-6, 1)}, r.Corners())
	assert.Equal(t, Point{0, fixed.FromFloat(-12.5)}, r.Center())
	assert.Equal(t, R(-4, -23, 12, 27), r.Translate(Vec(2, 3)))
}

func TestRectIntersectsAndTouches(t *testing.T) {
	a := R(0, 0, 8, 8)
	tests := []struct {
		name       string
		b          Rect
		intersects bool
		touches    bool
	}{
		{"overlapping", R(4, 4, 8, 8), true, true},
		{"shared edge", R(8, 0, 8, 8), false, true},
		{"shared corner", R(8, 8, 8, 8), false, true},
		{"apart", R(9, 0, 8, 8), false, false},
		{"contained", R(2, 2, 2, 2), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.intersects, a.Intersects(tt.b))
			assert.Equal(t, tt.touches, a.Touches(tt.b))
			assert.Equal(t, tt.touches, tt.b.Touches(a))
		})
	}
}

func TestExpandTowards(t *testing.T) {
	r := R(10, 10, 4, 4)
	assert.Equal(t, R(10, 10, 7, 4), r.ExpandTowards(Vec(3, 0)))
	assert.Equal(t, R(7, 10, 7, 4), r.ExpandTowards(Vec(-3, 0)))
	assert.Equal(t, R(10, 8, 4, 6), r.ExpandTowards(Vec(0, -2)))
	assert.Equal(t, R(8, 10, 6, 9), r.ExpandTowards(Vec(-2, 5)))
	assert.Equal(t, r, r.ExpandTowards(Vector{}))
}

func TestRectFromPointsAndUnion(t *testing.T) {
	got := RectFromPoints([]Point{Pt(3, 1), Pt(-2, 4), Pt(0, -5)})
	assert.Equal(t, R(-2, -5, 5, 9), got)
	assert.Equal(t, Rect{}, RectFromPoints(nil))
	assert.Equal(t, R(0, 0, 16, 12), R(0, 0, 4, 4).Union(R(12, 8, 4, 4)))
}

func TestIntervalGap(t *testing.T) {
	a := Interval{fixed.FromInt(0), fixed.FromInt(4)}
	assert.Equal(t, fixed.FromInt(2), a.Gap(Interval{fixed.FromInt(6), fixed.FromInt(9)}))
	assert.Equal(t, fixed.FromInt(3), a.Gap(Interval{fixed.FromInt(-5), fixed.FromInt(-3)}))
	assert.Equal(t, fixed.Fixed(0), a.Gap(Interval{fixed.FromInt(4), fixed.FromInt(9)}))
	assert.Equal(t, fixed.FromInt(-1), a.Gap(Interval{fixed.FromInt(3), fixed.FromInt(9)}))
	assert.False(t, a.Overlaps(Interval{fixed.FromInt(4), fixed.FromInt(9)}))
	assert.True(t, a.Contains(fixed.FromInt(4)))
}
