package geom

import (
	"fmt"

	"github.com/pthm-cable/slide/fixed"
)

// Rect is an axis-aligned box. It is only ever used as a bounding volume.
type Rect struct {
	Origin Point
	Size   Size
}

// R builds a rectangle from whole world units.
func R(x, y, w, h int) Rect {
	return Rect{Origin: Pt(x, y), Size: Sz(w, h)}
}

// RectFromPoints returns the smallest rectangle enclosing pts.
func RectFromPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = fixed.Min(minX, p.X)
		maxX = fixed.Max(maxX, p.X)
		minY = fixed.Min(minY, p.Y)
		maxY = fixed.Max(maxY, p.Y)
	}
	return Rect{Origin: Point{minX, minY}, Size: Size{maxX - minX, maxY - minY}}
}

func (r Rect) MinX() fixed.Fixed { return r.Origin.X }
func (r Rect) MinY() fixed.Fixed { return r.Origin.Y }
func (r Rect) MaxX() fixed.Fixed { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() fixed.Fixed { return r.Origin.Y + r.Size.H }

func (r Rect) TopRight() Point    { return Point{r.MaxX(), r.MinY()} }
func (r Rect) BottomRight() Point { return Point{r.MaxX(), r.MaxY()} }
func (r Rect) BottomLeft() Point  { return Point{r.MinX(), r.MaxY()} }

// Corners returns the four corners in clockwise order (y grows downward),
// starting at the origin.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.Origin, r.TopRight(), r.BottomRight(), r.BottomLeft()}
}

func (r Rect) Center() Point { return r.Origin.AddSize(r.Size.Half()) }

// Translate returns the rectangle moved by v.
func (r Rect) Translate(v Vector) Rect {
	return Rect{Origin: r.Origin.Add(v), Size: r.Size}
}

// Intersects reports whether the interiors overlap; shared edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Touches is like Intersects but also reports coinciding edges.
func (r Rect) Touches(o Rect) bool {
	return r.MinX() <= o.MaxX() && o.MinX() <= r.MaxX() &&
		r.MinY() <= o.MaxY() && o.MinY() <= r.MaxY()
}

// Contains reports whether p lies inside r or on its edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Union returns the smallest rectangle enclosing both.
func (r Rect) Union(o Rect) Rect {
	minX := fixed.Min(r.MinX(), o.MinX())
	minY := fixed.Min(r.MinY(), o.MinY())
	maxX := fixed.Max(r.MaxX(), o.MaxX())
	maxY := fixed.Max(r.MaxY(), o.MaxY())
	return Rect{Origin: Point{minX, minY}, Size: Size{maxX - minX, maxY - minY}}
}

// ExpandTowards grows the rectangle along v only, so it encloses every
// position the box passes through while moving by v.
func (r Rect) ExpandTowards(v Vector) Rect {
	out := r
	if v.X < 0 {
		out.Origin.X += v.X
		out.Size.W -= v.X
	} else if v.X > 0 {
		out.Size.W += v.X
	}
	if v.Y < 0 {
		out.Origin.Y += v.Y
		out.Size.H -= v.Y
	} else if v.Y > 0 {
		out.Size.H += v.Y
	}
	return out
}

func (r Rect) XInterval() Interval { return Interval{r.MinX(), r.MaxX()} }
func (r Rect) YInterval() Interval { return Interval{r.MinY(), r.MaxY()} }

func (r Rect) String() string {
	return fmt.Sprintf("[%s %s %sx%s]", r.Origin.X, r.Origin.Y, r.Size.W, r.Size.H)
}

// Interval is a closed range on one axis.
type Interval struct {
	Min, Max fixed.Fixed
}

// Overlaps reports whether the intervals share more than an endpoint.
func (i Interval) Overlaps(o Interval) bool {
	return i.Min < o.Max && o.Min < i.Max
}

// Gap returns the signed distance between the intervals: positive when they
// are apart, zero when they meet, negative by the overlap depth otherwise.
func (i Interval) Gap(o Interval) fixed.Fixed {
	if i.Min < o.Min {
		return o.Min - i.Max
	}
	return i.Min - o.Max
}

// Contains reports whether v lies within the closed interval.
func (i Interval) Contains(v fixed.Fixed) bool {
	return v >= i.Min && v <= i.Max
}
