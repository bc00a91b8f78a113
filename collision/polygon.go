package collision

import (
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

// Polygon is a convex quadrilateral. Points are in clockwise order.
type Polygon struct {
	points [4]geom.Point
	bbox   geom.Rect

	// An edge parallel to the y axis has a horizontal normal, and vice versa.
	hasHorizontalNormal bool
	hasVerticalNormal   bool

	otherNormals [4]geom.Vector
	numOther     int
}

// NewPolygon builds a polygon from four clockwise points.
func NewPolygon(points [4]geom.Point) Polygon {
	p := Polygon{
		points: points,
		bbox:   geom.RectFromPoints(points[:]),
	}
	for i := range points {
		edge := points[(i+1)%4].Sub(points[i])
		switch {
		case edge.IsZero():
		case edge.X == 0:
			p.hasHorizontalNormal = true
		case edge.Y == 0:
			p.hasVerticalNormal = true
		default:
			p.otherNormals[p.numOther] = edge.Perpendicular()
			p.numOther++
		}
	}
	return p
}

// PolygonFromRect builds the polygon covering r.
func PolygonFromRect(r geom.Rect) Polygon {
	return Polygon{
		points:              r.Corners(),
		bbox:                r,
		hasHorizontalNormal: true,
		hasVerticalNormal:   true,
	}
}

func (p Polygon) Points() [4]geom.Point { return p.points }
func (p Polygon) BBox() geom.Rect      { return p.bbox }
func (p Polygon) Center() geom.Point   { return p.bbox.Center() }

// Normals returns the non-axis-aligned edge normals.
func (p Polygon) Normals() []geom.Vector { return p.otherNormals[:p.numOther] }

// MoveBy returns a copy translated by d.
func (p Polygon) MoveBy(d geom.Vector) Polygon {
	for i := range p.points {
		p.points[i] = p.points[i].Add(d)
	}
	p.bbox = p.bbox.Translate(d)
	return p
}

// ExtendedBBox returns the bounding box stretched along d, enclosing all the
// space the polygon crosses while moving by d.
func (p Polygon) ExtendedBBox(d geom.Vector) geom.Rect {
	return p.bbox.ExpandTowards(d)
}

// ProjectOntoAxis returns the extent of the polygon along axis, and the
// points that produced it. axis need not be unit length.
func (p Polygon) ProjectOntoAxis(axis geom.Vector) (lo, hi fixed.Fixed, loPt, hiPt geom.Point) {
	loPt, hiPt = p.points[0], p.points[0]
	lo = axis.Dot(loPt.ToVector())
	hi = lo
	for _, pt := range p.points[1:] {
		d := axis.Dot(pt.ToVector())
		if d < lo {
			lo, loPt = d, pt
		} else if d > hi {
			hi, hiPt = d, pt
		}
	}
	return lo, hi, loPt, hiPt
}

// projection is one candidate separating axis. axis points from the first
// shape towards the second; sep is the vector between their nearest extents.
type projection struct {
	axis geom.Vector
	gap  fixed.Fixed
	sep  geom.Vector
}

// axialProjections collects every candidate axis for a against b. Axis-aligned
// axes are projected using the bounding boxes.
func axialProjections(a, b Polygon) ([10]projection, int) {
	var out [10]projection
	n := 0

	if a.hasHorizontalNormal || b.hasHorizontalNormal {
		out[n] = boxProjection(a.bbox.XInterval(), b.bbox.XInterval(), geom.Vector{X: fixed.One}, func(d fixed.Fixed) geom.Vector {
			return geom.Vector{X: d}
		})
		n++
	}
	if a.hasVerticalNormal || b.hasVerticalNormal {
		out[n] = boxProjection(a.bbox.YInterval(), b.bbox.YInterval(), geom.Vector{Y: fixed.One}, func(d fixed.Fixed) geom.Vector {
			return geom.Vector{Y: d}
		})
		n++
	}

	for _, normals := range [2][]geom.Vector{a.Normals(), b.Normals()} {
		for _, axis := range normals {
			if axis.IsZero() {
				continue
			}
			min1, max1, minPt1, maxPt1 := a.ProjectOntoAxis(axis)
			min2, max2, minPt2, maxPt2 := b.ProjectOntoAxis(axis)
			if min1 < min2 {
				out[n] = projection{axis: axis, gap: FudgeToZero(min2 - max1), sep: minPt2.Sub(maxPt1)}
			} else {
				out[n] = projection{axis: axis.Neg(), gap: FudgeToZero(min1 - max2), sep: maxPt2.Sub(minPt1)}
			}
			n++
		}
	}
	return out, n
}

func boxProjection(i1, i2 geom.Interval, axis geom.Vector, along func(fixed.Fixed) geom.Vector) projection {
	if i1.Min < i2.Min {
		return projection{axis: axis, gap: FudgeToZero(i2.Min - i1.Max), sep: along(i2.Min - i1.Max)}
	}
	// sep always runs from the first shape to the second
	return projection{axis: axis.Neg(), gap: FudgeToZero(i1.Min - i2.Max), sep: along(i2.Max - i1.Min)}
}
