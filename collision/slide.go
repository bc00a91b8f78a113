package collision

import (
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

// SlideTowards reports what happens if p moves by movement towards other.
// It returns false when the shapes cannot meet during the move.
//
// A contact is returned even when the shapes would only touch, or would slide
// flush along each other without blocking.
func (p Polygon) SlideTowards(other Polygon, movement geom.Vector) (Contact, bool) {
	if !p.ExtendedBBox(movement).Touches(other.bbox) {
		return Contact{}, false
	}

	// Separating axis test, keeping full-length axes to avoid square roots.
	// The fraction of movement allowed along an axis is the ratio of the
	// separation and the movement projected onto it.
	moveNormal := movement.Perpendicular()

	leftDot, rightDot := fixed.MinValue, fixed.MinValue
	var leftNorm, rightNorm geom.Vector
	var hasLeft, hasRight bool

	maxAmt := fixed.MinValue
	maxNumer, maxDenom := fixed.One, fixed.One
	touchType := Overlap
	var slideAxis geom.Vector
	var sliding bool

	projections, n := axialProjections(p, other)
	for _, pr := range projections[:n] {
		fullAxis := pr.axis
		axis := fullAxis.Normalize()

		// Overlapping along this axis is inconclusive
		if pr.gap < 0 {
			continue
		}

		if pr.gap > 0 {
			touchType = Collide
		} else if touchType == Overlap {
			touchType = Touch
		}

		// Positive when closing in along this axis
		dot := FudgeToZero(movement.Dot(fullAxis))
		if dot < 0 || (dot == 0 && pr.gap > 0) {
			return Contact{}, false
		}
		if pr.gap == 0 && dot == 0 {
			// Parallel and flush; other axes decide whether they meet
			slideAxis = fullAxis
			sliding = true
			continue
		}

		numer := pr.sep.Dot(fullAxis)
		amount := FudgeToZero(numer.Div(dot))

		switch {
		case maxAmt > fixed.MinValue && (amount-maxAmt).Abs() < Precision:
			// tie: merge normals
		case amount > maxAmt:
			maxAmt = amount
			maxNumer, maxDenom = numer, dot
			hasLeft, hasRight = false, false
			leftNorm, rightNorm = geom.Vector{}, geom.Vector{}
			leftDot, rightDot = fixed.MinValue, fixed.MinValue
		default:
			continue
		}

		normal := fullAxis.Neg()
		ourDot := -movement.Dot(axis)
		// Flip normals facing away from us
		if ourDot > 0 {
			ourDot = -ourDot
			normal = normal.Neg()
		}

		// The most head-on normal on each side wins. Two normals on one side
		// can only be a corner.
		perpDot := moveNormal.Dot(normal)
		if perpDot <= Precision && ourDot > leftDot {
			leftNorm, leftDot, hasLeft = normal, ourDot, true
		}
		if perpDot >= -Precision && ourDot > rightDot {
			rightNorm, rightDot, hasRight = normal, ourDot, true
		}
	}

	if touchType == Overlap {
		return overlapContact(), true
	}
	if maxAmt > fixed.One && touchType == Collide {
		// Not reached within this move, and not touching either
		return Contact{}, false
	}

	if sliding {
		// Touching or about to touch, but free to continue past. Already
		// flush on every axis keeps the sentinel, so it sorts first.
		touchDist := maxAmt
		if touchType == Collide {
			touchDist = 0
		}

		// The surface being slid along is a normal too
		if -slideAxis.Dot(moveNormal) < 0 {
			leftNorm, leftDot, hasLeft = slideAxis.Neg(), 0, true
		} else {
			rightNorm, rightDot, hasRight = slideAxis.Neg(), 0, true
		}

		return Contact{
			Movement:    movement,
			Amount:      fixed.One,
			TouchDist:   touchDist,
			Type:        Touch,
			Slide:       true,
			LeftNormal:  leftNorm,
			RightNormal: rightNorm,
			HasLeft:     hasLeft,
			HasRight:    hasRight,
			LeftDot:     leftDot,
			RightDot:    rightDot,
		}, true
	}
	if maxAmt == fixed.MinValue {
		return Contact{}, false
	}

	return Contact{
		// Repeat the division that produced maxAmt, multiplying first
		Movement:    movement.MulDiv(maxNumer, maxDenom),
		Amount:      maxAmt,
		TouchDist:   maxAmt,
		Type:        Collide,
		LeftNormal:  leftNorm,
		RightNormal: rightNorm,
		HasLeft:     hasLeft,
		HasRight:    hasRight,
		LeftDot:     leftDot,
		RightDot:    rightDot,
	}, true
}
