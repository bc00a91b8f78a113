package systems

import (
	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/geom"
)

// SlideResult is the outcome of SlideAlongNormals.
type SlideResult struct {
	Stuck     bool
	Direction geom.Vector
}

// SlideAlongNormals adjusts direction so it no longer heads into any of the
// contacts. It reports Stuck when no direction satisfies them all.
//
// Normals are sorted into left and right of the direction of travel and the
// most restrictive one on each side is kept. A contact with nothing on one
// side rules that side out, since its freedom there cannot be reconciled
// with constraints from the other contacts.
func SlideAlongNormals(contacts []collision.Contact, direction geom.Vector) SlideResult {
	if len(contacts) == 0 {
		return SlideResult{Direction: direction}
	}

	first := contacts[0]
	leftDot, leftNorm, hasLeft := first.LeftDot, first.LeftNormal, first.HasLeft
	rightDot, rightNorm, hasRight := first.RightDot, first.RightNormal, first.HasRight
	leftPossible, rightPossible := true, true

	for _, c := range contacts[1:] {
		if c.Type == collision.Overlap {
			continue
		}

		if leftPossible && c.HasLeft {
			// <= so later contacts win ties
			if c.LeftDot <= leftDot {
				leftDot, leftNorm, hasLeft = c.LeftDot, c.LeftNormal, true
			}
		} else {
			leftPossible = false
			hasLeft = false
		}

		if rightPossible && c.HasRight {
			if c.RightDot <= rightDot {
				rightDot, rightNorm, hasRight = c.RightDot, c.RightNormal, true
			}
		} else {
			rightPossible = false
			hasRight = false
		}
	}

	if !leftPossible && !rightPossible {
		return SlideResult{Stuck: true}
	}

	var axis geom.Vector
	var hasAxis bool
	switch {
	case !leftPossible:
		axis, hasAxis = rightNorm, hasRight
	case !rightPossible:
		axis, hasAxis = leftNorm, hasLeft
	case leftDot > rightDot:
		axis, hasAxis = leftNorm, hasLeft
	default:
		axis, hasAxis = rightNorm, hasRight
	}
	if !hasAxis {
		return SlideResult{Stuck: true}
	}

	// Already moving away from the surface
	if direction.Dot(axis) >= 0 {
		return SlideResult{Direction: direction}
	}
	return SlideResult{Direction: direction.Sub(direction.ProjectOn(axis))}
}

