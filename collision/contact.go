// Package collision implements swept separating-axis tests between convex
// quadrilaterals.
//
// All fractions reported by a sweep (Contact.Amount, Contact.TouchDist) are
// relative to the movement vector passed to that particular call. They cannot
// be compared across calls made with different movement vectors.
package collision

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

// Precision is the rounding tolerance for fixed-point comparisons. Shapes
// overlapping by no more than this are treated as touching.
const Precision fixed.Fixed = 3

// FudgeToZero snaps values within Precision of zero to exactly zero.
func FudgeToZero(n fixed.Fixed) fixed.Fixed {
	if n.Abs() <= Precision {
		return 0
	}
	return n
}

// ContactType classifies how a moving shape meets another.
type ContactType uint8

const (
	// Overlap means the shapes already interpenetrate before moving.
	Overlap ContactType = iota
	// Touch means the shapes meet or slide along each other without blocking.
	Touch
	// Collide means the movement is cut short by the other shape.
	Collide
)

func (c ContactType) String() string {
	switch c {
	case Overlap:
		return "overlap"
	case Touch:
		return "touch"
	case Collide:
		return "collide"
	}
	return fmt.Sprintf("ContactType(%d)", uint8(c))
}

// Contact is the result of one pairwise swept test.
type Contact struct {
	// Movement is the part of the attempted movement allowed against this obstacle.
	Movement geom.Vector
	// Amount is Movement as a fraction of the attempted movement. Values above
	// one mean the obstacle is not reached within this attempt.
	Amount fixed.Fixed
	// TouchDist is the fraction at which the shapes first touch.
	TouchDist fixed.Fixed
	Type      ContactType
	// Slide is set when the shapes are flush and moving parallel.
	Slide bool

	// Most head-on normal on each side of the direction of travel, with its
	// dot product against the movement. A side without a normal places no
	// constraint on movement.
	LeftNormal  geom.Vector
	RightNormal geom.Vector
	HasLeft     bool
	HasRight    bool
	LeftDot     fixed.Fixed
	RightDot    fixed.Fixed

	// Cell is the grid cell of the obstacle, for diagnostics only.
	Cell CellIndex
}

// CellIndex addresses a grid cell.
type CellIndex struct {
	X, Y int
}

// overlapContact is returned when the shapes already interpenetrate. It
// carries no escape vector, so an entity caught inside geometry stays put.
func overlapContact() Contact {
	return Contact{
		Type:     Overlap,
		LeftDot:  fixed.MinValue,
		RightDot: fixed.MinValue,
	}
}

// LogValue implements slog.LogValuer.
func (c Contact) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", c.Type.String()),
		slog.String("amount", c.Amount.String()),
		slog.String("touchdist", c.TouchDist.String()),
		slog.String("movement", c.Movement.String()),
		slog.Int("cell_x", c.Cell.X),
		slog.Int("cell_y", c.Cell.Y),
	}
	if c.HasLeft {
		attrs = append(attrs, slog.String("left", c.LeftNormal.String()))
	}
	if c.HasRight {
		attrs = append(attrs, slog.String("right", c.RightNormal.String()))
	}
	return slog.GroupValue(attrs...)
}
