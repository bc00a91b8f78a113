package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

func sided(left, right *geom.Vector, leftDot, rightDot int) collision.Contact {
	c := collision.Contact{Type: collision.Collide, LeftDot: fixed.MinValue, RightDot: fixed.MinValue}
	if left != nil {
		c.LeftNormal, c.HasLeft, c.LeftDot = *left, true, fixed.FromInt(leftDot)
	}
	if right != nil {
		c.RightNormal, c.HasRight, c.RightDot = *right, true, fixed.FromInt(rightDot)
	}
	return c
}

func vp(x, y int) *geom.Vector {
	v := geom.Vec(x, y)
	return &v
}

func TestSlideAlongNormalsEmpty(t *testing.T) {
	got := SlideAlongNormals(nil, geom.Vec(3, 2))
	assert.False(t, got.Stuck)
	assert.Equal(t, geom.Vec(3, 2), got.Direction)
}

func TestSlideAlongNormalsFloor(t *testing.T) {
	floor := []collision.Contact{sided(vp(0, -1), vp(0, -1), -2, -2)}

	got := SlideAlongNormals(floor, geom.Vec(3, 2))
	assert.False(t, got.Stuck)
	assert.Equal(t, geom.Vec(3, 0), got.Direction)

	// Moving away from the floor is left alone
	got = SlideAlongNormals(floor, geom.Vec(3, -2))
	assert.Equal(t, geom.Vec(3, -2), got.Direction)
}

func TestSlideAlongNormalsPicksLessRestrictiveSide(t *testing.T) {
	contacts := []collision.Contact{sided(vp(0, -1), vp(-1, 0), -2, -3)}

	got := SlideAlongNormals(contacts, geom.Vec(3, 2))
	assert.False(t, got.Stuck)
	assert.Equal(t, geom.Vec(3, 0), got.Direction)
}

func TestSlideAlongNormalsTiesReplace(t *testing.T) {
	contacts := []collision.Contact{
		sided(vp(0, -1), vp(0, -1), -2, -5),
		sided(vp(-1, 0), vp(0, -1), -2, -5),
	}

	got := SlideAlongNormals(contacts, geom.Vec(3, 2))
	assert.Equal(t, geom.Vec(0, 2), got.Direction)
}

func TestSlideAlongNormalsWedged(t *testing.T) {
	tests := []struct {
		name     string
		contacts []collision.Contact
	}{
		{
			name: "one side each",
			contacts: []collision.Contact{
				sided(vp(-1, 1), nil, -2, 0),
				sided(nil, vp(-1, -1), 0, -2),
			},
		},
		{
			name: "both sides ruled out",
			contacts: []collision.Contact{
				sided(vp(0, -1), vp(0, 1), -1, -1),
				sided(vp(-1, -1), nil, -2, 0),
				sided(nil, vp(-1, 1), 0, -2),
			},
		},
		{
			name: "first contact has no normals",
			contacts: []collision.Contact{
				sided(nil, nil, 0, 0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlideAlongNormals(tt.contacts, geom.Vec(2, 0))
			assert.True(t, got.Stuck)
			assert.True(t, got.Direction.IsZero())
		})
	}
}

func TestSlideAlongNormalsSkipsLaterOverlap(t *testing.T) {
	contacts := []collision.Contact{
		sided(vp(0, -1), vp(0, -1), -2, -2),
		{Type: collision.Overlap, LeftDot: fixed.MinValue, RightDot: fixed.MinValue},
	}

	got := SlideAlongNormals(contacts, geom.Vec(3, 2))
	assert.False(t, got.Stuck)
	assert.Equal(t, geom.Vec(3, 0), got.Direction)
}
