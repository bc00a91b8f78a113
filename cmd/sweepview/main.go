// Sweep preview tool - move a hitbox towards a ramp with sliders and see
// the contact the swept test reports and where sliding would go next.
//
// Usage: go run ./cmd/sweepview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/systems"
)

const (
	windowWidth   = 1000
	windowHeight  = 720
	previewSize   = 512
	panelWidth    = windowWidth - previewSize - 30
	worldSize     = 64 // world units across the preview
	pixelsPerUnit = previewSize / worldSize
)

// SweepParams holds the slider values, in world units.
type SweepParams struct {
	StartX float32
	StartY float32
	MoveX  float32
	MoveY  float32
	Slope  float32 // rise of the ramp's top edge
}

type slider struct {
	label    string
	value    *float32
	min, max float32
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Sweep Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := SweepParams{StartX: 8, StartY: 10, MoveX: 12, MoveY: 14, Slope: 8}
	sliders := []slider{
		{"Start X", &params.StartX, 0, 48},
		{"Start Y", &params.StartY, 0, 36},
		{"Move X", &params.MoveX, -32, 32},
		{"Move Y", &params.MoveY, -32, 32},
		{"Ramp rise", &params.Slope, -12, 12},
	}
	snap := true

	for !rl.WindowShouldClose() {
		if snap {
			// Whole units keep the numbers readable
			for _, s := range sliders {
				*s.value = float32(int(*s.value))
			}
		}

		box := collision.PolygonFromRect(geom.Rect{
			Origin: geom.Point{X: fixed.FromFloat(float64(params.StartX)), Y: fixed.FromFloat(float64(params.StartY))},
			Size:   geom.Sz(12, 27),
		})
		ramp := rampPolygon(fixed.FromFloat(float64(params.Slope)))
		move := geom.Vector{X: fixed.FromFloat(float64(params.MoveX)), Y: fixed.FromFloat(float64(params.MoveY))}

		contact, hit := box.SlideTowards(ramp, move)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 24, G: 26, B: 32, A: 255})
		for i := int32(0); i <= worldSize; i += 8 {
			rl.DrawLine(10+i*pixelsPerUnit, 10, 10+i*pixelsPerUnit, 10+previewSize, rl.Color{R: 40, G: 42, B: 50, A: 255})
			rl.DrawLine(10, 10+i*pixelsPerUnit, 10+previewSize, 10+i*pixelsPerUnit, rl.Color{R: 40, G: 42, B: 50, A: 255})
		}
		drawPolygon(ramp, rl.Gray)
		drawPolygon(box, rl.SkyBlue)
		drawPolygon(box.MoveBy(move), rl.Color{R: 102, G: 191, B: 255, A: 90})
		rl.DrawLineV(toScreen(box.Center()), toScreen(box.Center().Add(move)), rl.LightGray)

		statsY := int32(previewSize + 25)
		if hit {
			drawPolygon(box.MoveBy(contact.Movement), contactColor(contact.Type))
			end := box.Center().Add(contact.Movement)
			if contact.HasLeft {
				drawNormal(end, contact.LeftNormal, rl.Green)
			}
			if contact.HasRight {
				drawNormal(end, contact.RightNormal, rl.Orange)
			}

			slide := systems.SlideAlongNormals([]collision.Contact{contact}, move.Sub(contact.Movement))
			if !slide.Stuck {
				rl.DrawLineV(toScreen(end), toScreen(end.Add(slide.Direction)), rl.Yellow)
			}

			rl.DrawText(fmt.Sprintf("Contact: %s  Amount: %.3f  Touch: %.3f  Slide: %v",
				contact.Type, contact.Amount.Float64(), contact.TouchDist.Float64(), contact.Slide), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Allowed: %s", contact.Movement), 15, statsY+20, 16, rl.DarkGray)
			if slide.Stuck {
				rl.DrawText("Slide: stuck", 15, statsY+40, 16, rl.Maroon)
			} else {
				rl.DrawText(fmt.Sprintf("Slide: %s", slide.Direction), 15, statsY+40, 16, rl.DarkGray)
			}
		} else {
			rl.DrawText("No contact", 15, statsY, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Sweep Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			*s.value = gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
				*s.value, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.1f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		snap = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Snap to whole units", snap)
		panelY += 35
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = SweepParams{StartX: 8, StartY: 10, MoveX: 12, MoveY: 14, Slope: 8}
		}

		rl.EndDrawing()
	}
}

// rampPolygon is a block whose top edge rises by rise from left to right.
func rampPolygon(rise fixed.Fixed) collision.Polygon {
	top := fixed.FromInt(44)
	return collision.NewPolygon([4]geom.Point{
		{X: fixed.FromInt(16), Y: top},
		{X: fixed.FromInt(56), Y: top - rise},
		{X: fixed.FromInt(56), Y: fixed.FromInt(60)},
		{X: fixed.FromInt(16), Y: fixed.FromInt(60)},
	})
}

func toScreen(p geom.Point) rl.Vector2 {
	return rl.Vector2{
		X: 10 + float32(p.X.Float64())*pixelsPerUnit,
		Y: 10 + float32(p.Y.Float64())*pixelsPerUnit,
	}
}

func drawPolygon(p collision.Polygon, color rl.Color) {
	pts := p.Points()
	for i := range pts {
		rl.DrawLineEx(toScreen(pts[i]), toScreen(pts[(i+1)%len(pts)]), 2, color)
	}
}

func drawNormal(from geom.Point, n geom.Vector, color rl.Color) {
	to := from.Add(n.Normalize().Scale(fixed.FromInt(6)))
	rl.DrawLineEx(toScreen(from), toScreen(to), 2, color)
}

func contactColor(t collision.ContactType) rl.Color {
	switch t {
	case collision.Collide:
		return rl.Red
	case collision.Touch:
		return rl.Gold
	}
	return rl.Purple
}
