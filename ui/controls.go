package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlActions reports what the user asked for in the panel this frame.
type ControlActions struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Speed       int // ticks per frame
}

// ControlsPanel renders the controls panel: run controls plus overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	speed    float32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		speed:    1,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the actions taken this frame.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, paused bool) ControlActions {
	act := ControlActions{Speed: int(c.speed)}
	if !c.visible {
		return act
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	height := padding*2 + lineHeight + 28 + 32 + rows*lineHeight
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + padding)
	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	third := float32(c.width-padding*2-8) / 3
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: third, Height: 20}, toggleText(paused, "Run", "Pause")) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + third + 4, Y: float32(y), Width: third, Height: 20}, "Step") {
		act.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(third+4), Y: float32(y), Width: third, Height: 20}, "Reset") {
		act.Reset = true
	}
	y += 28

	c.speed = gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: float32(y), Width: float32(c.width-padding*2) - 80, Height: 16},
		"speed", fmt.Sprintf("%dx", int(c.speed)),
		c.speed, 1, 8,
	)
	act.Speed = int(c.speed)
	y += 32

	for _, cat := range overlays.Categories() {
		rl.DrawText(categoryLabel(cat), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(cat) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}
	return act
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "world":
		return "World"
	case "collision":
		return "Collision"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
