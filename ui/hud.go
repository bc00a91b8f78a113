package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Tick    int
	Speed   int
	FPS     int32
	Paused  bool
	Buttons string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Input: %s", data.Tick, data.Speed, data.FPS, data.Buttons),
		10, 35, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// ActorStatus is the actor panel's view of the player.
type ActorStatus struct {
	X, Y          float64
	VX, VY        float64
	Iterations    int
	MaxIterations int
	StuckCount    int
	Contacts      int
	Reason        string
}

// ActorSection describes the actor panel.
var ActorSection = SectionDescriptor{
	ID:    "actor",
	Title: "Player",
	Fields: []FieldDescriptor{
		{ID: "x", Label: "X", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(d.(ActorStatus).X) }},
		{ID: "y", Label: "Y", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(d.(ActorStatus).Y) }},
		{ID: "vx", Label: "VX", Widget: WidgetCenteredBar, Range: FieldRange{Min: -2, Max: 2}, Getter: func(d any) float32 { return float32(d.(ActorStatus).VX) }},
		{ID: "vy", Label: "VY", Widget: WidgetCenteredBar, Range: FieldRange{Min: -6, Max: 6}, Getter: func(d any) float32 { return float32(d.(ActorStatus).VY) }},
		{ID: "spacer", Widget: WidgetSpacer},
		{ID: "iterations", Label: "Iterations", Widget: WidgetBar, Getter: func(d any) float32 {
			s := d.(ActorStatus)
			if s.MaxIterations == 0 {
				return 0
			}
			return float32(s.Iterations) / float32(s.MaxIterations)
		}},
		{ID: "stuck", Label: "Stuck", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(ActorStatus).StuckCount) }},
		{ID: "contacts", Label: "Contacts", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(ActorStatus).Contacts) }},
		{ID: "reason", Label: "Result", Widget: WidgetText, TextGetter: func(d any) string { return d.(ActorStatus).Reason }},
	},
}

// ActorPanel renders ActorSection in a panel.
type ActorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewActorPanel creates a new actor panel.
func NewActorPanel(x, y, width int32) *ActorPanel {
	return &ActorPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel.
func (a *ActorPanel) Draw(status ActorStatus) {
	r := a.renderer
	padding := r.Theme.Padding
	r.DrawPanel(a.x, a.y, a.width, r.SectionHeight(ActorSection, status)+padding*2)
	r.DrawSection(a.x+padding, a.y+padding, ActorSection, status, a.width-padding*2)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	Total    time.Duration
}

// PerfPanel renders the tick phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// Draw renders the performance panel with phases in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		avg := data.PhaseAvg[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
