package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slide/input"
)

// KeyboardSource reads the arrow keys (or WASD) from an open raylib window.
type KeyboardSource struct{}

func (KeyboardSource) Poll() input.Buttons {
	var b input.Buttons
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		b |= input.Left
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		b |= input.Right
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyZ) {
		b |= input.Up
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		b |= input.Down
	}
	return b
}
