// Package input turns keyboard state or scripted steps into per-tick button presses.
package input

import (
	"fmt"
	"strings"
)

// Buttons is a set of held buttons.
type Buttons uint8

const (
	Left Buttons = 1 << iota
	Right
	Up // jump
	Down
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{Left, "left"},
	{Right, "right"},
	{Up, "up"},
	{Down, "down"},
}

// Has reports whether every button in x is held.
func (b Buttons) Has(x Buttons) bool { return b&x == x }

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	var parts []string
	for _, bn := range buttonNames {
		if b.Has(bn.b) {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseButton maps a button name to its bit. "jump" is accepted for up.
func ParseButton(name string) (Buttons, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "jump" {
		return Up, nil
	}
	for _, bn := range buttonNames {
		if bn.name == name {
			return bn.b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Source supplies the buttons held for the next tick.
type Source interface {
	Poll() Buttons
}

// Idle is a Source that never presses anything.
type Idle struct{}

func (Idle) Poll() Buttons { return 0 }
