package input

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned for scripts with no frames.
var ErrEmptyScript = errors.New("script has no frames")

// Step holds a set of buttons for a number of frames.
type Step struct {
	Hold   []string `yaml:"hold,omitempty"`
	Frames int      `yaml:"frames"`
}

type scriptFile struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

type compiledStep struct {
	buttons Buttons
	frames  int
}

// Script replays a fixed sequence of button presses. Once finished it
// keeps returning no buttons.
type Script struct {
	Name  string
	steps []compiledStep
	step  int
	frame int
	total int
}

// ParseScript decodes a yaml script:
//
//	name: walk and jump
//	steps:
//	  - {hold: [right], frames: 30}
//	  - {hold: [right, up], frames: 1}
//	  - {frames: 60}
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	s := &Script{Name: f.Name}
	for i, st := range f.Steps {
		if st.Frames < 0 {
			return nil, fmt.Errorf("step %d: negative frame count %d", i, st.Frames)
		}
		var b Buttons
		for _, name := range st.Hold {
			bit, err := ParseButton(name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			b |= bit
		}
		if st.Frames == 0 {
			continue
		}
		s.steps = append(s.steps, compiledStep{buttons: b, frames: st.Frames})
		s.total += st.Frames
	}
	if s.total == 0 {
		return nil, ErrEmptyScript
	}
	return s, nil
}

// LoadScript reads a script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Poll returns the buttons for the current frame and advances.
func (s *Script) Poll() Buttons {
	if s.Done() {
		return 0
	}
	st := s.steps[s.step]
	s.frame++
	if s.frame >= st.frames {
		s.step++
		s.frame = 0
	}
	return st.buttons
}

// Done reports whether every frame has been played.
func (s *Script) Done() bool { return s.step >= len(s.steps) }

// Frames returns the script length in frames.
func (s *Script) Frames() int { return s.total }

// Reset rewinds to the first frame.
func (s *Script) Reset() {
	s.step = 0
	s.frame = 0
}
