package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/level"
)

// holdFrames is how long a key counts as held after its last press event.
// Terminals report key repeats but never key releases.
const holdFrames = 6

var tileGlyphs = map[string]rune{
	"empty": ' ',
	"rock":  '#',
	"ledge": '=',
	"grass": ',',
}

// TermSink draws one terminal cell per map cell with tcell.
type TermSink struct {
	screen tcell.Screen
	events chan tcell.Event

	held    [4]int // frames left per button bit
	done    bool
	actions Actions
}

// OpenTermSink initializes the terminal.
func OpenTermSink() (*TermSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	return NewTermSink(screen)
}

// NewTermSink takes ownership of screen, initializes it and starts reading
// its events.
func NewTermSink(screen tcell.Screen) (*TermSink, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()

	s := &TermSink{screen: screen, events: make(chan tcell.Event, 64)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s, nil
}

// Poll drains pending terminal events and returns the held buttons.
func (s *TermSink) Poll() input.Buttons {
	s.drain()

	var b input.Buttons
	for i := range s.held {
		if s.held[i] > 0 {
			b |= input.Buttons(1) << i
			s.held[i]--
		}
	}
	return b
}

func (s *TermSink) drain() {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.done = true
				return
			}
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *TermSink) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			s.done = true
		case tcell.KeyLeft:
			s.hold(input.Left)
		case tcell.KeyRight:
			s.hold(input.Right)
		case tcell.KeyUp:
			s.hold(input.Up)
		case tcell.KeyDown:
			s.hold(input.Down)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				s.done = true
			case 'a':
				s.hold(input.Left)
			case 'd':
				s.hold(input.Right)
			case 'w', 'z', ' ':
				s.hold(input.Up)
			case 's':
				s.hold(input.Down)
			case 'p':
				s.actions.TogglePause = true
			case '.':
				s.actions.Step = true
			case 'r':
				s.actions.Reset = true
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

func (s *TermSink) hold(b input.Buttons) {
	for i := range s.held {
		if b&(1<<i) != 0 {
			s.held[i] = holdFrames
		}
	}
}

// Done reports whether the user asked to quit.
func (s *TermSink) Done() bool { return s.done }

// Actions returns and clears run controls requested since the last call.
func (s *TermSink) Actions() Actions {
	a := s.actions
	s.actions = Actions{}
	return a
}

// Present draws the visible cells, the actors and a status line.
func (s *TermSink) Present(f *Frame) error {
	s.screen.Clear()

	x0, y0, x1, y1 := f.VisibleCells()
	ts := f.Map.Tileset()
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			r, style := s.tileCell(ts, f.Map.At(cx, cy), cy, f.Map.Height())
			s.screen.SetContent(cx-x0, cy-y0, r, nil, style)
		}
	}

	shift := f.Map.CellShift()
	for _, a := range f.Actors {
		box := a.WorldHitbox()
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		if a.Player {
			style = style.Bold(true)
		}
		for cy := box.MinY().Cell(shift); cy <= (box.MaxY() - 1).Cell(shift); cy++ {
			for cx := box.MinX().Cell(shift); cx <= (box.MaxX() - 1).Cell(shift); cx++ {
				s.screen.SetContent(cx-x0, cy-y0, '@', nil, style)
			}
		}
		for _, c := range a.Contacts {
			glyph := 'x'
			if c.Type == collision.Touch {
				glyph = '+'
			}
			s.screen.SetContent(c.Cell.X-x0, c.Cell.Y-y0, glyph, nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
		}
	}

	status := fmt.Sprintf("tick %d  input %s", f.Tick, f.Buttons)
	if p, ok := f.Player(); ok {
		status += fmt.Sprintf("  pos %s  vel %s  %s", p.Position, p.Velocity, p.Reason)
	}
	if f.Paused {
		status += "  PAUSED"
	}
	s.drawText(0, y1-y0+1, status, tcell.StyleDefault.Foreground(tcell.ColorGray))

	s.screen.Show()
	return nil
}

func (s *TermSink) tileCell(ts *level.Tileset, id level.TileID, cy, height int) (rune, tcell.Style) {
	tile, ok := ts.Lookup(id)
	if !ok {
		return '?', tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	r, ok := tileGlyphs[tile.Name]
	if !ok {
		r = '.'
		if tile.Solid {
			r = '#'
		}
	}
	if !tile.Solid {
		return r, tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
	// Darker further down, like the window renderer
	shade := int32(200 - 80*cy/max(height, 1))
	return r, tcell.StyleDefault.Foreground(tcell.NewRGBColor(shade, shade, shade+20))
}

func (s *TermSink) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Close restores the terminal.
func (s *TermSink) Close() error {
	s.screen.Fini()
	return nil
}
