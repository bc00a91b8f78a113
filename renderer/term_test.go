package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/camera"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/level"
	"github.com/pthm-cable/slide/systems"
)

func simSink(t *testing.T) (*TermSink, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	sink, err := NewTermSink(screen)
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink, screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestTermSinkPresent(t *testing.T) {
	sink, screen := simSink(t)

	m := systems.NewTileMap(level.Default(), systems.DefaultTileMapOptions())
	actor := lexy()
	actor.Position = geom.Pt(48, 80)
	frame := &Frame{
		Tick:   7,
		Camera: camera.New(geom.Sz(240, 160), geom.Sz(64, 32)),
		Map:    m,
		Actors: []ActorView{actor},
	}
	require.NoError(t, sink.Present(frame))

	assert.Equal(t, '#', []rune(rowText(screen, 0))[0], "border")
	assert.Equal(t, ',', []rune(rowText(screen, 13))[1], "grass")
	// Hitbox (42,54)-(54,81) covers cells 5..6 across, 6..10 down
	assert.Equal(t, '@', []rune(rowText(screen, 8))[5])
	assert.Equal(t, '@', []rune(rowText(screen, 10))[6])
	assert.Contains(t, rowText(screen, 20), "tick 7")
}

func TestTermSinkInput(t *testing.T) {
	sink, screen := simSink(t)

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return sink.Poll().Has(input.Right)
	}, time.Second, time.Millisecond)

	// Held for a few frames without key-up events, then released
	for i := 0; i < holdFrames; i++ {
		sink.Poll()
	}
	assert.Equal(t, input.Buttons(0), sink.Poll())

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.Eventually(t, func() bool {
		sink.Poll()
		return sink.Done()
	}, time.Second, time.Millisecond)
	assert.True(t, sink.Actions().TogglePause)
	assert.False(t, sink.Actions().TogglePause, "actions are cleared once read")
}
