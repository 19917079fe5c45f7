package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/desk-duck/vmath"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func types(evs []Event) []EventType {
	out := make([]EventType, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.Type)
	}
	return out
}

func TestMachinePointerEdges(t *testing.T) {
	m := NewMachine()

	evs := m.Process(nil, tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone), epoch)
	require.Equal(t, []EventType{EventPointerDown}, types(evs))
	assert.Equal(t, vmath.V2(84, 88), evs[0].Pos)

	// Same cell while held produces nothing
	evs = m.Process(nil, tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone), epoch)
	assert.Empty(t, evs)

	evs = m.Process(nil, tcell.NewEventMouse(12, 5, tcell.Button1, tcell.ModNone), epoch)
	require.Equal(t, []EventType{EventPointerMove}, types(evs))
	assert.Equal(t, vmath.V2(100, 88), evs[0].Pos)

	evs = m.Process(nil, tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone), epoch)
	assert.Equal(t, []EventType{EventPointerUp}, types(evs))

	// Hover without a button is ignored
	evs = m.Process(nil, tcell.NewEventMouse(20, 5, tcell.ButtonNone, tcell.ModNone), epoch)
	assert.Empty(t, evs)
}

func TestMachineDoubleTap(t *testing.T) {
	m := NewMachine()
	press := func(x, y int, at time.Time) []EventType {
		evs := m.Process(nil, tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone), at)
		m.Process(nil, tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone), at)
		return types(evs)
	}

	assert.Equal(t, []EventType{EventPointerDown}, press(3, 3, epoch))
	assert.Equal(t, []EventType{EventPointerDown, EventDoubleTap}, press(3, 4, epoch.Add(200*time.Millisecond)))

	// A third press starts a new gesture
	assert.Equal(t, []EventType{EventPointerDown}, press(3, 4, epoch.Add(300*time.Millisecond)))

	// Too slow
	assert.Equal(t, []EventType{EventPointerDown}, press(3, 4, epoch.Add(time.Second)))

	// Too far
	assert.Equal(t, []EventType{EventPointerDown}, press(30, 4, epoch.Add(1100*time.Millisecond)))
}

func TestMachineKeys(t *testing.T) {
	m := NewMachine()

	cases := []struct {
		ev   *tcell.EventKey
		want []EventType
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), []EventType{EventQuit}},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), []EventType{EventQuit}},
		{tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), []EventType{EventToggleMute}},
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), []EventType{EventToggleVisibility}},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), []EventType{EventSpeak}},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), []EventType{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, types(m.Process(nil, tc.ev, epoch)))
	}
}

func TestMachineResize(t *testing.T) {
	m := NewMachine()
	evs := m.Process(nil, tcell.NewEventResize(100, 40), epoch)
	require.Len(t, evs, 1)
	assert.Equal(t, EventResize, evs[0].Type)
	assert.Equal(t, 800.0, evs[0].Bounds.Width)
	assert.Equal(t, 640.0, evs[0].Bounds.Height)
}

func TestEventPointer(t *testing.T) {
	assert.True(t, Event{Type: EventPointerMove}.Pointer())
	assert.False(t, Event{Type: EventSpeak}.Pointer())
	assert.Equal(t, "settingsChanged", EventSettingsChanged.String())
}
