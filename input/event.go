package input

import (
	"time"

	"github.com/lixenwraith/desk-duck/config"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/vmath"
)

// EventType discriminates controller input
type EventType uint8

const (
	EventNone EventType = iota

	// Pointer, positions in viewport pixels
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventDoubleTap

	// Host
	EventSpeak
	EventToggleVisibility
	EventSettingsChanged
	EventResize

	// Application, not consumed by controllers
	EventQuit
	EventToggleMute
)

var eventNames = [...]string{
	"none", "pointerDown", "pointerMove", "pointerUp", "doubleTap",
	"speak", "toggleVisibility", "settingsChanged", "resize", "quit", "toggleMute",
}

func (t EventType) String() string {
	if int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is one unit of input submitted to the loop
type Event struct {
	Type EventType
	Pos  vmath.Vec2
	Time time.Time

	// Settings is set for EventSettingsChanged
	Settings config.Settings
	// Bounds is set for EventResize
	Bounds core.Bounds
}

// Pointer reports whether the event carries a pointer position
func (e Event) Pointer() bool {
	switch e.Type {
	case EventPointerDown, EventPointerMove, EventPointerUp, EventDoubleTap:
		return true
	}
	return false
}

// SettingsChanged wraps a settings snapshot as an event
func SettingsChanged(s config.Settings, now time.Time) Event {
	return Event{Type: EventSettingsChanged, Settings: s, Time: now}
}
