package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to application events
type KeyTable struct {
	// Special keys (Ctrl+*, Escape)
	SpecialKeys map[tcell.Key]EventType

	// Rune bindings
	Runes map[rune]EventType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]EventType{
			tcell.KeyCtrlQ:  EventQuit,
			tcell.KeyCtrlC:  EventQuit,
			tcell.KeyEscape: EventQuit,
			tcell.KeyCtrlS:  EventToggleMute,
		},
		Runes: map[rune]EventType{
			'q': EventQuit,
			'm': EventToggleMute,
			'h': EventToggleVisibility,
			' ': EventSpeak,
		},
	}
}

// Lookup resolves a key event, ok is false for unbound keys
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (EventType, bool) {
	if ev.Key() == tcell.KeyRune {
		t, ok := kt.Runes[ev.Rune()]
		return t, ok
	}
	t, ok := kt.SpecialKeys[ev.Key()]
	return t, ok
}
