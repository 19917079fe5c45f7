package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/vmath"
)

// Machine is the input state machine
// Parses tcell events into controller Events, tracking button edges and double taps
type Machine struct {
	keyTable *KeyTable

	cellW, cellH float64

	down    bool
	lastPos vmath.Vec2

	lastTap    time.Time
	lastTapPos vmath.Vec2
	tapArmed   bool
}

// NewMachine creates a new input machine with the default key table and cell geometry
func NewMachine() *Machine {
	return &Machine{
		keyTable: DefaultKeyTable(),
		cellW:    constant.CellWidthPx,
		cellH:    constant.CellHeightPx,
	}
}

// SetCellSize overrides the pixel size of one terminal cell
func (m *Machine) SetCellSize(w, h float64) {
	if w > 0 {
		m.cellW = w
	}
	if h > 0 {
		m.cellH = h
	}
}

// CellToPixel maps a cell coordinate to the pixel at the cell centre
func (m *Machine) CellToPixel(x, y int) vmath.Vec2 {
	return vmath.V2((float64(x)+0.5)*m.cellW, (float64(y)+0.5)*m.cellH)
}

// PixelToCell maps a pixel coordinate to its cell
func (m *Machine) PixelToCell(p vmath.Vec2) (int, int) {
	return int(p.X / m.cellW), int(p.Y / m.cellH)
}

// Bounds converts a terminal size in cells to viewport bounds
func (m *Machine) Bounds(cols, rows int) core.Bounds {
	return core.Bounds{Width: float64(cols) * m.cellW, Height: float64(rows) * m.cellH}
}

// Reset clears button and tap state
func (m *Machine) Reset() {
	m.down = false
	m.tapArmed = false
}

// Process translates one tcell event, appending results to dst
func (m *Machine) Process(dst []Event, ev tcell.Event, now time.Time) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t, ok := m.keyTable.Lookup(ev); ok {
			dst = append(dst, Event{Type: t, Time: now})
		}
	case *tcell.EventMouse:
		dst = m.processMouse(dst, ev, now)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		dst = append(dst, Event{Type: EventResize, Bounds: m.Bounds(cols, rows), Time: now})
	}
	return dst
}

func (m *Machine) processMouse(dst []Event, ev *tcell.EventMouse, now time.Time) []Event {
	x, y := ev.Position()
	pos := m.CellToPixel(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !m.down:
		m.down = true
		m.lastPos = pos
		dst = append(dst, Event{Type: EventPointerDown, Pos: pos, Time: now})
		if m.isDoubleTap(pos, now) {
			m.tapArmed = false
			dst = append(dst, Event{Type: EventDoubleTap, Pos: pos, Time: now})
		} else {
			m.tapArmed = true
			m.lastTap = now
			m.lastTapPos = pos
		}

	case pressed && m.down:
		if pos != m.lastPos {
			m.lastPos = pos
			dst = append(dst, Event{Type: EventPointerMove, Pos: pos, Time: now})
		}

	case !pressed && m.down:
		m.down = false
		dst = append(dst, Event{Type: EventPointerUp, Pos: pos, Time: now})
	}
	return dst
}

func (m *Machine) isDoubleTap(pos vmath.Vec2, now time.Time) bool {
	if !m.tapArmed {
		return false
	}
	if now.Sub(m.lastTap) > constant.DoubleTapWindow {
		return false
	}
	return vmath.V2Distance(pos, m.lastTapPos) <= constant.DoubleTapSlop
}
