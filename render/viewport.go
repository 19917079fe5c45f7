package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/desk-duck/parameter"
)

// ScreenViewport reports the tcell screen size in pixels, excluding the status rows
// Size is read on every call so terminal resizes are picked up without events
type ScreenViewport struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
}

// NewScreenViewport creates a viewport over screen
func NewScreenViewport(screen tcell.Screen, cellW, cellH float64) *ScreenViewport {
	return &ScreenViewport{screen: screen, cellW: cellW, cellH: cellH}
}

func (v *ScreenViewport) Width() float64 {
	w, _ := v.screen.Size()
	return float64(w) * v.cellW
}

func (v *ScreenViewport) Height() float64 {
	_, h := v.screen.Size()
	h -= parameter.StatusRows
	if h < 0 {
		h = 0
	}
	return float64(h) * v.cellH
}
