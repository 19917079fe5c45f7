package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/desk-duck/duck"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/parameter/visual"
)

// TerminalRenderer draws duck frames onto a tcell screen
// Pixel coordinates map onto cells of cellW x cellH pixels
type TerminalRenderer struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
	status string
	muted  bool
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen, cellW, cellH float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		status: parameter.StatusHelp,
	}
}

// SetStatus replaces the status line text
func (r *TerminalRenderer) SetStatus(status string, muted bool) {
	r.status = status
	r.muted = muted
}

// Render draws one frame for every duck, bubbles above all ducks, then shows it
func (r *TerminalRenderer) Render(frames []duck.Frame) {
	bg := tcell.StyleDefault.Background(Color(visual.RgbBackground))
	r.screen.SetStyle(bg)
	r.screen.Clear()

	for _, f := range frames {
		if f.Visible {
			r.drawDuck(f)
		}
	}
	for _, f := range frames {
		if f.Visible && f.HasBubble {
			r.drawBubble(f)
		}
	}
	r.drawStatus()
	r.screen.Show()
}

func (r *TerminalRenderer) drawDuck(f duck.Frame) {
	palette, ok := visual.SkinPalettes[f.Skin]
	if !ok {
		palette = visual.SkinPalettes["duck"]
	}
	w, h := r.screen.Size()

	Rasterize(f, r.cellW, r.cellH, func(c SpriteCell) {
		if c.Col < 0 || c.Row < 0 || c.Col >= w || c.Row >= h-parameter.StatusRows {
			return
		}
		fg := Blend(visual.RgbBackground, palette[c.Part], f.Opacity)
		fg = Filter(fg, f.ColorFilter)
		style := tcell.StyleDefault.
			Foreground(Color(fg)).
			Background(Color(visual.RgbBackground))
		r.screen.SetContent(c.Col, c.Row, c.Rune, nil, style)
	})
}

func (r *TerminalRenderer) drawStatus() {
	w, h := r.screen.Size()
	if h < 1 {
		return
	}
	style := tcell.StyleDefault.
		Foreground(Color(visual.RgbStatusFg)).
		Background(Color(visual.RgbBackground))

	icon := parameter.AudioStr
	if r.muted {
		icon = parameter.MutedStr
	}
	x := r.drawText(0, h-1, w, icon, style)
	r.drawText(x, h-1, w-x, r.status, style)
}

// drawText writes s at (x, y) within width cells and returns the column after it
func (r *TerminalRenderer) drawText(x, y, width int, s string, style tcell.Style) int {
	end := x + width
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x+cw > end {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += cw
	}
	return x
}
