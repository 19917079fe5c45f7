package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/duck"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/parameter/visual"
)

// cellBox is a rectangle in terminal cells
type cellBox struct {
	col, row, cols, rows int
}

// bubbleBox converts the pixel rect to cells and shrinks it around its centre by scale
func bubbleBox(r core.Rect, scale, cellW, cellH float64) (cellBox, bool) {
	cols := int(math.Round(r.W / cellW * scale))
	rows := int(math.Round(r.H / cellH * scale))
	if cols < parameter.BubbleMinCols || rows < parameter.BubbleMinRows {
		return cellBox{}, false
	}
	centerCol := (r.X + r.W/2) / cellW
	centerRow := (r.Y + r.H/2) / cellH
	return cellBox{
		col:  int(math.Round(centerCol - float64(cols)/2)),
		row:  int(math.Round(centerRow - float64(rows)/2)),
		cols: cols,
		rows: rows,
	}, true
}

func borderColor(kind core.BubbleKind) RGB {
	switch kind {
	case core.BubbleWarning:
		return visual.RgbBubbleWarning
	case core.BubbleError:
		return visual.RgbBubbleError
	}
	return visual.RgbBubbleSpeech
}

// drawBubble renders the visible bubble of f with its revealed text
func (r *TerminalRenderer) drawBubble(f duck.Frame) {
	box, ok := bubbleBox(f.BubbleRect, f.Bubble.Scale, r.cellW, r.cellH)
	if !ok {
		return
	}

	bg := Filter(visual.RgbBubbleBg, f.ColorFilter)
	border := tcell.StyleDefault.
		Foreground(Color(Filter(borderColor(f.Bubble.Entry.Kind), f.ColorFilter))).
		Background(Color(bg))
	text := tcell.StyleDefault.
		Foreground(Color(Filter(visual.RgbBubbleText, f.ColorFilter))).
		Background(Color(bg))

	right := box.col + box.cols - 1
	bottom := box.row + box.rows - 1
	for row := box.row; row <= bottom; row++ {
		for col := box.col; col <= right; col++ {
			ch := ' '
			switch {
			case row == box.row && col == box.col:
				ch = visual.BoxTopLeft
			case row == box.row && col == right:
				ch = visual.BoxTopRight
			case row == bottom && col == box.col:
				ch = visual.BoxBottomLeft
			case row == bottom && col == right:
				ch = visual.BoxBottomRight
			case row == box.row || row == bottom:
				ch = visual.BoxHorizontal
			case col == box.col || col == right:
				ch = visual.BoxVertical
			}
			style := text
			if ch != ' ' {
				style = border
			}
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}

	inner := box.cols - 2 - 2*parameter.BubblePadding
	x := box.col + 1 + parameter.BubblePadding
	y := box.row + 1
	last := bottom - 1

	if f.Bubble.Entry.Kind.Urgent() && f.Bubble.Entry.Title != "" && y <= last {
		r.drawText(x, y, inner, Fit(f.Bubble.Entry.Title, inner, string(visual.Ellipsis)), border.Bold(true))
		y++
	}

	lines := Wrap(f.Bubble.Text, inner)
	for i, line := range lines {
		if y > last {
			break
		}
		if y == last && i < len(lines)-1 {
			line = Fit(line+" "+string(visual.Ellipsis), inner, string(visual.Ellipsis))
		}
		r.drawText(x, y, inner, line, text)
		y++
	}
}
