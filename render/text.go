package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks text into lines no wider than width cells
// Words longer than a line are split
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineW := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineW = 0
	}

	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		for ww > width {
			if lineW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// Single rune wider than the line
				head = string([]rune(word)[:1])
			}
			line.WriteString(head)
			lineW = runewidth.StringWidth(head)
			flush()
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}

		switch {
		case lineW == 0:
		case lineW+1+ww <= width:
			line.WriteByte(' ')
			lineW++
		default:
			flush()
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 {
		flush()
	}
	return lines
}

// Fit cuts s to width cells, marking the cut with tail
func Fit(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}
