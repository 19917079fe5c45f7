package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/desk-duck/parameter/visual"
)

// RGB is an alias to visual.RGB, allowing render package to extend functionality
type RGB = visual.RGB

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend mixes src over dst with alpha in [0, 1]
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha >= 1 {
		return src
	}
	if alpha <= 0 {
		return dst
	}
	inv := 1 - alpha
	return RGB{
		R: clamp(float64(dst.R)*inv + float64(src.R)*alpha),
		G: clamp(float64(dst.G)*inv + float64(src.G)*alpha),
		B: clamp(float64(dst.B)*inv + float64(src.B)*alpha),
	}
}

// Filter applies a named color filter, unknown names pass through
func Filter(c RGB, name string) RGB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	switch name {
	case "grayscale":
		l := clamp(r*visual.LumaR + g*visual.LumaG + b*visual.LumaB)
		return RGB{R: l, G: l, B: l}
	case "sepia":
		m := visual.SepiaMatrix
		return RGB{
			R: clamp(r*m[0][0] + g*m[0][1] + b*m[0][2]),
			G: clamp(r*m[1][0] + g*m[1][1] + b*m[1][2]),
			B: clamp(r*m[2][0] + g*m[2][1] + b*m[2][2]),
		}
	case "invert":
		return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
	}
	return c
}

// Color converts to a tcell true color
func Color(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
