package render

import (
	"math"

	"github.com/lixenwraith/desk-duck/duck"
	"github.com/lixenwraith/desk-duck/parameter/visual"
)

// ellipse is a sprite region in unit coordinates, sprite facing right
type ellipse struct {
	part   visual.Part
	cx, cy float64
	rx, ry float64
}

// spriteParts are tested in order, first hit wins
var spriteParts = [...]ellipse{
	{visual.PartEye, 0.45, -0.52, 0.1, 0.14},
	{visual.PartBeak, 0.8, -0.36, 0.22, 0.1},
	{visual.PartHead, 0.35, -0.45, 0.36, 0.38},
	{visual.PartBody, -0.05, 0.35, 0.92, 0.6},
}

// partAt classifies unit coordinates (u, v), both spanning [-1, 1] across the duck box
func partAt(u, v float64) visual.Part {
	for _, e := range spriteParts {
		du := (u - e.cx) / e.rx
		dv := (v - e.cy) / e.ry
		if du*du+dv*dv <= 1 {
			return e.part
		}
	}
	return visual.PartNone
}

// SpriteCell is one rasterized terminal cell of a duck
type SpriteCell struct {
	Col, Row int
	Rune     rune
	Part     visual.Part
}

// Rasterize samples the transformed sprite at 2x2 points per cell
// Cells with no coverage are skipped
func Rasterize(f duck.Frame, cellW, cellH float64, fn func(SpriteCell)) {
	w := f.Size * f.Transform.ScaleX
	h := f.Size * f.Transform.ScaleY
	if math.Abs(w) < 1e-6 || h < 1e-6 {
		return
	}

	cx := f.Position.X + f.Size/2
	cy := f.Position.Y + f.Size/2
	theta := f.Transform.Rotation * math.Pi / 180
	sin, cos := math.Sincos(theta)

	// Rotation-safe extent
	reach := math.Max(math.Abs(w), h) * 0.75
	col0 := int(math.Floor((cx - reach) / cellW))
	col1 := int(math.Ceil((cx + reach) / cellW))
	row0 := int(math.Floor((cy - reach) / cellH))
	row1 := int(math.Ceil((cy + reach) / cellH))

	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			var mask uint8
			best := visual.PartNone
			for q := 0; q < 4; q++ {
				qx, qy := q&1, q>>1
				px := (float64(col) + (float64(qx)+0.5)/2) * cellW
				py := (float64(row) + (float64(qy)+0.5)/2) * cellH
				dx, dy := px-cx, py-cy

				// Inverse rotation into sprite space
				rx := dx*cos + dy*sin
				ry := -dx*sin + dy*cos

				part := partAt(rx/(w/2), ry/(h/2))
				if part == visual.PartNone {
					continue
				}
				mask |= 1 << q
				if best == visual.PartNone || part > best {
					best = part
				}
			}
			if mask != 0 {
				fn(SpriteCell{Col: col, Row: row, Rune: visual.QuadrantChars[mask], Part: best})
			}
		}
	}
}
