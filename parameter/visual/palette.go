package visual

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Part identifies a region of the duck sprite
type Part uint8

const (
	PartNone Part = iota
	PartBody
	PartHead
	PartBeak
	PartEye
	PartCount
)

// SkinPalettes colors sprite parts per skin name
var SkinPalettes = map[string][PartCount]RGB{
	"duck": {
		PartBody: {255, 214, 10},
		PartHead: {255, 224, 60},
		PartBeak: {255, 140, 0},
		PartEye:  {20, 20, 20},
	},
	"goose": {
		PartBody: {235, 235, 230},
		PartHead: {250, 250, 245},
		PartBeak: {240, 120, 30},
		PartEye:  {10, 10, 10},
	},
	"robot": {
		PartBody: {150, 160, 170},
		PartHead: {180, 190, 200},
		PartBeak: {90, 100, 110},
		PartEye:  {0, 230, 230},
	},
}

// Screen colors
var (
	RgbBackground = RGB{16, 16, 24}
	RgbStatusFg   = RGB{140, 140, 160}

	RgbBubbleBg      = RGB{250, 250, 250}
	RgbBubbleText    = RGB{30, 30, 30}
	RgbBubbleSpeech  = RGB{90, 90, 110}
	RgbBubbleWarning = RGB{230, 170, 0}
	RgbBubbleError   = RGB{220, 50, 50}
)

// SepiaMatrix rows produce R, G, B from input R, G, B
var SepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Luma weights for grayscale (Rec. 601)
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)
