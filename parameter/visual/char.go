package visual

// QuadrantChars provides 2x2 sub-cell resolution for sprite rasterizing
// Bitmap encoding: bit0=UL, bit1=UR, bit2=LL, bit3=LR
// Layout: [UL][UR]
//
//	[LL][LR]
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// Bubble border runes
const (
	BoxTopLeft     = '╭'
	BoxTopRight    = '╮'
	BoxBottomLeft  = '╰'
	BoxBottomRight = '╯'
	BoxHorizontal  = '─'
	BoxVertical    = '│'
)

// Ellipsis marks text cut at the bubble edge
const Ellipsis = '…'
