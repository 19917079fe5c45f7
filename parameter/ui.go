package parameter

// Status Bar
const (
	// StatusHelp lists the default key bindings
	StatusHelp = " q quit  h hide  m mute  space speak  double-click speak "

	// UI Symbols
	AudioStr = "♫ "
	MutedStr = "× "

	// StatusRows is the number of terminal rows reserved below the viewport
	StatusRows = 1
)

// Bubble text layout, in cells
const (
	BubblePadding = 1
	// BubbleMinCols and BubbleMinRows hide a bubble scaled below a readable size
	BubbleMinCols = 4
	BubbleMinRows = 3
)
