package core

import "time"

// BubbleKind classifies bubble content
type BubbleKind uint8

const (
	BubbleSpeech BubbleKind = iota
	BubbleWarning
	BubbleError
)

var bubbleKindNames = [...]string{"speech", "warning", "error"}

func (k BubbleKind) String() string {
	if int(k) >= len(bubbleKindNames) {
		return "unknown"
	}
	return bubbleKindNames[k]
}

// Urgent reports whether the kind suspends ambient speech
func (k BubbleKind) Urgent() bool {
	return k == BubbleWarning || k == BubbleError
}

// BubbleEntry is one queued or visible bubble
type BubbleEntry struct {
	Kind       BubbleKind
	Title      string
	Text       string
	EnqueuedAt time.Time
}
