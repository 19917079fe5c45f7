package core

// BehaviorMode is the duck's exclusive motion mode
type BehaviorMode uint8

const (
	ModeIdle BehaviorMode = iota
	ModeDragging
	ModeWalking
	ModeThrown
)

var modeNames = [...]string{"idle", "dragging", "walking", "thrown"}

func (m BehaviorMode) String() string {
	if int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}
