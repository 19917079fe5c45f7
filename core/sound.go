package core

// SoundType represents the duck's sound recipes
type SoundType int

const (
	SoundSqueezeOut SoundType = iota // Grip squish
	SoundSqueezeIn                   // Release re-inflate
	SoundBounce                      // Wall hit
	SoundWordTick                    // Typewriter word
	SoundTypeCount
)

var soundNames = [SoundTypeCount]string{"squeezeOut", "squeezeIn", "bounce", "wordTick"}

func (s SoundType) String() string {
	if s < 0 || s >= SoundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// SoundParams carries per-play inputs for a recipe
type SoundParams struct {
	// VolumeMultiplier scales recipe gain, used by bounce (3-10)
	VolumeMultiplier float64
}
