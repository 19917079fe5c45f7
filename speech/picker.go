package speech

import (
	"maps"
	"math/rand"
	"slices"
)

// Line is one picked ambient line
type Line struct {
	Topic string
	Text  string
}

// Picker selects ambient lines: uniform topic, then uniform line
type Picker struct {
	provider Provider
	rng      *rand.Rand
}

// NewPicker creates a picker over provider
func NewPicker(provider Provider, rng *rand.Rand) *Picker {
	return &Picker{provider: provider, rng: rng}
}

// Pick returns a line; with personality set and a matching skin, the topic is forced to the skin
func (p *Picker) Pick(personality bool, skin string) (Line, bool) {
	if personality {
		if lines, ok := p.provider.Personality(skin); ok {
			return Line{Topic: skin, Text: lines[p.rng.Intn(len(lines))]}, true
		}
	}

	topics := p.provider.Topics()
	keys := make([]string, 0, len(topics))
	// Sorted so a seeded rng is reproducible
	for _, k := range slices.Sorted(maps.Keys(topics)) {
		if len(topics[k]) > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return Line{}, false
	}

	topic := keys[p.rng.Intn(len(keys))]
	lines := topics[topic]
	return Line{Topic: topic, Text: lines[p.rng.Intn(len(lines))]}, true
}
