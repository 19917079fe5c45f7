package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/desk-duck/vmath"
)

// maxOscillators bounds the primary plus partials
const maxOscillators = 3

// OscNode is one tone generator with an exponential frequency ramp
type OscNode struct {
	Waveform  Waveform
	StartFreq float64
	EndFreq   float64
	Gain      float64
}

// Graph is a fully resolved transient sound; identical inputs yield identical graphs
type Graph struct {
	Sound       string
	Duration    time.Duration
	Oscillators []OscNode
	Filter      FilterSweep
	Attack      time.Duration
	Release     time.Duration
	Gain        float64
	NoiseLevel  float64
	NoiseSeed   int64
}

// BuildGraph resolves micro-variation from rng into a playable graph
func BuildGraph(r Recipe, rng *rand.Rand) Graph {
	base := r.BaseFrequency + rng.Float64()*r.FrequencyVariation
	dur := r.Duration + time.Duration(rng.Float64()*float64(r.DurationVariation))
	sweep := r.SweepEnd
	if sweep <= 0 {
		sweep = 1
	}

	g := Graph{
		Sound:      r.Sound.String(),
		Duration:   dur,
		Filter:     r.FilterSweep,
		Gain:       vmath.Clamp(r.Volume, 0, 1),
		NoiseLevel: r.NoiseMix,
		NoiseSeed:  rng.Int63(),
	}

	g.Oscillators = append(g.Oscillators, OscNode{
		Waveform:  r.Waveform,
		StartFreq: base,
		EndFreq:   base * sweep,
		Gain:      1,
	})
	for _, p := range r.Partials {
		if len(g.Oscillators) == maxOscillators {
			break
		}
		g.Oscillators = append(g.Oscillators, OscNode{
			Waveform:  p.Waveform,
			StartFreq: base * p.Ratio,
			EndFreq:   base * p.Ratio * sweep,
			Gain:      p.Gain,
		})
	}

	g.Attack = min(r.Attack, dur)
	g.Release = r.Release
	if g.Release <= 0 || g.Attack+g.Release > dur {
		g.Release = dur - g.Attack
	}
	return g
}

// Streamer renders the graph at rate: oscillators and noise mixed, filtered, enveloped, scaled
func (g Graph) Streamer(rate beep.SampleRate) beep.Streamer {
	n := rate.N(g.Duration)

	sources := make([]beep.Streamer, 0, len(g.Oscillators)+1)
	for _, o := range g.Oscillators {
		sources = append(sources, newVolume(NewSweepOscillator(o.Waveform, o.StartFreq, o.EndFreq, n, rate), o.Gain))
	}
	if g.NoiseLevel > 0 {
		sources = append(sources, newVolume(NewNoise(g.NoiseSeed, n), g.NoiseLevel))
	}

	filtered := NewSweepFilter(beep.Mix(sources...), g.Filter, n, rate)
	shaped := NewEnvelope(filtered, g.Duration, g.Attack, g.Release, rate)
	return newVolume(shaped, g.Gain)
}
