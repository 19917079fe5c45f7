package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweepOscillator generates a wave whose frequency ramps exponentially from f0 to f1
type sweepOscillator struct {
	f0, f1   float64
	phase    float64
	duration int
	position int
	wave     Waveform
	rate     beep.SampleRate
}

// NewSweepOscillator creates an oscillator lasting n samples
func NewSweepOscillator(wave Waveform, f0, f1 float64, n int, rate beep.SampleRate) beep.Streamer {
	return &sweepOscillator{
		f0:       f0,
		f1:       f1,
		duration: n,
		wave:     wave,
		rate:     rate,
	}
}

func (o *sweepOscillator) freq() float64 {
	if o.duration <= 1 || o.f0 <= 0 || o.f1 <= 0 || o.f0 == o.f1 {
		return o.f0
	}
	t := float64(o.position) / float64(o.duration-1)
	return o.f0 * math.Pow(o.f1/o.f0, t)
}

func (o *sweepOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq() / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *sweepOscillator) Err() error { return nil }

// noise is seeded white noise, reproducible per graph
type noise struct {
	rng      *rand.Rand
	duration int
	position int
}

// NewNoise creates n samples of white noise from seed
func NewNoise(seed int64, n int) beep.Streamer {
	return &noise{rng: rand.New(rand.NewSource(seed)), duration: n}
}

func (z *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if z.position >= z.duration {
			return i, i > 0
		}
		v := z.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
		z.position++
	}
	return len(samples), true
}

func (z *noise) Err() error { return nil }

// sweepFilter is a Chamberlin state-variable filter with an exponential cutoff sweep
type sweepFilter struct {
	streamer beep.Streamer
	sweep    FilterSweep
	rate     beep.SampleRate
	duration int
	position int
	damp     float64
	// per channel state
	low, band [2]float64
}

// NewSweepFilter filters s over n samples
func NewSweepFilter(s beep.Streamer, sweep FilterSweep, n int, rate beep.SampleRate) beep.Streamer {
	q := sweep.Q
	if q <= 0 {
		q = 0.7
	}
	return &sweepFilter{
		streamer: s,
		sweep:    sweep,
		rate:     rate,
		duration: n,
		damp:     1 / q,
	}
}

// coefficient returns the SVF frequency term, cutoff capped at rate/12 to keep the filter stable
func (f *sweepFilter) coefficient() float64 {
	fc := f.sweep.Start
	if f.duration > 1 && f.sweep.Start > 0 && f.sweep.End > 0 {
		t := math.Min(float64(f.position)/float64(f.duration-1), 1)
		fc = f.sweep.Start * math.Pow(f.sweep.End/f.sweep.Start, t)
	}
	fc = math.Max(20, math.Min(fc, float64(f.rate)/12))
	return 2 * math.Sin(math.Pi*fc/float64(f.rate))
}

func (f *sweepFilter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		k := f.coefficient()
		for ch := 0; ch < 2; ch++ {
			in := samples[i][ch]
			f.low[ch] += k * f.band[ch]
			high := in - f.low[ch] - f.damp*f.band[ch]
			f.band[ch] += k * high

			switch f.sweep.Type {
			case FilterLowPass:
				samples[i][ch] = f.low[ch]
			case FilterBandPass:
				samples[i][ch] = f.band[ch]
			case FilterHighPass:
				samples[i][ch] = high
			}
		}
		f.position++
	}
	return n, ok
}

func (f *sweepFilter) Err() error { return f.streamer.Err() }

// envelope applies attack/sustain/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain vol
// math.Log2(0) is -Inf, so 0 volume is handled as silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
