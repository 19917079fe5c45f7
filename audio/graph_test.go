package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
)

func graphFor(sound core.SoundType, seed int64) Graph {
	r := RecipeFor(sound, DefaultSettings(), core.SoundParams{VolumeMultiplier: 1})
	return BuildGraph(r, rand.New(rand.NewSource(seed)))
}

func TestBuildGraphDeterministic(t *testing.T) {
	for s := core.SoundType(0); s < core.SoundTypeCount; s++ {
		a, b := graphFor(s, 42), graphFor(s, 42)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s: same seed produced different graphs (-a +b):\n%s", s, diff)
		}
	}

	a, b := graphFor(core.SoundWordTick, 1), graphFor(core.SoundWordTick, 2)
	assert.NotEqual(t, a.Oscillators[0].StartFreq, b.Oscillators[0].StartFreq)
}

func TestWordTickPitchRange(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		f := graphFor(core.SoundWordTick, seed).Oscillators[0].StartFreq
		assert.GreaterOrEqual(t, f, 400.0)
		assert.Less(t, f, 500.0)
	}
}

func TestSqueezeSweeps(t *testing.T) {
	out := graphFor(core.SoundSqueezeOut, 3)
	assert.Equal(t, WaveSquare, out.Oscillators[0].Waveform)
	assert.InDelta(t, out.Oscillators[0].StartFreq*0.5, out.Oscillators[0].EndFreq, 1e-9)
	assert.Equal(t, constant.SqueezeOutDuration, out.Duration)
	assert.Equal(t, constant.SqueezeOutAttack, out.Attack)

	in := graphFor(core.SoundSqueezeIn, 3)
	assert.Equal(t, WaveSine, in.Oscillators[0].Waveform)
	assert.Greater(t, in.Oscillators[0].EndFreq, in.Oscillators[0].StartFreq)
	assert.Greater(t, in.Attack, out.Attack, "squeeze-in swells slower")
	assert.LessOrEqual(t, len(in.Oscillators), maxOscillators)
}

func TestBounceVolumeCap(t *testing.T) {
	st := DefaultSettings()
	g := BuildGraph(RecipeFor(core.SoundBounce, st, core.SoundParams{VolumeMultiplier: 5}), rand.New(rand.NewSource(1)))
	assert.InDelta(t, constant.BounceBaseVolume*5, g.Gain, 1e-12)

	// Quiet squeeze volume caps the bounce
	st.SqueezeOutVolume = 0.01
	g = BuildGraph(RecipeFor(core.SoundBounce, st, core.SoundParams{VolumeMultiplier: 5}), rand.New(rand.NewSource(1)))
	assert.InDelta(t, 0.8*0.01*5, g.Gain, 1e-12)
}

func TestBounceDurationRange(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		g := graphFor(core.SoundBounce, seed)
		assert.GreaterOrEqual(t, g.Duration, constant.BounceDurationMin)
		assert.LessOrEqual(t, g.Duration, constant.BounceDurationMax)
		assert.Equal(t, g.Duration, g.Attack+g.Release)
	}
}

func TestEnvelopeFitsDuration(t *testing.T) {
	r := Recipe{BaseFrequency: 100, Duration: 10 * time.Millisecond, Attack: 8 * time.Millisecond, Release: 8 * time.Millisecond, Volume: 1}
	g := BuildGraph(r, rand.New(rand.NewSource(1)))
	assert.LessOrEqual(t, g.Attack+g.Release, g.Duration)
}

func drain(t *testing.T, s beep.Streamer) (count int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10_000; i++ {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				peak = math.Max(peak, math.Abs(v))
			}
		}
		count += n
		if !ok {
			return count, peak
		}
	}
	t.Fatal("streamer never drained")
	return
}

func TestGraphStreamerRenders(t *testing.T) {
	rate := beep.SampleRate(constant.AudioSampleRate)
	for s := core.SoundType(0); s < core.SoundTypeCount; s++ {
		g := graphFor(s, 9)
		count, peak := drain(t, g.Streamer(rate))
		assert.Equal(t, rate.N(g.Duration), count, s.String())
		assert.Greater(t, peak, 0.0, s.String())
		assert.Less(t, peak, 2.0, s.String())
	}
}

func TestSilentGraph(t *testing.T) {
	g := BuildGraph(Recipe{BaseFrequency: 440, Duration: 20 * time.Millisecond}, rand.New(rand.NewSource(1)))
	_, peak := drain(t, g.Streamer(beep.SampleRate(constant.AudioSampleRate)))
	assert.Equal(t, 0.0, peak)
}
