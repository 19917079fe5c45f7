package audio

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/desk-duck/core"
)

type panicBackend struct{}

func (panicBackend) Play(beep.Streamer) error { panic("device gone") }
func (panicBackend) Close() error             { return nil }
func (panicBackend) Name() string             { return "panic" }

type failingBackend struct{ calls int }

func (f *failingBackend) Play(beep.Streamer) error {
	f.calls++
	return errors.New("device busy")
}
func (f *failingBackend) Close() error { return nil }
func (f *failingBackend) Name() string { return "failing" }

func newSynth(b Backend, st Settings, logger *zap.Logger) *Synthesizer {
	return NewSynthesizer(b, st, rand.New(rand.NewSource(1)), logger)
}

func TestPlayReachesBackend(t *testing.T) {
	nb := &NullBackend{}
	s := newSynth(nb, DefaultSettings(), nil)

	for snd := core.SoundType(0); snd < core.SoundTypeCount; snd++ {
		s.Play(snd, core.SoundParams{VolumeMultiplier: 3})
	}
	assert.EqualValues(t, core.SoundTypeCount, nb.Played())
}

func TestPlayRespectsSettings(t *testing.T) {
	nb := &NullBackend{}
	st := DefaultSettings()
	st.BounceSoundEnabled = false
	st.WordSoundEnabled = false
	s := newSynth(nb, st, nil)

	s.Play(core.SoundBounce, core.SoundParams{VolumeMultiplier: 5})
	s.Play(core.SoundWordTick, core.SoundParams{})
	assert.EqualValues(t, 0, nb.Played())

	s.Play(core.SoundSqueezeIn, core.SoundParams{})
	assert.EqualValues(t, 1, nb.Played())

	st.Enabled = false
	s.SetSettings(st)
	s.Play(core.SoundSqueezeOut, core.SoundParams{})
	assert.EqualValues(t, 1, nb.Played())
}

func TestPlayWithoutBackend(t *testing.T) {
	s := newSynth(nil, DefaultSettings(), nil)
	assert.NotPanics(t, func() { s.Play(core.SoundSqueezeOut, core.SoundParams{}) })
	assert.NoError(t, s.Close())
}

func TestPlayRecoversPanic(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	s := newSynth(panicBackend{}, DefaultSettings(), zap.New(obs))

	assert.NotPanics(t, func() { s.Play(core.SoundBounce, core.SoundParams{VolumeMultiplier: 3}) })
	assert.Equal(t, 1, logs.FilterMessage("audio play panicked").Len())
}

func TestPlayFailureLoggedOnce(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	fb := &failingBackend{}
	s := newSynth(fb, DefaultSettings(), zap.New(obs))

	s.Play(core.SoundSqueezeOut, core.SoundParams{})
	s.Play(core.SoundSqueezeOut, core.SoundParams{})
	assert.Equal(t, 2, fb.calls)
	assert.Equal(t, 1, logs.FilterMessage("audio play failed").Len())
}

func TestCloseDetachesBackend(t *testing.T) {
	nb := &NullBackend{}
	s := newSynth(nb, DefaultSettings(), nil)
	assert.NoError(t, s.Close())
	s.Play(core.SoundSqueezeOut, core.SoundParams{})
	assert.EqualValues(t, 0, nb.Played())
	assert.Nil(t, s.Backend())
}
