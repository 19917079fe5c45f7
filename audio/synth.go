package audio

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
)

// Synthesizer turns sound requests into graphs and hands them to a backend
// Play never blocks and never fails; a missing backend makes it a no-op
type Synthesizer struct {
	mu       sync.Mutex
	backend  Backend
	settings Settings
	rng      *rand.Rand
	rate     beep.SampleRate
	logger   *zap.Logger

	warned bool
}

// NewSynthesizer creates a synthesizer; a nil backend is silent
func NewSynthesizer(backend Backend, settings Settings, rng *rand.Rand, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		backend:  backend,
		settings: settings,
		rng:      rng,
		rate:     beep.SampleRate(constant.AudioSampleRate),
		logger:   logger,
	}
}

// SetSettings replaces sound preferences
func (s *Synthesizer) SetSettings(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Settings returns sound preferences
func (s *Synthesizer) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Play fires a sound and returns immediately
func (s *Synthesizer) Play(sound core.SoundType, params core.SoundParams) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("audio play panicked",
				zap.Stringer("sound", sound), zap.Any("panic", r))
		}
	}()

	s.mu.Lock()
	if s.backend == nil || !s.settings.Allows(sound) {
		s.mu.Unlock()
		return
	}
	graph := BuildGraph(RecipeFor(sound, s.settings, params), s.rng)
	backend := s.backend
	s.mu.Unlock()

	if err := backend.Play(graph.Streamer(s.rate)); err != nil {
		s.reportOnce(backend, err)
	}
}

// reportOnce logs the first backend failure; later ones are expected repeats
func (s *Synthesizer) reportOnce(backend Backend, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned {
		return
	}
	s.warned = true
	if errors.Is(err, ErrPipeClosed) || errors.Is(err, ErrBackendClosed) {
		s.logger.Info("audio backend unavailable, sounds disabled", zap.Error(err))
		return
	}
	s.logger.Warn("audio play failed", zap.Error(fmt.Errorf("%s: %w", backend.Name(), err)))
}

// Backend returns the active backend
func (s *Synthesizer) Backend() Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend
}

// Close releases the backend
func (s *Synthesizer) Close() error {
	s.mu.Lock()
	backend := s.backend
	s.backend = nil
	s.mu.Unlock()
	if backend == nil {
		return nil
	}
	return backend.Close()
}
