package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerBufferDuration trades latency for underrun safety
const speakerBufferDuration = 100 * time.Millisecond

// SpeakerBackend plays through beep's native speaker
type SpeakerBackend struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	closed bool
}

// NewSpeakerBackend initializes the speaker at rate
func NewSpeakerBackend(rate beep.SampleRate) (*SpeakerBackend, error) {
	if err := speaker.Init(rate, rate.N(speakerBufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	sb := &SpeakerBackend{
		mixer: &beep.Mixer{},
		rate:  rate,
	}
	speaker.Play(sb.mixer)
	return sb, nil
}

// Play adds s to the speaker mixer
func (sb *SpeakerBackend) Play(s beep.Streamer) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.closed {
		return ErrBackendClosed
	}

	speaker.Lock()
	sb.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Name implements Backend
func (sb *SpeakerBackend) Name() string {
	return BackendSpeaker.String()
}

// Close stops all sounds and closes the device
func (sb *SpeakerBackend) Close() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.closed {
		return nil
	}
	sb.closed = true

	speaker.Lock()
	sb.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}
