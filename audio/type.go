package audio

import (
	"errors"

	"github.com/gopxl/beep"
)

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
	BackendSpeaker
	BackendNull
)

var backendNames = [...]string{"pacat", "pw-cat", "aplay", "sox", "ffplay", "oss", "speaker", "none"}

func (b BackendType) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return "unknown"
	}
	return backendNames[b]
}

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Backend plays finished streamers; Play must not block on playback
type Backend interface {
	Play(s beep.Streamer) error
	Close() error
	Name() string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrBackendClosed  = errors.New("audio backend closed")
)
