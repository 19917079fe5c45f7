package audio

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/constant"
)

// Open selects a backend by name: "auto", "none", "speaker" or a pipe tool name
// On failure it returns a NullBackend alongside the error so callers can continue silently
func Open(name string, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rate := beep.SampleRate(constant.AudioSampleRate)

	switch name {
	case "none":
		return &NullBackend{}, nil

	case "speaker":
		sb, err := NewSpeakerBackend(rate)
		if err != nil {
			return &NullBackend{}, fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
		}
		return sb, nil

	case "", "auto":
		var errs []error
		if cfg, err := DetectBackend(); err == nil {
			pb, err := NewPipeBackend(cfg, logger)
			if err == nil {
				return pb, nil
			}
			errs = append(errs, err)
		}
		sb, err := NewSpeakerBackend(rate)
		if err == nil {
			return sb, nil
		}
		errs = append(errs, err)
		return &NullBackend{}, fmt.Errorf("%w: %w", ErrNoAudioBackend, errors.Join(errs...))

	default:
		cfg, err := FindBackend(name)
		if err != nil {
			return &NullBackend{}, err
		}
		pb, err := NewPipeBackend(cfg, logger)
		if err != nil {
			return &NullBackend{}, fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
		}
		return pb, nil
	}
}
