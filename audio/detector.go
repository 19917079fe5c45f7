package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/lixenwraith/desk-duck/constant"
)

// pipeCandidates lists exec backends in priority order
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay
func pipeCandidates() []BackendConfig {
	rate := strconv.Itoa(constant.AudioSampleRate)
	channels := strconv.Itoa(constant.AudioChannels)

	return []BackendConfig{
		{
			Type: BackendPulse,
			Name: "pacat",
			Args: []string{
				"--raw",
				"--format=s16le",
				"--rate=" + rate,
				"--channels=" + channels,
				"--latency-msec=50",
				"--playback",
			},
		},
		{
			Type: BackendPipeWire,
			Name: "pw-cat",
			Args: []string{
				"--playback",
				"--format=s16",
				"--rate=" + rate,
				"--channels=" + channels,
				"--latency=50ms",
				"-",
			},
		},
		{
			Type: BackendALSA,
			Name: "aplay",
			Args: []string{
				"-t", "raw",
				"-f", "S16_LE",
				"-r", rate,
				"-c", channels,
				"-q",
			},
		},
		{
			Type: BackendSoX,
			Name: "play",
			Args: []string{
				"-t", "raw",
				"-e", "signed",
				"-b", "16",
				"-c", channels,
				"-r", rate,
				"-",
				"-d",
				"-q",
			},
		},
		{
			Type: BackendFFplay,
			Name: "ffplay",
			Args: []string{
				"-nodisp",
				"-autoexit",
				"-f", "s16le",
				"-ac", channels,
				"-ar", rate,
				"-probesize", "32",
				"-analyzeduration", "0",
				"-i", "pipe:0",
				"-loglevel", "quiet",
			},
		},
	}
}

// resolve fills Path, reporting whether the backend is usable on this host
func resolve(c BackendConfig) (*BackendConfig, bool) {
	if c.Type == BackendOSS {
		if runtime.GOOS != "freebsd" {
			return nil, false
		}
		if _, err := os.Stat("/dev/dsp"); err != nil {
			return nil, false
		}
		c.Path = "/dev/dsp"
		return &c, true
	}
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, false
	}
	c.Path = path
	return &c, true
}

func ossCandidate() BackendConfig {
	return BackendConfig{Type: BackendOSS, Name: "oss"}
}

// DetectBackend returns the first available pipe backend
func DetectBackend() (*BackendConfig, error) {
	for _, c := range append(pipeCandidates(), ossCandidate()) {
		if cfg, ok := resolve(c); ok {
			return cfg, nil
		}
	}
	return nil, ErrNoAudioBackend
}

// FindBackend resolves a pipe backend by name ("sox" is accepted for "play")
func FindBackend(name string) (*BackendConfig, error) {
	if name == "sox" {
		name = "play"
	}
	for _, c := range append(pipeCandidates(), ossCandidate()) {
		if c.Name != name {
			continue
		}
		if cfg, ok := resolve(c); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("%s: %w", name, ErrNoAudioBackend)
	}
	return nil, fmt.Errorf("unknown audio backend %q: %w", name, ErrNoAudioBackend)
}
