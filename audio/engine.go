package audio

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

// PipeBackend streams mixed PCM into a system playback tool's stdin
type PipeBackend struct {
	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File // For direct OSS writes
	mixer   *Mixer
	logger  *zap.Logger

	running    atomic.Bool
	silentMode atomic.Bool

	wg sync.WaitGroup
}

// NewPipeBackend launches the backend process and mixer
func NewPipeBackend(cfg *BackendConfig, logger *zap.Logger) (*PipeBackend, error) {
	if cfg == nil {
		return nil, ErrNoAudioBackend
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pb := &PipeBackend{backend: cfg, logger: logger}

	var writer io.Writer
	if cfg.Type == BackendOSS {
		// Direct file write for OSS
		f, err := os.OpenFile(cfg.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
		}
		pb.ossFile = f
		writer = f
	} else {
		cmd := exec.Command(cfg.Path, cfg.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("%s stdin: %w", cfg.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return nil, fmt.Errorf("start %s: %w", cfg.Name, err)
		}
		pb.cmd = cmd
		pb.stdin = stdin
		writer = stdin

		pb.wg.Add(1)
		go pb.monitorProcess()
	}

	pb.start(writer)
	return pb, nil
}

// newWriterBackend mixes into an arbitrary writer
func newWriterBackend(w io.Writer, logger *zap.Logger) *PipeBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	pb := &PipeBackend{
		backend: &BackendConfig{Type: BackendNull, Name: "writer"},
		logger:  logger,
	}
	pb.start(w)
	return pb
}

func (pb *PipeBackend) start(w io.Writer) {
	pb.mixer = NewMixer(w)
	pb.mixer.Start()

	pb.wg.Add(1)
	go pb.monitorMixer()

	pb.running.Store(true)
}

// monitorProcess watches for subprocess exit
func (pb *PipeBackend) monitorProcess() {
	defer pb.wg.Done()

	err := pb.cmd.Wait()
	if err != nil && pb.running.Load() && pb.silentMode.CompareAndSwap(false, true) {
		pb.logger.Warn("audio backend exited, continuing silently",
			zap.String("backend", pb.backend.Name), zap.Error(err))
	}
}

// monitorMixer watches for pipe errors
func (pb *PipeBackend) monitorMixer() {
	defer pb.wg.Done()

	select {
	case err := <-pb.mixer.Errors():
		if pb.silentMode.CompareAndSwap(false, true) && pb.running.Load() {
			pb.logger.Warn("audio pipe failed, continuing silently", zap.Error(err))
		}
	case <-pb.mixer.done:
	}
}

// Play queues s; drops are silent
func (pb *PipeBackend) Play(s beep.Streamer) error {
	if !pb.running.Load() {
		return ErrBackendClosed
	}
	if pb.silentMode.Load() {
		return ErrPipeClosed
	}
	pb.mixer.Play(s)
	return nil
}

// Name returns the backend tool name
func (pb *PipeBackend) Name() string {
	return pb.backend.Name
}

// Silent reports whether the pipe failed and plays are discarded
func (pb *PipeBackend) Silent() bool {
	return pb.silentMode.Load()
}

// Stats returns played and dropped counts
func (pb *PipeBackend) Stats() (played, dropped uint64) {
	return pb.mixer.Stats()
}

// Close terminates the mixer and backend process
func (pb *PipeBackend) Close() error {
	if !pb.running.CompareAndSwap(true, false) {
		return nil
	}

	pb.mixer.Stop()

	if pb.stdin != nil {
		pb.stdin.Close()
	}
	if pb.ossFile != nil {
		pb.ossFile.Close()
	}
	if pb.cmd != nil && pb.cmd.Process != nil {
		pb.cmd.Process.Kill()
	}

	pb.wg.Wait()
	return nil
}
