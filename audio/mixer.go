package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/desk-duck/constant"
)

// Mixer sums active streamers and writes s16le stereo PCM to output
type Mixer struct {
	output io.Writer

	playQueue chan beep.Streamer
	stopChan  chan struct{}
	done      chan struct{}
	stopped   atomic.Bool
	started   atomic.Bool

	// Accessed only by mix goroutine
	active []beep.Streamer
	tmp    [][2]float64

	// Stats
	statsMu sync.Mutex
	played  uint64
	dropped uint64

	// Error signaling
	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer) *Mixer {
	return &Mixer{
		output:    out,
		playQueue: make(chan beep.Streamer, constant.AudioPlayQueueSize),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		active:    make([]beep.Streamer, 0, 8),
		tmp:       make([][2]float64, constant.AudioBufferSamples),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	if m.started.CompareAndSwap(false, true) {
		go m.loop()
	}
}

// Stop signals the mixer to halt and waits for the loop to exit
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
	if m.started.Load() {
		<-m.done
	}
}

// Play queues a streamer, dropping it when the queue is full
func (m *Mixer) Play(s beep.Streamer) bool {
	if m.stopped.Load() || s == nil {
		return false
	}

	select {
	case m.playQueue <- s:
		return true
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
		return false
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

// loop is the main mixing goroutine
func (m *Mixer) loop() {
	defer close(m.done)

	ticker := time.NewTicker(constant.AudioBufferDuration)
	defer ticker.Stop()

	mixBuf := make([][2]float64, constant.AudioBufferSamples)
	outBytes := make([]byte, constant.AudioBufferSamples*constant.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case s := <-m.playQueue:
			m.admit(s)
			// Drain additional queued requests
			m.drainQueue(4)

		case <-ticker.C:
			m.mix(mixBuf)
			floatToBytes(mixBuf, outBytes)

			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// admit adds a streamer to the active set, dropping it past AudioMaxActive
func (m *Mixer) admit(s beep.Streamer) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	if len(m.active) >= constant.AudioMaxActive {
		m.dropped++
		return
	}
	m.active = append(m.active, s)
	m.played++
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case s := <-m.playQueue:
			m.admit(s)
		default:
			return
		}
	}
}

// mix fills buf with the sum of active streamers; silence keeps the pipe alive
func (m *Mixer) mix(buf [][2]float64) {
	for i := range buf {
		buf[i] = [2]float64{}
	}

	remaining := m.active[:0]
	for _, s := range m.active {
		tmp := m.tmp[:len(buf)]
		n, ok := s.Stream(tmp)
		for j := 0; j < n; j++ {
			buf[j][0] += tmp[j][0]
			buf[j][1] += tmp[j][1]
		}
		if ok && n == len(buf) {
			remaining = append(remaining, s)
		}
	}
	// Release drained streamers for GC
	for i := len(remaining); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = remaining
}

// floatToBytes converts stereo float frames to interleaved int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(toInt16(v)))
		}
	}
}

func toInt16(v float64) int16 {
	// Soft limiter (tanh-style)
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}

	// Hard clip
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return int16(v * 32767)
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
