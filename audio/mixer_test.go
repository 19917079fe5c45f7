package audio

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
)

// syncBuffer is a goroutine-safe bytes.Buffer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// constant emits v for n samples
type constStreamer struct {
	v float64
	n int
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.n <= 0 {
		return 0, false
	}
	k := min(len(samples), c.n)
	for i := 0; i < k; i++ {
		samples[i] = [2]float64{c.v, c.v}
	}
	c.n -= k
	return k, true
}

func (c *constStreamer) Err() error { return nil }

func nonZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return true
		}
	}
	return false
}

func TestMixSumsAndDropsDrained(t *testing.T) {
	m := NewMixer(io.Discard)
	long := &constStreamer{v: 0.25, n: 10_000}
	short := &constStreamer{v: 0.5, n: 10}
	m.active = []beep.Streamer{long, short}

	buf := make([][2]float64, 64)
	m.mix(buf)
	assert.InDelta(t, 0.75, buf[0][0], 1e-12)
	assert.InDelta(t, 0.25, buf[10][1], 1e-12)
	assert.Len(t, m.active, 1)

	m.mix(buf)
	assert.InDelta(t, 0.25, buf[63][0], 1e-12)
}

func TestToInt16Limits(t *testing.T) {
	assert.Equal(t, int16(0), toInt16(0))
	assert.Equal(t, int16(16383), toInt16(0.5))
	prev := toInt16(0.8)
	for _, v := range []float64{0.9, 1.0, 2.0, 10.0} {
		got := toInt16(v)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, int16(32767))
		prev = got
	}
	assert.Equal(t, -toInt16(3), toInt16(-3))
}

func TestMixerWritesPCM(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &syncBuffer{}
	m := NewMixer(out)
	m.Start()

	g := graphFor(core.SoundSqueezeOut, 1)
	require.True(t, m.Play(g.Streamer(beep.SampleRate(constant.AudioSampleRate))))

	require.Eventually(t, func() bool {
		played, _ := m.Stats()
		return played == 1 && nonZero(out.snapshot())
	}, 2*time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
	assert.False(t, m.Play(&constStreamer{v: 1, n: 1}))
}

func TestMixerWritesSilenceWhenIdle(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &syncBuffer{}
	m := NewMixer(out)
	m.Start()
	require.Eventually(t, func() bool {
		return len(out.snapshot()) >= constant.AudioBufferSamples*constant.AudioBytesPerFrame
	}, 2*time.Second, 5*time.Millisecond)
	m.Stop()

	assert.False(t, nonZero(out.snapshot()))
}

func TestMixerReportsPipeError(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewMixer(brokenWriter{})
	m.Start()
	select {
	case err := <-m.Errors():
		assert.ErrorIs(t, err, ErrPipeClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("no pipe error reported")
	}
	m.Stop()
}

func TestMixerDropsWhenQueueFull(t *testing.T) {
	m := NewMixer(io.Discard)
	for i := 0; i < constant.AudioPlayQueueSize; i++ {
		require.True(t, m.Play(&constStreamer{v: 0.1, n: 1}))
	}
	assert.False(t, m.Play(&constStreamer{v: 0.1, n: 1}))
	_, dropped := m.Stats()
	assert.EqualValues(t, 1, dropped)
}

func TestWriterBackendLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &syncBuffer{}
	pb := newWriterBackend(out, nil)
	require.NoError(t, pb.Play(&constStreamer{v: 0.5, n: 2000}))
	require.Eventually(t, func() bool { return nonZero(out.snapshot()) }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, pb.Close())
	require.NoError(t, pb.Close())
	assert.ErrorIs(t, pb.Play(&constStreamer{v: 0.5, n: 1}), ErrBackendClosed)
}

func TestWriterBackendGoesSilentOnPipeError(t *testing.T) {
	defer goleak.VerifyNone(t)

	pb := newWriterBackend(brokenWriter{}, nil)
	require.Eventually(t, pb.Silent, 2*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, pb.Play(&constStreamer{v: 0.5, n: 1}), ErrPipeClosed)
	require.NoError(t, pb.Close())
}

func TestFindBackendUnknown(t *testing.T) {
	_, err := FindBackend("gramophone")
	assert.ErrorIs(t, err, ErrNoAudioBackend)
}

func TestOpenNone(t *testing.T) {
	b, err := Open("none", nil)
	require.NoError(t, err)
	assert.Equal(t, "none", b.Name())
	assert.NoError(t, b.Close())
}
