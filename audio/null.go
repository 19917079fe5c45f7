package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// NullBackend discards sounds, counting them
type NullBackend struct {
	played atomic.Int64
}

// Play implements Backend
func (n *NullBackend) Play(beep.Streamer) error {
	n.played.Add(1)
	return nil
}

// Close implements Backend
func (n *NullBackend) Close() error { return nil }

// Name implements Backend
func (n *NullBackend) Name() string { return BackendNull.String() }

// Played returns the number of discarded sounds
func (n *NullBackend) Played() int64 {
	return n.played.Load()
}
