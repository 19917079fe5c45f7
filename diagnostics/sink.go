package diagnostics

import (
	"sync/atomic"

	"github.com/lixenwraith/desk-duck/core"
)

// Sink accepts host diagnostics to be shown as bubbles
type Sink interface {
	ReportError(title, text string)
	ReportWarning(title, text string)
}

// Report is one queued diagnostic
type Report struct {
	Kind  core.BubbleKind
	Title string
	Text  string
}

// Mailbox is a goroutine-safe Sink drained by the tick goroutine
// Reports beyond capacity are dropped
type Mailbox struct {
	ch      chan Report
	dropped atomic.Uint64
}

// NewMailbox creates a mailbox holding up to size reports
func NewMailbox(size int) *Mailbox {
	if size <= 0 {
		size = 1
	}
	return &Mailbox{ch: make(chan Report, size)}
}

// ReportError implements Sink
func (m *Mailbox) ReportError(title, text string) {
	m.post(Report{Kind: core.BubbleError, Title: title, Text: text})
}

// ReportWarning implements Sink
func (m *Mailbox) ReportWarning(title, text string) {
	m.post(Report{Kind: core.BubbleWarning, Title: title, Text: text})
}

func (m *Mailbox) post(r Report) {
	select {
	case m.ch <- r:
	default:
		m.dropped.Add(1)
	}
}

// Drain delivers pending reports to fn without blocking
func (m *Mailbox) Drain(fn func(Report)) int {
	n := 0
	for {
		select {
		case r := <-m.ch:
			fn(r)
			n++
		default:
			return n
		}
	}
}

// Dropped returns how many reports overflowed
func (m *Mailbox) Dropped() uint64 {
	return m.dropped.Load()
}
