package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// logCore turns Warn and Error log entries into bubbles
type logCore struct {
	zapcore.LevelEnabler
	sink   Sink
	fields []zapcore.Field
	// Reports that themselves log must not loop
	busy *atomic.Bool
}

// NewCore returns a zapcore.Core feeding sink; level below Warn is raised to Warn
func NewCore(sink Sink, level zapcore.Level) zapcore.Core {
	if level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}
	return &logCore{LevelEnabler: level, sink: sink, busy: &atomic.Bool{}}
}

func (c *logCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *logCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *logCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !c.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer c.busy.Store(false)

	title := ent.LoggerName
	if title == "" {
		title = ent.Level.String()
	}
	text := ent.Message
	if detail := summarize(append(append([]zapcore.Field(nil), c.fields...), fields...)); detail != "" {
		text += " (" + detail + ")"
	}

	if ent.Level >= zapcore.ErrorLevel {
		c.sink.ReportError(title, text)
	} else {
		c.sink.ReportWarning(title, text)
	}
	return nil
}

func (c *logCore) Sync() error { return nil }

// summarize renders fields as sorted key=value pairs
func summarize(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, enc.Fields[k]))
	}
	return strings.Join(parts, " ")
}
