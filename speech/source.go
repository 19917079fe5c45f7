package speech

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Source is a Provider whose dataset can be swapped while the tick reads it
type Source struct {
	path    string
	current atomic.Pointer[Dataset]
	logger  *zap.Logger
}

// NewSource loads path, or the bundled dataset when path is empty
// A failed load degrades to Builtin and is logged, never returned
func NewSource(path string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Source{path: path, logger: logger.Named("speech")}
	if path == "" {
		s.current.Store(Default())
		return s
	}
	if err := s.Reload(); err != nil {
		s.current.Store(Builtin())
	}
	return s
}

// Path returns the watched dataset file, empty for the bundled dataset
func (s *Source) Path() string {
	return s.path
}

// Reload re-reads the dataset file; on error the previous dataset stays active
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	d, err := Load(s.path)
	if err != nil {
		s.logger.Warn("speech dataset unavailable, keeping previous lines",
			zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.current.Store(d)
	s.logger.Debug("speech dataset loaded",
		zap.String("path", s.path), zap.Int("topics", len(d.Lines)))
	return nil
}

// Dataset returns the active dataset
func (s *Source) Dataset() *Dataset {
	return s.current.Load()
}

// Topics implements Provider
func (s *Source) Topics() map[string][]string {
	return s.Dataset().Topics()
}

// Personality implements Provider
func (s *Source) Personality(skin string) ([]string, bool) {
	return s.Dataset().Personality(skin)
}
