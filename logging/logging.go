package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the debug log file used when none is given
const DefaultPath = "deskduck.log"

// New builds the process logger
// Logging is disabled unless debug is set; in debug mode JSON lines go to path
func New(debug bool, path string) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	// Never stderr, the terminal belongs to the renderer
	if path == "" {
		path = DefaultPath
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.Sampling = nil
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Tee returns logger also writing to extra cores
func Tee(logger *zap.Logger, extra ...zapcore.Core) *zap.Logger {
	cores := append([]zapcore.Core{logger.Core()}, extra...)
	return logger.WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return zapcore.NewTee(cores...)
	}))
}
