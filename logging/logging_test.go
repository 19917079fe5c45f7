package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewDisabled(t *testing.T) {
	logger, err := New(false, "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewDebugWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duck.log")
	logger, err := New(true, path)
	require.NoError(t, err)

	logger.Debug("hello", zap.String("k", "v"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNewDebugEmptyPathUsesDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := New(true, "")
	require.NoError(t, err)
	logger.Info("fallback")
	_ = logger.Sync()

	data, err := os.ReadFile(DefaultPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fallback"`)
}

func TestTee(t *testing.T) {
	base, baseLogs := observer.New(zapcore.DebugLevel)
	extra, extraLogs := observer.New(zapcore.WarnLevel)

	logger := Tee(zap.New(base), extra)
	logger.Info("info")
	logger.Warn("warn")

	assert.Equal(t, 2, baseLogs.Len())
	assert.Equal(t, 1, extraLogs.Len())
	assert.Equal(t, "warn", extraLogs.All()[0].Message)
}
