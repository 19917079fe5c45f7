package engine

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Finalizer restores a host surface, satisfied by tcell.Screen
type Finalizer interface {
	Fini()
}

var (
	crashMu     sync.Mutex
	crashScreen Finalizer
	crashLogger *zap.Logger
)

// RegisterCrashHandler sets the screen restored and the logger flushed on panic
// Either may be nil
func RegisterCrashHandler(screen Finalizer, logger *zap.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashScreen = screen
	crashLogger = logger
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	screen, logger := crashScreen, crashLogger
	crashMu.Unlock()

	if screen != nil {
		screen.Fini()
	}

	stack := debug.Stack()
	if logger != nil {
		logger.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
		_ = logger.Sync()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
