package bintest

import (
	"log/slog"
	"os"
	"sync/atomic"

	"bintest/pkg/lib"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(lib.NewLogger(os.Getenv("BINTEST_LOG"), os.Getenv("BINTEST_LOG_FORMAT"), os.Stderr))
}

// SetLogger replaces the logger used for build progress. A nil logger is
// ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func currentLogger() *slog.Logger { return logger.Load() }
