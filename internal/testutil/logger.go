package testutil

import (
	"io"
	"log/slog"
	"testing"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// VerboseLogger returns a text logger at debug level when the test run is
// verbose, and a nop logger otherwise.
func VerboseLogger(t *testing.T) *slog.Logger {
	t.Helper()
	if !testing.Verbose() {
		return NopLogger()
	}
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
