package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/services/auth"
	"github.com/frostgate/svscoord/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The clock starts on a Monday so role-day arithmetic is predictable.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	// Tests advance the clock days past the battle date; sessions must
	// outlive that.
	authCfg := auth.Config{SessionDuration: 30 * 24 * time.Hour}

	app := newWithDependencies(store, mockClock, authCfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
