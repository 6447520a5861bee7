package factory

import (
	"time"

	"github.com/bagrada/mythmeta/internal/dependencies/mocks"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/storage/memory"
	"github.com/bagrada/mythmeta/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom,
		account.DefaultConfig(), session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
