package factory

import (
	"time"

	"github.com/mcoot/gamerooms/internal/config"
	"github.com/mcoot/gamerooms/internal/dependencies/mocks"
	"github.com/mcoot/gamerooms/internal/storage/memory"
	"github.com/mcoot/gamerooms/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestConfig returns the settings test apps are built with
func TestConfig() config.Config {
	return config.Config{
		Port:            8080,
		SendBuffer:      64,
		PingPeriod:      time.Hour,
		WriteWait:       time.Second,
		ReadLimit:       64 * 1024,
		CensoredWords:   []string{"darn"},
		CensorChar:      "*",
		ShutdownTimeout: time.Second,
	}
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(TestConfig(), memory.New(), mockClock, mockRandom, testutil.NopLogger())
	if err != nil {
		// only reachable with a malformed censored word list
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
