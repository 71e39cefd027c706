package factory

import (
	"time"

	"github.com/mcoot/nrowgame/internal/dependencies/mocks"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/bot"
	"github.com/mcoot/nrowgame/internal/storage/memory"
	"github.com/mcoot/nrowgame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App backed by memory storage with mocked clock and
// random source. Bots use the greedy strategy.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, bot.NewGreedyStrategy(mockRandom), mockClock, mockRandom, testutil.NopLogger(), model.DefaultMaxBoardSide)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
