package tetris

import (
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

// MockTicker is a Ticker that only fires when Tick is called.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestGame creates a game at level 0 with a chosen active and next piece.
// The pieces after next come from a generator seeded with 0.
func NewTestGame(active, next Kind) *Game {
	g := &Game{
		board:     NewBoard(),
		next:      next,
		generator: NewGenerator(0),
		stats:     intmap.New[Kind, int](len(Kinds)),
	}
	g.active = NewPiece(active)
	g.spawn(g.active)
	return g
}
