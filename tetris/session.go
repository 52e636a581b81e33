package tetris

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	Tick      Action = "tick"   // Advances the game as if the timer fired.
	MoveLeft  Action = "left"   // Moves the piece one step to the left.
	MoveRight Action = "right"  // Moves the piece one step to the right.
	MoveDown  Action = "down"   // Moves the piece one step down.
	Rotate    Action = "rotate" // Rotates the piece clockwise.
	DropDown  Action = "drop"   // Drops the piece down the stack and locks it.
)

// ParseAction validates s as an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case Tick, MoveLeft, MoveRight, MoveDown, Rotate, DropDown:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Apply runs a on the game. moved reports whether the piece moved, res is
// the result of the Update that Tick and DropDown end with.
func (g *Game) Apply(a Action) (moved bool, res TickResult) {
	switch a {
	case MoveLeft:
		return g.MoveLeft(), res
	case MoveRight:
		return g.MoveRight(), res
	case MoveDown:
		return g.MoveDown(), res
	case Rotate:
		return g.Rotate(), res
	case DropDown:
		if g.gameOver {
			return false, g.Update()
		}
		for g.MoveDown() {
			moved = true
		}
		return moved, g.Update()
	case Tick:
		res = g.Update()
		return res.Outcome == Descended, res
	}
	return false, res
}

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

// NewTicker returns a Ticker backed by a time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Session drives a Game: the ticker makes the piece fall and the actions
// sent by the player are applied in between. Every change is published
// as a Snapshot on the update channel.
//
// The update channel is closed once the session ends, either because the
// game is over (after its last snapshot) or because Stop was called.
type Session struct {
	mu       sync.Mutex
	game     *Game
	ticker   Ticker
	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan struct{}
	stopOnce sync.Once
}

func NewSession(g *Game) *Session {
	return NewConfigurableSession(g, NewTicker(Interval(g.Level())))
}

func NewConfigurableSession(g *Game, ticker Ticker) *Session {
	return &Session{
		game:     g,
		ticker:   ticker,
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the session in the background. The first update is the
// initial state of the game.
func (s *Session) Start() {
	go s.listen()
}

// Stop ends the session. It is safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.doneCh)
	})
}

// Action sends a to the session. It doesn't block once the session has ended.
func (s *Session) Action(a Action) {
	select {
	case s.actionCh <- a:
	case <-s.doneCh:
	}
}

func (s *Session) GetUpdate() <-chan *Snapshot { return s.updateCh }

// Read returns the current state of the game.
func (s *Session) Read() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) listen() {
	defer close(s.updateCh)
	defer s.Stop()

	s.ticker.Reset(s.interval())
	if !s.publish() {
		return
	}
	for {
		var res TickResult
		select {
		case <-s.ticker.C():
			s.mu.Lock()
			res = s.game.Update()
			s.mu.Unlock()
		case a := <-s.actionCh:
			s.mu.Lock()
			_, res = s.game.Apply(a)
			s.mu.Unlock()
		case <-s.doneCh:
			return
		}
		if res.Outcome == Locked {
			// the level may have changed with the cleared lines.
			s.ticker.Reset(s.interval())
		}
		if !s.publish() || res.Outcome == ToppedOut {
			return
		}
	}
}

// publish sends the current snapshot. It returns false if the session was
// stopped while waiting for the reader.
func (s *Session) publish() bool {
	snap := s.Read()
	select {
	case s.updateCh <- snap:
		return true
	case <-s.doneCh:
		return false
	}
}

func (s *Session) interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Interval(s.game.Level())
}
