package tetris_test

import (
	"errors"
	"testing"
	"time"

	"blockfall/tetris"
)

func receive(t *testing.T, s *tetris.Session) (*tetris.Snapshot, bool) {
	t.Helper()
	select {
	case snap, ok := <-s.GetUpdate():
		return snap, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
		return nil, false
	}
}

func TestSessionUpdates(t *testing.T) {
	ticker := tetris.NewMockTicker()
	s := tetris.NewConfigurableSession(tetris.NewTestGame(tetris.T, tetris.O), ticker)
	s.Start()

	first, ok := receive(t, s)
	if !ok {
		t.Fatal("wanted the initial state")
	}
	if !ticker.IsReset() {
		t.Error("wanted the ticker to be reset on start")
	}

	ticker.Tick()
	next, _ := receive(t, s)
	for i := range next.Active {
		if next.Active[i].Y != first.Active[i].Y+1 {
			t.Fatalf("wanted the piece to fall one row, got %v from %v", next.Active, first.Active)
		}
	}

	s.Action(tetris.MoveLeft)
	moved, _ := receive(t, s)
	if moved.Active[0].X != next.Active[0].X-1 {
		t.Errorf("wanted the piece to move left, got %v", moved.Active)
	}

	s.Action(tetris.DropDown)
	dropped, _ := receive(t, s)
	if dropped.ActiveKind != tetris.O {
		t.Errorf("wanted O to be active after a drop, got %v", dropped.ActiveKind)
	}
	if dropped.Stats[tetris.T] != 1 || dropped.Stats[tetris.O] != 1 {
		t.Errorf("wanted one T and one O spawned, got %v", dropped.Stats)
	}
	if read := s.Read(); read.ActiveKind != tetris.O {
		t.Errorf("wanted Read to match the last update, got %v", read.ActiveKind)
	}

	s.Stop()
	if _, ok := receive(t, s); ok {
		t.Error("wanted the update channel to be closed")
	}
	if !ticker.IsStop() {
		t.Error("wanted the ticker to be stopped")
	}
	// doesn't block once the session has ended.
	s.Action(tetris.MoveRight)
	s.Stop()
}

func TestSessionGameOver(t *testing.T) {
	g := tetris.NewTestGame(tetris.O, tetris.T)
	grid := tetris.Blank()
	for row := 2; row < tetris.Height; row++ {
		for col := range tetris.Width - 1 {
			grid[row][col] = true
		}
	}
	if err := g.SetBoard(grid); err != nil {
		t.Fatal(err)
	}
	ticker := tetris.NewMockTicker()
	s := tetris.NewConfigurableSession(g, ticker)
	s.Start()
	receive(t, s)

	ticker.Tick()
	last, ok := receive(t, s)
	if !ok || !last.GameOver {
		t.Fatal("wanted the game over snapshot")
	}
	if _, ok := receive(t, s); ok {
		t.Error("wanted the update channel to be closed after game over")
	}
	s.Action(tetris.Rotate)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		action      tetris.Action
		wantMoved   bool
		wantOutcome tetris.Outcome
	}{
		{name: "left", action: tetris.MoveLeft, wantMoved: true},
		{name: "rotate at the ceiling", action: tetris.Rotate},
		{name: "tick", action: tetris.Tick, wantMoved: true, wantOutcome: tetris.Descended},
		{name: "drop", action: tetris.DropDown, wantMoved: true, wantOutcome: tetris.Locked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := tetris.NewTestGame(tetris.T, tetris.O)
			moved, res := g.Apply(tt.action)
			if moved != tt.wantMoved {
				t.Errorf("wanted moved to be %t, got %t", tt.wantMoved, moved)
			}
			if res.Outcome != tt.wantOutcome {
				t.Errorf("wanted outcome %q, got %q", tt.wantOutcome, res.Outcome)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"tick", "left", "right", "down", "rotate", "drop"} {
		if _, err := tetris.ParseAction(s); err != nil {
			t.Errorf("wanted %q to be valid, got %v", s, err)
		}
	}
	if _, err := tetris.ParseAction("hold"); !errors.Is(err, tetris.ErrUnknownAction) {
		t.Errorf("wanted ErrUnknownAction, got %v", err)
	}
}
