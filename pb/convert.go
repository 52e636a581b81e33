package pb

import (
	"fmt"

	"blockfall/scoreboard"
	"blockfall/tetris"
)

// FromSnapshot converts the state of a game for the wire.
func FromSnapshot(gameID string, s *tetris.Snapshot) *Snapshot {
	out := &Snapshot{
		GameID:        gameID,
		Board:         s.Board,
		Active:        fromPoints(s.Active),
		Ghost:         fromPoints(s.Ghost),
		ActiveKind:    s.ActiveKind.String(),
		NextKind:      s.Next.String(),
		Score:         s.Score,
		LinesCleared:  s.LinesCleared,
		Level:         s.Level,
		StartingLevel: s.StartingLevel,
		GameOver:      s.GameOver,
		Stats:         make(map[string]int, len(s.Stats)),
	}
	for k, n := range s.Stats {
		out.Stats[k.String()] = n
	}
	return out
}

// WithResult adds the result of a command to the snapshot.
func (s *Snapshot) WithResult(accepted bool, res tetris.TickResult) *Snapshot {
	s.Accepted = accepted
	s.Outcome = string(res.Outcome)
	s.Cleared = res.Cleared
	return s
}

// ToTetris converts a snapshot received from the server.
func (s *Snapshot) ToTetris() (*tetris.Snapshot, error) {
	if len(s.Board) != tetris.Height {
		return nil, fmt.Errorf("%w: got %d rows, want %d", tetris.ErrBoardSize, len(s.Board), tetris.Height)
	}
	for i, row := range s.Board {
		if len(row) != tetris.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", tetris.ErrBoardSize, i, len(row), tetris.Width)
		}
	}
	active, err := toPoints(s.Active)
	if err != nil {
		return nil, fmt.Errorf("active piece: %w", err)
	}
	ghost, err := toPoints(s.Ghost)
	if err != nil {
		return nil, fmt.Errorf("ghost piece: %w", err)
	}
	activeKind, err := tetris.ParseKind(s.ActiveKind)
	if err != nil {
		return nil, err
	}
	next, err := tetris.ParseKind(s.NextKind)
	if err != nil {
		return nil, err
	}
	stats := make(map[tetris.Kind]int, len(s.Stats))
	for name, n := range s.Stats {
		k, err := tetris.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		stats[k] = n
	}
	return &tetris.Snapshot{
		Board:         s.Board,
		Active:        active,
		Ghost:         ghost,
		ActiveKind:    activeKind,
		Next:          next,
		Score:         s.Score,
		LinesCleared:  s.LinesCleared,
		Level:         s.Level,
		StartingLevel: s.StartingLevel,
		GameOver:      s.GameOver,
		Stats:         stats,
	}, nil
}

func FromEntry(e scoreboard.Entry) ScoreEntry {
	return ScoreEntry{Name: e.Name, Score: e.Score, LinesCleared: e.LinesCleared}
}

func (e ScoreEntry) ToEntry() scoreboard.Entry {
	return scoreboard.Entry{Name: e.Name, Score: e.Score, LinesCleared: e.LinesCleared}
}

func fromPoints(tiles [4]tetris.Point) []Point {
	points := make([]Point, len(tiles))
	for i, t := range tiles {
		points[i] = Point{X: t.X, Y: t.Y}
	}
	return points
}

func toPoints(points []Point) ([4]tetris.Point, error) {
	var tiles [4]tetris.Point
	if len(points) != len(tiles) {
		return tiles, fmt.Errorf("got %d tiles, want %d", len(points), len(tiles))
	}
	for i, p := range points {
		tiles[i] = tetris.Point{X: p.X, Y: p.Y}
	}
	return tiles, nil
}
