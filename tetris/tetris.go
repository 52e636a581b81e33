package tetris

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
)

var (
	ErrIllegalStartingLevel = errors.New("illegal starting level")
	ErrNegativeLines        = errors.New("negative lines cleared")
	ErrActiveOverlap        = errors.New("grid overlaps the active piece")
)

// Outcome tells the caller what a call to Update did.
type Outcome string

const (
	NoOp      Outcome = "noop"      // The game is over, nothing happened.
	Descended Outcome = "descended" // The active piece moved one row down.
	Locked    Outcome = "locked"    // The active piece landed and the next piece spawned.
	ToppedOut Outcome = "gameover"  // The active piece landed and the next piece couldn't spawn.
)

// TickResult is returned by Update.
type TickResult struct {
	Outcome Outcome
	// Cleared are the indices of the rows removed when the piece locked,
	// as they were numbered before the removal.
	Cleared []int
	Points  int
}

// Game is a single play session: the board, the active and next pieces and
// the score. It is not safe for concurrent use, see Session.
type Game struct {
	board         *Board
	active        *Piece
	next          Kind
	generator     *Generator
	score         int
	linesCleared  int
	startingLevel int
	gameOver      bool
	stats         *intmap.Map[Kind, int]
}

// New starts a game. Pieces are picked by a generator seeded with seed.
func New(seed uint64, startingLevel int) (*Game, error) {
	if startingLevel < MinStartingLevel || startingLevel > MaxStartingLevel {
		return nil, fmt.Errorf("%w: %d is not in [%d, %d]", ErrIllegalStartingLevel, startingLevel, MinStartingLevel, MaxStartingLevel)
	}
	gen := NewGenerator(seed)
	g := &Game{
		board:         NewBoard(),
		generator:     gen,
		startingLevel: startingLevel,
		stats:         intmap.New[Kind, int](len(Kinds)),
	}
	g.active = NewPiece(gen.Next())
	g.next = gen.Next()
	g.spawn(g.active)
	return g, nil
}

// Update advances the game by one tick: the active piece moves down one row,
// or if it can't, it locks in place, full rows are cleared and the next
// piece spawns at the top of the board.
// Once the game is over Update does nothing.
func (g *Game) Update() TickResult {
	if g.gameOver {
		return TickResult{Outcome: NoOp}
	}
	if g.active.MoveDown(g.board) {
		return TickResult{Outcome: Descended}
	}

	rows := g.board.FullRows()
	n := g.board.ClearRows(rows)
	points := Points(n)
	g.linesCleared += n
	g.score += points
	res := TickResult{Outcome: Locked, Cleared: rows, Points: points}

	g.active = NewPiece(g.next)
	if !g.spawn(g.active) {
		// the overlapping piece stays on the board as the last frame.
		g.gameOver = true
		res.Outcome = ToppedOut
		return res
	}
	g.next = g.generator.Next()
	return res
}

// MoveLeft, MoveRight, MoveDown and Rotate forward to the active piece.
// They report whether the piece moved and always fail once the game is over.
func (g *Game) MoveLeft() bool  { return !g.gameOver && g.active.MoveLeft(g.board) }
func (g *Game) MoveRight() bool { return !g.gameOver && g.active.MoveRight(g.board) }
func (g *Game) MoveDown() bool  { return !g.gameOver && g.active.MoveDown(g.board) }
func (g *Game) Rotate() bool    { return !g.gameOver && g.active.Rotate(g.board) }

func (g *Game) Grid() [][]bool        { return g.board.Grid() }
func (g *Game) ActiveTiles() [4]Point { return g.active.Tiles() }
func (g *Game) GhostTiles() [4]Point  { return g.active.HardDropPreview(g.board) }
func (g *Game) ActiveKind() Kind      { return g.active.Kind() }
func (g *Game) NextKind() Kind        { return g.next }
func (g *Game) Score() int            { return g.score }
func (g *Game) LinesCleared() int     { return g.linesCleared }
func (g *Game) StartingLevel() int    { return g.startingLevel }
func (g *Game) Level() int            { return Level(g.startingLevel, g.linesCleared) }
func (g *Game) IsGameOver() bool      { return g.gameOver }

// Occupied reports whether the cell holds a locked tile or a tile of the active piece.
func (g *Game) Occupied(col, row int) bool { return g.board.Occupied(col, row) }

// Snapshot is a point in time copy of a game, safe to share between goroutines.
type Snapshot struct {
	// Board includes the tiles of the active piece.
	Board         [][]bool
	Active        [4]Point
	Ghost         [4]Point
	ActiveKind    Kind
	Next          Kind
	Score         int
	LinesCleared  int
	Level         int
	StartingLevel int
	GameOver      bool
	Stats         map[Kind]int
}

// Snapshot copies the current state of the game.
func (g *Game) Snapshot() *Snapshot {
	return &Snapshot{
		Board:         g.Grid(),
		Active:        g.ActiveTiles(),
		Ghost:         g.GhostTiles(),
		ActiveKind:    g.ActiveKind(),
		Next:          g.next,
		Score:         g.score,
		LinesCleared:  g.linesCleared,
		Level:         g.Level(),
		StartingLevel: g.startingLevel,
		GameOver:      g.gameOver,
		Stats:         g.Stats(),
	}
}

// Stats returns how many pieces of each kind have spawned so far.
func (g *Game) Stats() map[Kind]int {
	stats := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		n, _ := g.stats.Get(k)
		stats[k] = n
	}
	return stats
}

// SetBoard replaces the board. The grid must be Height rows of Width cells,
// otherwise ErrBoardSize is returned. The grid holds locked tiles only: the
// active piece is drawn on top of it, and ErrActiveOverlap is returned if
// any of its cells is already set. On error the board is left as it was.
func (g *Game) SetBoard(grid [][]bool) error {
	b := NewBoard()
	if err := b.Replace(grid); err != nil {
		return err
	}
	if g.active.place(b) {
		return fmt.Errorf("%w: tiles %v", ErrActiveOverlap, g.active.Tiles())
	}
	g.board = b
	return nil
}

// SetLinesCleared overrides the number of cleared lines, and therefore the level.
func (g *Game) SetLinesCleared(lines int) error {
	if lines < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLines, lines)
	}
	g.linesCleared = lines
	return nil
}

// spawn puts p on the board. It returns false if p overlaps locked tiles.
func (g *Game) spawn(p *Piece) bool {
	n, _ := g.stats.Get(p.Kind())
	g.stats.Put(p.Kind(), n+1)
	return !p.place(g.board)
}
