package tetris

import (
	"errors"
	"fmt"
)

const (
	Width  = 10
	Height = 20
)

var ErrBoardSize = errors.New("board size mismatch")

// Board is the playfield. 20 rows x 10 columns.
// Columns are 0 > 9 left to right and represent the X axis.
// Rows are 0 > 19 top to bottom and represent the Y axis.
type Board struct {
	cells [Height][Width]bool
}

func NewBoard() *Board { return &Board{} }

// Blank returns a Height x Width grid with every cell empty.
func Blank() [][]bool {
	grid := make([][]bool, Height)
	for i := range grid {
		grid[i] = make([]bool, Width)
	}
	return grid
}

// Occupied reports whether the cell at (col, row) holds a tile.
// Reading outside the board panics: callers check bounds first.
func (b *Board) Occupied(col, row int) bool {
	mustInBounds(col, row)
	return b.cells[row][col]
}

func (b *Board) Set(col, row int, occupied bool) {
	mustInBounds(col, row)
	b.cells[row][col] = occupied
}

// Replace swaps the content of the board for grid. The board is left
// untouched if grid is not exactly Height rows of Width cells.
func (b *Board) Replace(grid [][]bool) error {
	if len(grid) != Height {
		return fmt.Errorf("%w: got %d rows, want %d", ErrBoardSize, len(grid), Height)
	}
	for i, row := range grid {
		if len(row) != Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardSize, i, len(row), Width)
		}
	}
	for i, row := range grid {
		copy(b.cells[i][:], row)
	}
	return nil
}

// Grid returns a copy of the board that's safe to modify.
func (b *Board) Grid() [][]bool {
	grid := Blank()
	for i := range b.cells {
		copy(grid[i], b.cells[i][:])
	}
	return grid
}

// FullRows returns the indices of the complete rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for i, row := range b.cells {
		if isFull(row) {
			rows = append(rows, i)
		}
	}
	return rows
}

// ClearRows removes the given rows and drops everything above them. Every
// remaining row moves down by the number of removed rows below it, counted
// on the board as it was before the call. It returns how many rows were removed.
func (b *Board) ClearRows(rows []int) int {
	remove := [Height]bool{}
	n := 0
	for _, r := range rows {
		mustInBounds(0, r)
		if !remove[r] {
			remove[r] = true
			n++
		}
	}
	if n == 0 {
		return 0
	}

	var next [Height][Width]bool
	dst := Height - 1
	for src := Height - 1; src >= 0; src-- {
		if remove[src] {
			continue
		}
		next[dst] = b.cells[src]
		dst--
	}
	b.cells = next
	return n
}

func (b *Board) count() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

func inBounds(p Point) bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

func mustInBounds(col, row int) {
	if !inBounds(Point{X: col, Y: row}) {
		panic(fmt.Sprintf("tetris: cell (%d, %d) is outside the %dx%d board", col, row, Width, Height))
	}
}

func isFull(row [Width]bool) bool {
	for _, c := range row {
		if !c {
			return false
		}
	}
	return true
}
