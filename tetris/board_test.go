package tetris

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fill marks the given columns of row as occupied.
func fill(grid [][]bool, row int, cols ...int) {
	for _, c := range cols {
		grid[row][c] = true
	}
}

func span(from, to int) []int {
	var s []int
	for i := from; i <= to; i++ {
		s = append(s, i)
	}
	return s
}

func TestBlank(t *testing.T) {
	grid := Blank()
	if len(grid) != Height {
		t.Fatalf("wanted %d rows, got %d", Height, len(grid))
	}
	for i, row := range grid {
		if len(row) != Width {
			t.Errorf("wanted row %d to have %d cells, got %d", i, Width, len(row))
		}
		for _, c := range row {
			if c {
				t.Errorf("wanted row %d to be empty", i)
			}
		}
	}
}

func TestFullRows(t *testing.T) {
	b := NewBoard()
	grid := Blank()
	fill(grid, 19, span(0, 9)...)
	fill(grid, 18, span(0, 8)...)
	fill(grid, 12, span(0, 9)...)
	if err := b.Replace(grid); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{12, 19}, b.FullRows()); diff != "" {
		t.Errorf("FullRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestClearRows(t *testing.T) {
	// .	0 1 2 3 4 5 6 7 8 9
	// 16	. X . . . . . . . .
	// 17	X X X X X X X X X X
	// 18	X . . . . . . . . .
	// 19	X X X X X X X X X X
	before := func() [][]bool {
		grid := Blank()
		fill(grid, 16, 1)
		fill(grid, 17, span(0, 9)...)
		fill(grid, 18, 0)
		fill(grid, 19, span(0, 9)...)
		return grid
	}

	tests := []struct {
		name    string
		rows    []int
		wantN   int
		want    func() [][]bool
		wantErr bool
	}{
		{
			name:  "nothing to clear",
			want:  before,
			wantN: 0,
		},
		{
			name:  "non contiguous rows",
			rows:  []int{17, 19},
			wantN: 2,
			want: func() [][]bool {
				grid := Blank()
				fill(grid, 18, 1)
				fill(grid, 19, 0)
				return grid
			},
		},
		{
			name:  "duplicated rows count once",
			rows:  []int{19, 19},
			wantN: 1,
			want: func() [][]bool {
				grid := Blank()
				fill(grid, 17, 1)
				fill(grid, 18, span(0, 9)...)
				fill(grid, 19, 0)
				return grid
			},
		},
		{
			name:  "a row that isn't full is cleared too",
			rows:  []int{16},
			wantN: 1,
			want: func() [][]bool {
				grid := Blank()
				fill(grid, 17, span(0, 9)...)
				fill(grid, 18, 0)
				fill(grid, 19, span(0, 9)...)
				return grid
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			if err := b.Replace(before()); err != nil {
				t.Fatal(err)
			}
			if n := b.ClearRows(tt.rows); n != tt.wantN {
				t.Errorf("wanted %d rows cleared, got %d", tt.wantN, n)
			}
			if diff := cmp.Diff(tt.want(), b.Grid()); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClearRowsOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("wanted ClearRows to panic")
		}
	}()
	NewBoard().ClearRows([]int{Height})
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		grid func() [][]bool
	}{
		{
			name: "missing row",
			grid: func() [][]bool { return Blank()[1:] },
		},
		{
			name: "extra row",
			grid: func() [][]bool { return append(Blank(), make([]bool, Width)) },
		},
		{
			name: "short row",
			grid: func() [][]bool {
				grid := Blank()
				grid[7] = make([]bool, Width-1)
				return grid
			},
		},
		{
			name: "nil",
			grid: func() [][]bool { return nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			b.Set(3, 19, true)
			want := b.Grid()

			err := b.Replace(tt.grid())
			if !errors.Is(err, ErrBoardSize) {
				t.Errorf("wanted ErrBoardSize, got %v", err)
			}
			if diff := cmp.Diff(want, b.Grid()); diff != "" {
				t.Errorf("board changed on failure (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGridIsACopy(t *testing.T) {
	b := NewBoard()
	grid := b.Grid()
	grid[0][0] = true
	if b.Occupied(0, 0) {
		t.Error("wanted changes to the grid not to reach the board")
	}
}

func TestOccupiedOutOfBoundsPanics(t *testing.T) {
	for _, p := range []Point{{-1, 0}, {0, -1}, {Width, 0}, {0, Height}} {
		t.Run(p.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("wanted Occupied(%d, %d) to panic", p.X, p.Y)
				}
			}()
			NewBoard().Occupied(p.X, p.Y)
		})
	}
}
