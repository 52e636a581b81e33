package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapes(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()
			size := k.BoxSize()
			for o := range 4 {
				seen := map[Point]bool{}
				for _, p := range k.Offsets(o) {
					if p.X < 0 || p.X >= size || p.Y < 0 || p.Y >= size {
						t.Errorf("orientation %d: offset %v is outside the %dx%d box", o, p, size, size)
					}
					seen[p] = true
				}
				if len(seen) != 4 {
					t.Errorf("orientation %d: wanted 4 distinct tiles, got %d", o, len(seen))
				}
			}
			for _, p := range NewPiece(k).Tiles() {
				if !inBounds(p) || p.Y > 1 {
					t.Errorf("wanted spawn tile %v within rows 0-1 of the board", p)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("wanted %v, got %v", k, got)
		}
	}
	if _, err := ParseKind("X"); err == nil {
		t.Error("wanted an error for an unknown kind")
	}
}

func TestMoves(t *testing.T) {
	// Initial state of the test, T at its spawn location:
	//
	// .	0 1 2 3 4 5 6 7 8 9
	// 0	. . . . O O O . . .
	// 1	. . . . . O . . . .
	tests := []struct {
		name        string
		action      func(p *Piece, b *Board) bool
		block       []Point
		wantMoved   bool
		wantTiles   [4]Point
		wantOrient  int
		prepareDown bool
	}{
		{
			name:      "move left unblocked",
			action:    (*Piece).MoveLeft,
			wantMoved: true,
			wantTiles: [4]Point{{3, 0}, {4, 0}, {5, 0}, {4, 1}},
		},
		{
			name:      "move left blocked",
			action:    (*Piece).MoveLeft,
			block:     []Point{{3, 0}},
			wantTiles: [4]Point{{4, 0}, {5, 0}, {6, 0}, {5, 1}},
		},
		{
			name:      "move right unblocked",
			action:    (*Piece).MoveRight,
			wantMoved: true,
			wantTiles: [4]Point{{5, 0}, {6, 0}, {7, 0}, {6, 1}},
		},
		{
			name:      "move right blocked",
			action:    (*Piece).MoveRight,
			block:     []Point{{7, 0}},
			wantTiles: [4]Point{{4, 0}, {5, 0}, {6, 0}, {5, 1}},
		},
		{
			name:      "move down unblocked",
			action:    (*Piece).MoveDown,
			wantMoved: true,
			wantTiles: [4]Point{{4, 1}, {5, 1}, {6, 1}, {5, 2}},
		},
		{
			name:      "move down blocked",
			action:    (*Piece).MoveDown,
			block:     []Point{{5, 2}},
			wantTiles: [4]Point{{4, 0}, {5, 0}, {6, 0}, {5, 1}},
		},
		{
			name:      "rotate blocked by the ceiling",
			action:    (*Piece).Rotate,
			wantTiles: [4]Point{{4, 0}, {5, 0}, {6, 0}, {5, 1}},
		},
		{
			name:        "rotate unblocked",
			action:      (*Piece).Rotate,
			prepareDown: true,
			wantMoved:   true,
			wantOrient:  1,
			wantTiles:   [4]Point{{5, 0}, {4, 1}, {5, 1}, {5, 2}},
		},
		{
			name:        "rotate blocked by a tile",
			action:      (*Piece).Rotate,
			prepareDown: true,
			block:       []Point{{5, 0}},
			wantTiles:   [4]Point{{4, 1}, {5, 1}, {6, 1}, {5, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			p := NewPiece(T)
			p.place(b)
			if tt.prepareDown && !p.MoveDown(b) {
				t.Fatal("wanted the piece to move down")
			}
			for _, c := range tt.block {
				b.Set(c.X, c.Y, true)
			}

			if moved := tt.action(p, b); moved != tt.wantMoved {
				t.Errorf("wanted moved to be %t, got %t", tt.wantMoved, moved)
			}
			if diff := cmp.Diff(tt.wantTiles, p.Tiles()); diff != "" {
				t.Errorf("tiles mismatch (-want +got):\n%s", diff)
			}
			if p.Orientation() != tt.wantOrient {
				t.Errorf("wanted orientation %d, got %d", tt.wantOrient, p.Orientation())
			}
			for _, c := range p.Tiles() {
				if !b.Occupied(c.X, c.Y) {
					t.Errorf("wanted tile %v to be set on the board", c)
				}
			}
			if got, want := b.count(), 4+len(tt.block); got != want {
				t.Errorf("wanted %d occupied cells, got %d", want, got)
			}
		})
	}
}

func TestBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		move      func(p *Piece, b *Board) bool
		wantMoves int
		wantTiles [4]Point
	}{
		{
			name:      "left wall",
			move:      (*Piece).MoveLeft,
			wantMoves: 4,
			wantTiles: [4]Point{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
		},
		{
			name:      "right wall",
			move:      (*Piece).MoveRight,
			wantMoves: 3,
			wantTiles: [4]Point{{7, 0}, {8, 0}, {9, 0}, {8, 1}},
		},
		{
			name:      "floor",
			move:      (*Piece).MoveDown,
			wantMoves: 18,
			wantTiles: [4]Point{{4, 18}, {5, 18}, {6, 18}, {5, 19}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			p := NewPiece(T)
			p.place(b)

			moves := 0
			for tt.move(p, b) {
				moves++
			}
			if moves != tt.wantMoves {
				t.Errorf("wanted %d moves, got %d", tt.wantMoves, moves)
			}
			if diff := cmp.Diff(tt.wantTiles, p.Tiles()); diff != "" {
				t.Errorf("tiles mismatch (-want +got):\n%s", diff)
			}
			if tt.move(p, b) {
				t.Error("wanted the piece to stay against the boundary")
			}
			if b.count() != 4 {
				t.Errorf("wanted 4 occupied cells, got %d", b.count())
			}
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			p := NewPiece(k)
			p.place(b)
			p.MoveDown(b)
			p.MoveDown(b)
			want := p.Tiles()

			for i := range 4 {
				if !p.Rotate(b) {
					t.Fatalf("rotation %d failed", i+1)
				}
			}
			if diff := cmp.Diff(want, p.Tiles()); diff != "" {
				t.Errorf("tiles mismatch after 4 rotations (-want +got):\n%s", diff)
			}
			if p.Orientation() != 0 {
				t.Errorf("wanted orientation 0, got %d", p.Orientation())
			}
			if b.count() != 4 {
				t.Errorf("wanted 4 occupied cells, got %d", b.count())
			}
		})
	}
}

func TestHardDropPreview(t *testing.T) {
	tests := []struct {
		name  string
		block []Point
		want  [4]Point
	}{
		{
			name: "empty board lands on the floor",
			want: [4]Point{{4, 18}, {5, 18}, {6, 18}, {5, 19}},
		},
		{
			// .	0 1 2 3 4 5 6 7 8 9
			// 8	. . . . O O O . . .
			// 9	. . . . . O . . . .
			// 10	. . . . . X . . . .
			name:  "lands on the stack",
			block: []Point{{5, 10}},
			want:  [4]Point{{4, 8}, {5, 8}, {6, 8}, {5, 9}},
		},
		{
			name:  "can't move at all",
			block: []Point{{5, 2}},
			want:  [4]Point{{4, 0}, {5, 0}, {6, 0}, {5, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBoard()
			p := NewPiece(T)
			p.place(b)
			for _, c := range tt.block {
				b.Set(c.X, c.Y, true)
			}
			tiles := p.Tiles()
			grid := b.Grid()

			for range 3 {
				if diff := cmp.Diff(tt.want, p.HardDropPreview(b)); diff != "" {
					t.Errorf("preview mismatch (-want +got):\n%s", diff)
				}
			}
			if diff := cmp.Diff(tiles, p.Tiles()); diff != "" {
				t.Errorf("preview moved the piece (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(grid, b.Grid()); diff != "" {
				t.Errorf("preview changed the board (-want +got):\n%s", diff)
			}
		})
	}
}
