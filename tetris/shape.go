// Package tetris contains the logic of the game.
// Pieces rotate following the Sega rotation system:
// https://strategywiki.org/wiki/Tetris/Rotation_systems
package tetris

import "fmt"

// Kind is one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every shape in generator order.
var Kinds = [...]Kind{I, J, L, O, S, T, Z}

func (k Kind) String() string {
	if int(k) < len(Kinds) {
		return "IJLOSTZ"[k : k+1]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind named by s ("I", "J", ...).
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Point is a cell coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

type shape struct {
	// orientations maps orientation 0..3 to the tile offsets relative
	// to the top-left corner of the rotation box.
	orientations [4][4]Point
	size         int
	// spawn is added to the board's approximate center column at row 0.
	spawn Point
}

/*
.	I (box 4)			J (box 3)		L (box 3)		T (box 3)

.	o0	o1			o0	o1		o0	o1		o0	o1
.	. . . .	. . X .		. . .	. X .		. . .	X X .		. . .	. X .
.	X X X X	. . X .		X X X	. X .		X X X	. X .		X X X	X X .
.	. . . .	. . X .		. . X	X X .		X . .	. X .		. X .	. X .
.	. . . .	. . X .
*/
var shapes = [...]shape{
	I: {
		orientations: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		},
		size:  4,
		spawn: Point{-1, -1},
	},
	J: {
		orientations: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
			{{0, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		},
		size:  3,
		spawn: Point{0, -1},
	},
	L: {
		orientations: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
			{{2, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		},
		size:  3,
		spawn: Point{0, -1},
	},
	O: {
		orientations: [4][4]Point{
			{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		},
		size:  2,
		spawn: Point{0, 0},
	},
	S: {
		orientations: [4][4]Point{
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
		size:  3,
		spawn: Point{0, -1},
	},
	T: {
		orientations: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
			{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		},
		size:  3,
		spawn: Point{0, -1},
	},
	Z: {
		orientations: [4][4]Point{
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		},
		size:  3,
		spawn: Point{0, -1},
	},
}

// Offsets returns the tile offsets of k in the given orientation,
// relative to the rotation reference point.
func (k Kind) Offsets(orientation int) [4]Point {
	return shapes[k].orientations[orientation&3]
}

// BoxSize is the side of the square k rotates in.
func (k Kind) BoxSize() int { return shapes[k].size }

// SpawnPoint is the rotation reference point a fresh piece of kind k starts at.
func (k Kind) SpawnPoint() Point {
	return Point{X: (Width - 1) / 2, Y: 0}.Add(shapes[k].spawn)
}
