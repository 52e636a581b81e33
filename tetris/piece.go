package tetris

// Piece is a falling tetromino. It doesn't hold on to the board it is placed
// on: every move receives the board to test for collisions and to commit to.
type Piece struct {
	kind        Kind
	orientation int
	// ref is the top-left corner of the rotation box.
	ref Point
}

// NewPiece returns a piece of kind k at its spawn location and default
// orientation. The piece is not placed on any board.
func NewPiece(k Kind) *Piece {
	return &Piece{kind: k, ref: k.SpawnPoint()}
}

func (p *Piece) Kind() Kind       { return p.kind }
func (p *Piece) Orientation() int { return p.orientation }

// Tiles returns the board coordinates of the four tiles.
func (p *Piece) Tiles() [4]Point {
	return tilesAt(p.kind, p.orientation, p.ref)
}

// MoveLeft moves the piece one column left if there is space.
func (p *Piece) MoveLeft(b *Board) bool {
	return p.move(b, p.orientation, p.ref.Add(Point{X: -1}))
}

// MoveRight moves the piece one column right if there is space.
func (p *Piece) MoveRight(b *Board) bool {
	return p.move(b, p.orientation, p.ref.Add(Point{X: 1}))
}

// MoveDown moves the piece one row down if there is space.
func (p *Piece) MoveDown(b *Board) bool {
	return p.move(b, p.orientation, p.ref.Add(Point{Y: 1}))
}

// Rotate turns the piece 90 degrees clockwise in place. There are no wall
// kicks: if the rotated piece doesn't fit, nothing changes.
func (p *Piece) Rotate(b *Board) bool {
	return p.move(b, (p.orientation+1)%4, p.ref)
}

// HardDropPreview returns where the piece would land if dropped straight
// down. Neither the piece nor the board are modified.
func (p *Piece) HardDropPreview(b *Board) [4]Point {
	current := p.Tiles()
	landing := current
	for {
		next := landing
		for i := range next {
			next[i].Y++
		}
		for _, t := range next {
			if !inBounds(t) || (b.Occupied(t.X, t.Y) && !contains(current, t)) {
				return landing
			}
		}
		landing = next
	}
}

// move tries to take the piece to the given orientation and reference point.
// On success the board is updated: the old tiles are cleared and the new
// ones are set.
func (p *Piece) move(b *Board, orientation int, ref Point) bool {
	before := p.Tiles()
	after := tilesAt(p.kind, orientation, ref)
	if cannotMove(b, before, after) {
		return false
	}
	for _, t := range before {
		b.Set(t.X, t.Y, false)
	}
	for _, t := range after {
		b.Set(t.X, t.Y, true)
	}
	p.orientation = orientation
	p.ref = ref
	return true
}

// place sets the piece tiles on the board and reports whether any of them
// was already occupied.
func (p *Piece) place(b *Board) (overlap bool) {
	for _, t := range p.Tiles() {
		if b.Occupied(t.X, t.Y) {
			overlap = true
		}
		b.Set(t.X, t.Y, true)
	}
	return overlap
}

// cannotMove checks every tile the piece would newly cover against the
// board bounds and the locked tiles. Cells the piece already covers are free.
func cannotMove(b *Board, before, after [4]Point) bool {
	for _, t := range after {
		if contains(before, t) {
			continue
		}
		if !inBounds(t) || b.Occupied(t.X, t.Y) {
			return true
		}
	}
	return false
}

func tilesAt(k Kind, orientation int, ref Point) [4]Point {
	tiles := k.Offsets(orientation)
	for i := range tiles {
		tiles[i] = tiles[i].Add(ref)
	}
	return tiles
}

func contains(tiles [4]Point, p Point) bool {
	for _, t := range tiles {
		if t == p {
			return true
		}
	}
	return false
}
