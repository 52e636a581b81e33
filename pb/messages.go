package pb

import (
	"fmt"
	"slices"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// wire is implemented by every message of the protocol.
type wire interface {
	desc() protoreflect.MessageDescriptor
	// fill copies the struct into m.
	fill(m protoreflect.Message)
	// load copies m into the struct.
	load(m protoreflect.Message)
}

func encode(w wire) *dynamicpb.Message {
	m := dynamicpb.NewMessage(w.desc())
	w.fill(m)
	return m
}

// Marshal returns the protobuf encoding of w.
func Marshal(w wire) ([]byte, error) {
	return proto.Marshal(encode(w))
}

// Unmarshal parses b into w.
func Unmarshal(b []byte, w wire) error {
	m := dynamicpb.NewMessage(w.desc())
	if err := proto.Unmarshal(b, m); err != nil {
		return err
	}
	w.load(m)
	return nil
}

type Point struct {
	X, Y int
}

func (*Point) desc() protoreflect.MessageDescriptor { return pointDesc }

func (p *Point) fill(m protoreflect.Message) {
	setInt32(m, "x", p.X)
	setInt32(m, "y", p.Y)
}

func (p *Point) load(m protoreflect.Message) {
	p.X = getInt(m, "x")
	p.Y = getInt(m, "y")
}

type Snapshot struct {
	GameID string
	// Board is top row first and includes the active piece.
	Board         [][]bool
	Active        []Point
	Ghost         []Point
	ActiveKind    string
	NextKind      string
	Score         int
	LinesCleared  int
	Level         int
	StartingLevel int
	GameOver      bool
	// Outcome of the tick run by the command, empty for plain moves.
	Outcome string
	Cleared []int
	// Accepted reports whether the command moved the piece.
	Accepted bool
	Stats    map[string]int
}

func (*Snapshot) desc() protoreflect.MessageDescriptor { return snapshotDesc }

func (s *Snapshot) fill(m protoreflect.Message) {
	setString(m, "game_id", s.GameID)
	board := list(m, "board")
	for _, row := range s.Board {
		v := board.NewElement()
		cells := list(v.Message(), "cells")
		for _, c := range row {
			cells.Append(protoreflect.ValueOfBool(c))
		}
		board.Append(v)
	}
	appendPoints(list(m, "active"), s.Active)
	appendPoints(list(m, "ghost"), s.Ghost)
	setString(m, "active_kind", s.ActiveKind)
	setString(m, "next_kind", s.NextKind)
	setInt64(m, "score", s.Score)
	setInt32(m, "lines_cleared", s.LinesCleared)
	setInt32(m, "level", s.Level)
	setInt32(m, "starting_level", s.StartingLevel)
	setBool(m, "game_over", s.GameOver)
	setString(m, "outcome", s.Outcome)
	cleared := list(m, "cleared")
	for _, r := range s.Cleared {
		cleared.Append(protoreflect.ValueOfInt32(int32(r))) //nolint:gosec
	}
	setBool(m, "accepted", s.Accepted)

	kinds := make([]string, 0, len(s.Stats))
	for k := range s.Stats {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	stats := list(m, "stats")
	for _, k := range kinds {
		v := stats.NewElement()
		setString(v.Message(), "kind", k)
		setInt32(v.Message(), "count", s.Stats[k])
		stats.Append(v)
	}
}

func (s *Snapshot) load(m protoreflect.Message) {
	s.GameID = getString(m, "game_id")
	board := get(m, "board").List()
	s.Board = make([][]bool, board.Len())
	for i := range s.Board {
		cells := get(board.Get(i).Message(), "cells").List()
		s.Board[i] = make([]bool, cells.Len())
		for j := range s.Board[i] {
			s.Board[i][j] = cells.Get(j).Bool()
		}
	}
	s.Active = loadPoints(get(m, "active").List())
	s.Ghost = loadPoints(get(m, "ghost").List())
	s.ActiveKind = getString(m, "active_kind")
	s.NextKind = getString(m, "next_kind")
	s.Score = int(get(m, "score").Int())
	s.LinesCleared = getInt(m, "lines_cleared")
	s.Level = getInt(m, "level")
	s.StartingLevel = getInt(m, "starting_level")
	s.GameOver = get(m, "game_over").Bool()
	s.Outcome = getString(m, "outcome")
	cleared := get(m, "cleared").List()
	s.Cleared = nil
	for i := range cleared.Len() {
		s.Cleared = append(s.Cleared, int(cleared.Get(i).Int()))
	}
	s.Accepted = get(m, "accepted").Bool()
	stats := get(m, "stats").List()
	s.Stats = make(map[string]int, stats.Len())
	for i := range stats.Len() {
		kc := stats.Get(i).Message()
		s.Stats[getString(kc, "kind")] = getInt(kc, "count")
	}
}

type NewGameRequest struct {
	Seed          uint64
	StartingLevel int
}

func (*NewGameRequest) desc() protoreflect.MessageDescriptor { return newGameDesc }

func (r *NewGameRequest) fill(m protoreflect.Message) {
	m.Set(field(m, "seed"), protoreflect.ValueOfUint64(r.Seed))
	setInt32(m, "starting_level", r.StartingLevel)
}

func (r *NewGameRequest) load(m protoreflect.Message) {
	r.Seed = get(m, "seed").Uint()
	r.StartingLevel = getInt(m, "starting_level")
}

type CommandRequest struct {
	GameID  string
	Command string
}

func (*CommandRequest) desc() protoreflect.MessageDescriptor { return commandDesc }

func (r *CommandRequest) fill(m protoreflect.Message) {
	setString(m, "game_id", r.GameID)
	setString(m, "command", r.Command)
}

func (r *CommandRequest) load(m protoreflect.Message) {
	r.GameID = getString(m, "game_id")
	r.Command = getString(m, "command")
}

type GameRequest struct {
	GameID string
}

func (*GameRequest) desc() protoreflect.MessageDescriptor { return gameDesc }
func (r *GameRequest) fill(m protoreflect.Message)        { setString(m, "game_id", r.GameID) }
func (r *GameRequest) load(m protoreflect.Message)        { r.GameID = getString(m, "game_id") }

type ScoreEntry struct {
	Name         string
	Score        int
	LinesCleared int
}

func (*ScoreEntry) desc() protoreflect.MessageDescriptor { return scoreEntryDesc }

func (e *ScoreEntry) fill(m protoreflect.Message) {
	setString(m, "name", e.Name)
	setInt64(m, "score", e.Score)
	setInt32(m, "lines_cleared", e.LinesCleared)
}

func (e *ScoreEntry) load(m protoreflect.Message) {
	e.Name = getString(m, "name")
	e.Score = int(get(m, "score").Int())
	e.LinesCleared = getInt(m, "lines_cleared")
}

type SubmitScoreRequest struct {
	GameID string
	Name   string
}

func (*SubmitScoreRequest) desc() protoreflect.MessageDescriptor { return submitScoreDesc }

func (r *SubmitScoreRequest) fill(m protoreflect.Message) {
	setString(m, "game_id", r.GameID)
	setString(m, "name", r.Name)
}

func (r *SubmitScoreRequest) load(m protoreflect.Message) {
	r.GameID = getString(m, "game_id")
	r.Name = getString(m, "name")
}

type ScoresRequest struct {
	// Limit is the maximum number of entries returned, 0 for all of them.
	Limit int
}

func (*ScoresRequest) desc() protoreflect.MessageDescriptor { return scoresRequestDesc }
func (r *ScoresRequest) fill(m protoreflect.Message)        { setInt32(m, "limit", r.Limit) }
func (r *ScoresRequest) load(m protoreflect.Message)        { r.Limit = getInt(m, "limit") }

type ScoresResponse struct {
	Entries []ScoreEntry
}

func (*ScoresResponse) desc() protoreflect.MessageDescriptor { return scoresResponseDesc }

func (r *ScoresResponse) fill(m protoreflect.Message) {
	entries := list(m, "entries")
	for i := range r.Entries {
		v := entries.NewElement()
		r.Entries[i].fill(v.Message())
		entries.Append(v)
	}
}

func (r *ScoresResponse) load(m protoreflect.Message) {
	entries := get(m, "entries").List()
	r.Entries = make([]ScoreEntry, entries.Len())
	for i := range r.Entries {
		r.Entries[i].load(entries.Get(i).Message())
	}
}

func appendPoints(l protoreflect.List, points []Point) {
	for i := range points {
		v := l.NewElement()
		points[i].fill(v.Message())
		l.Append(v)
	}
}

func loadPoints(l protoreflect.List) []Point {
	points := make([]Point, l.Len())
	for i := range points {
		points[i].load(l.Get(i).Message())
	}
	return points
}

func field(m protoreflect.Message, name string) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		panic(fmt.Sprintf("pb: %s has no field %q", m.Descriptor().FullName(), name))
	}
	return fd
}

func get(m protoreflect.Message, name string) protoreflect.Value { return m.Get(field(m, name)) }
func list(m protoreflect.Message, name string) protoreflect.List { return m.Mutable(field(m, name)).List() }
func getString(m protoreflect.Message, name string) string       { return get(m, name).String() }
func getInt(m protoreflect.Message, name string) int             { return int(get(m, name).Int()) }

func setString(m protoreflect.Message, name, v string) {
	m.Set(field(m, name), protoreflect.ValueOfString(v))
}

func setBool(m protoreflect.Message, name string, v bool) {
	m.Set(field(m, name), protoreflect.ValueOfBool(v))
}

func setInt32(m protoreflect.Message, name string, v int) {
	m.Set(field(m, name), protoreflect.ValueOfInt32(int32(v))) //nolint:gosec
}

func setInt64(m protoreflect.Message, name string, v int) {
	m.Set(field(m, name), protoreflect.ValueOfInt64(int64(v)))
}
