// Package server plays single player games on behalf of remote clients
// and keeps a shared scoreboard.
package server

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"blockfall/pb"
	"blockfall/scoreboard"
	"blockfall/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxNameLength = 32

type game struct {
	*tetris.Game
	submitted bool
	// lastSeen is guarded by the server mutex.
	lastSeen time.Time
	mu       sync.Mutex
}

type Options struct {
	Logger *slog.Logger
	// Store persists submitted scores. Optional.
	Store *scoreboard.FileStore
	// Scores are the entries the scoreboard starts with.
	Scores []scoreboard.Entry
}

// Server implements pb.GameServiceServer.
type Server struct {
	pb.UnimplementedGameServiceServer
	games      map[string]*game
	scoreboard *scoreboard.Scoreboard
	store      *scoreboard.FileStore
	logger     *slog.Logger
	now        func() time.Time
	mu         sync.Mutex
}

func New(o *Options) *Server {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Server{
		games:      make(map[string]*game),
		scoreboard: scoreboard.New(o.Scores...),
		store:      o.Store,
		logger:     l,
		now:        time.Now,
	}
}

// Reap removes, every idle/2, the games that got no request for idle.
// Clients that go away without ending their game would otherwise leave it
// behind for good. It returns when ctx is done.
func (s *Server) Reap(ctx context.Context, idle time.Duration) {
	ticker := time.NewTicker(max(idle/2, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep(idle)
		case <-ctx.Done():
			return
		}
	}
}

// sweep removes the games idle for longer than idle and returns how many.
func (s *Server) sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, g := range s.games {
		if g.lastSeen.Before(cutoff) {
			delete(s.games, id)
			n++
			s.logger.Info("idle game removed", slog.String("game_id", id))
		}
	}
	return n
}

func (s *Server) NewGame(_ context.Context, req *pb.NewGameRequest) (*pb.Snapshot, error) {
	g, err := tetris.New(req.Seed, req.StartingLevel)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	id := uuid.New().String()

	s.mu.Lock()
	s.games[id] = &game{Game: g, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Info("game started", slog.String("game_id", id), slog.Int("starting_level", req.StartingLevel))
	return pb.FromSnapshot(id, g.Snapshot()), nil
}

func (s *Server) Command(_ context.Context, req *pb.CommandRequest) (*pb.Snapshot, error) {
	a, err := tetris.ParseAction(req.Command)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	g, err := s.game(req.GameID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	moved, res := g.Apply(a)
	if res.Outcome == tetris.ToppedOut {
		s.logger.Info("game over", slog.String("game_id", req.GameID), slog.Int("score", g.Score()))
	}
	return pb.FromSnapshot(req.GameID, g.Snapshot()).WithResult(moved, res), nil
}

func (s *Server) GetSnapshot(_ context.Context, req *pb.GameRequest) (*pb.Snapshot, error) {
	g, err := s.game(req.GameID)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return pb.FromSnapshot(req.GameID, g.Snapshot()), nil
}

func (s *Server) EndGame(_ context.Context, req *pb.GameRequest) (*pb.Snapshot, error) {
	s.mu.Lock()
	g, ok := s.games[req.GameID]
	delete(s.games, req.GameID)
	s.mu.Unlock()
	if !ok {
		return nil, notFound(req.GameID)
	}

	s.logger.Info("game ended", slog.String("game_id", req.GameID))
	g.mu.Lock()
	defer g.mu.Unlock()
	return pb.FromSnapshot(req.GameID, g.Snapshot()), nil
}

func (s *Server) SubmitScore(_ context.Context, req *pb.SubmitScoreRequest) (*pb.ScoreEntry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength || strings.ContainsAny(name, "\r\n") {
		return nil, status.Errorf(codes.InvalidArgument, "name must be 1 to %d characters on a single line", maxNameLength)
	}
	g, err := s.game(req.GameID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case !g.IsGameOver():
		return nil, status.Error(codes.FailedPrecondition, "the game is not over")
	case g.submitted:
		return nil, status.Error(codes.FailedPrecondition, "the score was already submitted")
	}

	e := scoreboard.Entry{Name: name, Score: g.Score(), LinesCleared: g.LinesCleared()}
	if s.store != nil {
		if err := s.store.Append(e); err != nil {
			s.logger.Error("unable to save score", slog.String("error", err.Error()))
			return nil, status.Error(codes.Internal, "unable to save score")
		}
	}
	s.scoreboard.Add(e)
	g.submitted = true
	s.logger.Info("score submitted", slog.String("game_id", req.GameID), slog.String("name", name), slog.Int("score", e.Score))
	out := pb.FromEntry(e)
	return &out, nil
}

func (s *Server) Scores(_ context.Context, req *pb.ScoresRequest) (*pb.ScoresResponse, error) {
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	out := &pb.ScoresResponse{}
	for _, e := range s.scoreboard.Top(req.Limit) {
		out.Entries = append(out.Entries, pb.FromEntry(e))
	}
	return out, nil
}

func (s *Server) game(id string) (*game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, notFound(id)
	}
	g.lastSeen = s.now()
	return g, nil
}

func notFound(id string) error {
	return status.Errorf(codes.NotFound, "game %q not found", id)
}
