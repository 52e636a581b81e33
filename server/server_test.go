package server

import (
	"context"
	"log"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"blockfall/pb"
	"blockfall/scoreboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestNewGame(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		wantCode codes.Code
	}{
		{name: "lowest level", level: 0, wantCode: codes.OK},
		{name: "highest level", level: 18, wantCode: codes.OK},
		{name: "negative level", level: -1, wantCode: codes.InvalidArgument},
		{name: "level too high", level: 19, wantCode: codes.InvalidArgument},
	}

	client, closer := testServer(t, &Options{})
	defer closer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := client.NewGame(context.Background(), &pb.NewGameRequest{Seed: 1, StartingLevel: tt.level})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if err != nil {
				return
			}
			assert.NotEmpty(t, snap.GameID)
			assert.Equal(t, tt.level, snap.Level)
			assert.Len(t, snap.Board, 20)
			assert.Len(t, snap.Active, 4)
		})
	}
}

func TestCommand(t *testing.T) {
	ctx := context.Background()
	client, closer := testServer(t, &Options{})
	defer closer()

	start, err := client.NewGame(ctx, &pb.NewGameRequest{Seed: 3})
	require.NoError(t, err)

	t.Run("left", func(t *testing.T) {
		snap, err := client.Command(ctx, &pb.CommandRequest{GameID: start.GameID, Command: "left"})
		require.NoError(t, err)
		assert.True(t, snap.Accepted)
		assert.Empty(t, snap.Outcome)
		assert.Equal(t, start.Active[0].X-1, snap.Active[0].X)
	})

	t.Run("tick", func(t *testing.T) {
		snap, err := client.Command(ctx, &pb.CommandRequest{GameID: start.GameID, Command: "tick"})
		require.NoError(t, err)
		assert.Equal(t, "descended", snap.Outcome)
	})

	t.Run("drop", func(t *testing.T) {
		snap, err := client.Command(ctx, &pb.CommandRequest{GameID: start.GameID, Command: "drop"})
		require.NoError(t, err)
		assert.Equal(t, "locked", snap.Outcome)
		assert.Equal(t, start.NextKind, snap.ActiveKind)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := client.Command(ctx, &pb.CommandRequest{GameID: start.GameID, Command: "hold"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := client.Command(ctx, &pb.CommandRequest{GameID: "nope", Command: "left"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestScores(t *testing.T) {
	ctx := context.Background()
	store := &scoreboard.FileStore{Path: filepath.Join(t.TempDir(), "scores.txt")}
	client, closer := testServer(t, &Options{
		Store:  store,
		Scores: []scoreboard.Entry{{Name: "zed"}},
	})
	defer closer()

	start, err := client.NewGame(ctx, &pb.NewGameRequest{Seed: 9})
	require.NoError(t, err)
	id := start.GameID

	_, err = client.SubmitScore(ctx, &pb.SubmitScoreRequest{GameID: id, Name: "alice"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err), "the game is still running")

	// dropping every piece at the spawn location tops out quickly.
	var last *pb.Snapshot
	for range 200 {
		last, err = client.Command(ctx, &pb.CommandRequest{GameID: id, Command: "drop"})
		require.NoError(t, err)
		if last.GameOver {
			break
		}
	}
	require.True(t, last.GameOver)
	assert.Equal(t, "gameover", last.Outcome)

	_, err = client.SubmitScore(ctx, &pb.SubmitScoreRequest{GameID: id, Name: "  "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	entry, err := client.SubmitScore(ctx, &pb.SubmitScoreRequest{GameID: id, Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Name)
	assert.Equal(t, last.Score, entry.Score)

	_, err = client.SubmitScore(ctx, &pb.SubmitScoreRequest{GameID: id, Name: "alice"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err), "already submitted")

	scores, err := client.Scores(ctx, &pb.ScoresRequest{})
	require.NoError(t, err)
	require.Len(t, scores.Entries, 2)
	assert.Equal(t, "alice", scores.Entries[0].Name)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []scoreboard.Entry{entry.ToEntry()}, saved)

	_, err = client.Scores(ctx, &pb.ScoresRequest{Limit: -1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestEndGame(t *testing.T) {
	ctx := context.Background()
	client, closer := testServer(t, &Options{})
	defer closer()

	start, err := client.NewGame(ctx, &pb.NewGameRequest{Seed: 5})
	require.NoError(t, err)

	snap, err := client.GetSnapshot(ctx, &pb.GameRequest{GameID: start.GameID})
	require.NoError(t, err)
	assert.Equal(t, start.Active, snap.Active)

	_, err = client.EndGame(ctx, &pb.GameRequest{GameID: start.GameID})
	require.NoError(t, err)

	_, err = client.GetSnapshot(ctx, &pb.GameRequest{GameID: start.GameID})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = client.EndGame(ctx, &pb.GameRequest{GameID: start.GameID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(&Options{Logger: slog.New(slog.DiscardHandler)})
	s.now = func() time.Time { return now }

	idle, err := s.NewGame(ctx, &pb.NewGameRequest{Seed: 1})
	require.NoError(t, err)
	active, err := s.NewGame(ctx, &pb.NewGameRequest{Seed: 2})
	require.NoError(t, err)

	now = now.Add(4 * time.Minute)
	_, err = s.Command(ctx, &pb.CommandRequest{GameID: active.GameID, Command: "left"})
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.sweep(5*time.Minute))

	_, err = s.GetSnapshot(ctx, &pb.GameRequest{GameID: idle.GameID})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = s.GetSnapshot(ctx, &pb.GameRequest{GameID: active.GameID})
	assert.NoError(t, err)
	assert.Equal(t, 0, s.sweep(5*time.Minute))
}

func TestReapStops(t *testing.T) {
	s := New(&Options{Logger: slog.New(slog.DiscardHandler)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { s.Reap(ctx, time.Millisecond); close(done) }()

	_, err := s.NewGame(context.Background(), &pb.NewGameRequest{Seed: 1})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.games) == 0
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Reap to return")
	}
}

func testServer(t *testing.T, o *Options) (pb.GameServiceClient, func()) {
	t.Helper()
	buffer := 1024 * 1024
	lis := bufconn.Listen(buffer)

	o.Logger = slog.New(slog.DiscardHandler)
	s := grpc.NewServer()
	pb.RegisterGameServiceServer(s, New(o))
	go func() {
		if err := s.Serve(lis); err != nil {
			log.Printf("unable to serve: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return lis.Dial()
	}), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	closer := func() {
		if err := conn.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
		if err := lis.Close(); err != nil {
			log.Printf("error closing listener: %v", err)
		}
		s.Stop()
	}

	return pb.NewGameServiceClient(conn), closer
}
