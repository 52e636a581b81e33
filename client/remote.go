package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blockfall/pb"
	"blockfall/scoreboard"
	"blockfall/tetris"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const requestTimeout = 5 * time.Second

// remoteGame plays a game hosted by the server. It keeps the timer on the
// client side and sends every tick and player action as a command.
type remoteGame struct {
	client pb.GameServiceClient
	closer func() error
	logger *slog.Logger
	name   string
	id     string
	first  *tetris.Snapshot
	ticker tetris.Ticker

	updateCh chan *tetris.Snapshot
	actionCh chan tetris.Action
	doneCh   chan struct{}
	stopOnce sync.Once
}

func dialRemoteGame(l *slog.Logger, o *Options) (*remoteGame, error) {
	conn, err := grpc.NewClient(o.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	g, err := newRemoteGame(pb.NewGameServiceClient(conn), l, o, nil)
	if err != nil {
		conn.Close() //nolint:errcheck
		return nil, err
	}
	g.closer = conn.Close
	return g, nil
}

// newRemoteGame starts a game on the server. A ticker following the game
// level is created when ticker is nil.
func newRemoteGame(client pb.GameServiceClient, l *slog.Logger, o *Options, ticker tetris.Ticker) (*remoteGame, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := client.NewGame(ctx, &pb.NewGameRequest{Seed: o.Seed, StartingLevel: o.StartingLevel})
	if err != nil {
		return nil, fmt.Errorf("unable to start remote game: %w", err)
	}
	first, err := res.ToTetris()
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot from server: %w", err)
	}
	if ticker == nil {
		ticker = tetris.NewTicker(tetris.Interval(first.Level))
	}
	l.Info("remote game started", slog.String("game_id", res.GameID), slog.String("address", o.Address))
	return &remoteGame{
		client:   client,
		closer:   func() error { return nil },
		logger:   l,
		name:     o.Name,
		id:       res.GameID,
		first:    first,
		ticker:   ticker,
		updateCh: make(chan *tetris.Snapshot),
		actionCh: make(chan tetris.Action),
		doneCh:   make(chan struct{}),
	}, nil
}

func (r *remoteGame) Start() { go r.listen() }

func (r *remoteGame) Stop() {
	r.stopOnce.Do(func() {
		r.ticker.Stop()
		close(r.doneCh)
	})
}

func (r *remoteGame) Action(a tetris.Action) {
	select {
	case r.actionCh <- a:
	case <-r.doneCh:
	}
}

func (r *remoteGame) GetUpdate() <-chan *tetris.Snapshot { return r.updateCh }

func (r *remoteGame) listen() {
	defer func() {
		r.Stop()
		r.end()
		close(r.updateCh)
	}()

	r.ticker.Reset(tetris.Interval(r.first.Level))
	if !r.publish(r.first) {
		return
	}
	for {
		var a tetris.Action
		select {
		case <-r.ticker.C():
			a = tetris.Tick
		case a = <-r.actionCh:
		case <-r.doneCh:
			return
		}

		snap, res, err := r.command(a)
		if err != nil {
			r.logger.Error("unable to send command", slog.String("command", string(a)), slog.String("error", err.Error()))
			return
		}
		if res.Outcome == string(tetris.Locked) {
			r.ticker.Reset(tetris.Interval(snap.Level))
		}
		if !r.publish(snap) || snap.GameOver {
			if snap.GameOver {
				r.submit()
			}
			return
		}
	}
}

func (r *remoteGame) command(a tetris.Action) (*tetris.Snapshot, *pb.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := r.client.Command(ctx, &pb.CommandRequest{GameID: r.id, Command: string(a)})
	if err != nil {
		return nil, nil, err
	}
	snap, err := res.ToTetris()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid snapshot from server: %w", err)
	}
	return snap, res, nil
}

func (r *remoteGame) publish(s *tetris.Snapshot) bool {
	select {
	case r.updateCh <- s:
		return true
	case <-r.doneCh:
		return false
	}
}

func (r *remoteGame) submit() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if _, err := r.client.SubmitScore(ctx, &pb.SubmitScoreRequest{GameID: r.id, Name: r.name}); err != nil {
		r.logger.Error("unable to submit score", slog.String("error", err.Error()))
	}
}

// end releases the game on the server and closes the connection.
func (r *remoteGame) end() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if _, err := r.client.EndGame(ctx, &pb.GameRequest{GameID: r.id}); err != nil {
		r.logger.Error("unable to end remote game", slog.String("error", err.Error()))
	}
	if err := r.closer(); err != nil {
		r.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
	}
}

// remoteScores fetches the best n entries of the server scoreboard.
func remoteScores(addr string, n int) ([]scoreboard.Entry, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	defer conn.Close() //nolint:errcheck
	return fetchScores(pb.NewGameServiceClient(conn), n)
}

func fetchScores(client pb.GameServiceClient, n int) ([]scoreboard.Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := client.Scores(ctx, &pb.ScoresRequest{Limit: n})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch scores: %w", err)
	}
	entries := make([]scoreboard.Entry, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = e.ToEntry()
	}
	return entries, nil
}
