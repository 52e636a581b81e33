package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net"
	"os"
	"time"

	"blockfall/pb"
	"blockfall/scoreboard"
	"blockfall/server"

	"google.golang.org/grpc"
)

func main() {
	addr := flag.String("addr", ":9000", "address to listen on")
	scores := flag.String("scores", "scores.txt", "file the scoreboard is saved to")
	idle := flag.Duration("idle", 10*time.Minute, "time after which a game with no requests is removed")
	flag.Parse()
	if *idle <= 0 {
		log.Fatalf("idle must be positive, got %v", *idle)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store := &scoreboard.FileStore{Path: *scores}
	entries, err := store.Load()
	if err != nil {
		log.Fatalf("failed to load scores: %v", err)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()
	srv := server.New(&server.Options{
		Logger: logger,
		Store:  store,
		Scores: entries,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Reap(ctx, *idle)

	s := grpc.NewServer()
	defer s.Stop()
	pb.RegisterGameServiceServer(s, srv)

	logger.Info("starting server", slog.String("address", lis.Addr().String()), slog.Int("scores", len(entries)))
	if err := s.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
