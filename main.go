package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"blockfall/client"
	"blockfall/terminal"
)

func main() {
	level := flag.Int("level", 0, "starting level, from 0 to 18")
	seed := flag.Uint64("seed", 0, "seed of the piece generator, random when 0")
	name := flag.String("name", defaultName(), "player name shown in the scoreboard")
	scores := flag.String("scores", defaultPath("scores.txt"), "file local scores are saved to")
	addr := flag.String("addr", "", "address of a game server, games are local when empty")
	noGhost := flag.Bool("noghost", false, "hide the ghost piece")
	logPath := flag.String("log", defaultPath("blockfall.log"), "log file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*logPath), 0o755); err != nil {
		log.Fatalf("unable to create log directory: %v", err)
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	restore, err := terminal.Start(os.Stdout, int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("unable to start terminal: %v", err)
	}

	c, err := client.New(logger, &client.Options{
		NoGhost:       *noGhost,
		Address:       *addr,
		Name:          *name,
		StartingLevel: *level,
		Seed:          *seed,
		ScoresPath:    *scores,
	})
	if err != nil {
		restore() //nolint:errcheck
		log.Fatalf("unable to start client: %v", err)
	}
	save := c.Start()

	if err := c.Close(save); err != nil {
		logger.Error("unable to close client", slog.String("error", err.Error()))
	}
	if err := restore(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func defaultName() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "player"
	}
	return u.Username
}

// defaultPath places file in the user config directory, falling back to
// the working directory.
func defaultPath(file string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return file
	}
	return filepath.Join(dir, "blockfall", file)
}
