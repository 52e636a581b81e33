// Package client is the terminal front end: it reads the keyboard, drives
// a local or remote game and renders it.
package client

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"blockfall/scoreboard"
	"blockfall/tetris"

	"github.com/eiannone/keyboard"
)

const (
	savedShown  = 5
	remoteShown = 10
)

type clientState int

const (
	lobby clientState = iota
	playing
	scores
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

// tetrisGame is a running game, either a local session or one played on a server.
type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	game(*tetris.Snapshot)
	lobby(message)
	scores(saved, pending []scoreboard.Entry)
	reset()
}

type Client struct {
	newGame func() (tetrisGame, error)
	tetris  tetrisGame
	// gameDone is closed once the running game has been fully handled.
	gameDone chan struct{}
	render   renderer
	options  *Options
	logger   *slog.Logger
	kbCh     <-chan keyboard.KeyEvent
	state    *state
	pending  *scoreboard.Manager
	board    func() ([]scoreboard.Entry, error)
	save     bool
	mu       sync.Mutex
}

type Options struct {
	NoGhost bool
	// Address of the game server. Games are played locally when empty.
	Address       string
	Name          string
	StartingLevel int
	// Seed for the piece generator, a random one is picked when 0.
	Seed uint64
	// ScoresPath is the file local scores are saved to.
	ScoresPath string
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	if o.StartingLevel < tetris.MinStartingLevel || o.StartingLevel > tetris.MaxStartingLevel {
		return nil, fmt.Errorf("%w: %d", tetris.ErrIllegalStartingLevel, o.StartingLevel)
	}
	r, err := newRender(l, o.NoGhost, o.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}

	store := scoreboard.FileStore{Path: o.ScoresPath}
	c := &Client{
		render:  r,
		options: o,
		logger:  l,
		kbCh:    kb,
		state:   &state{current: lobby},
		pending: scoreboard.NewManager(store),
	}
	c.newGame = c.localGame
	c.board = func() ([]scoreboard.Entry, error) {
		saved, err := store.Load()
		if err != nil {
			return nil, err
		}
		return scoreboard.New(saved...).Top(savedShown), nil
	}
	if o.Address != "" {
		c.newGame = func() (tetrisGame, error) { return dialRemoteGame(l, o) }
		c.board = func() ([]scoreboard.Entry, error) { return remoteScores(o.Address, remoteShown) }
	}
	return c, nil
}

// Start shows the lobby and handles the keyboard until the player quits.
// It reports whether the player asked for the pending scores to be saved.
func (c *Client) Start() bool {
	c.render.reset()
	c.render.lobby(defaultLobby())
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save
}

// Close stops the running game, saves the scores of local games when save
// is true and releases the keyboard.
func (c *Client) Close(save bool) error {
	if g, done := c.current(); g != nil {
		g.Stop()
		<-done
	}
	if save {
		if err := c.pending.Save(); err != nil {
			c.logger.Error("unable to save scores", slog.String("error", err.Error()))
		}
	} else if n := len(c.pending.Pending()); n > 0 {
		c.logger.Info("scores discarded", slog.Int("count", n))
	}
	return keyboard.Close()
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		// Ctrl-C and Q leave without saving.
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.play()
			case 'b':
				c.showScores()
			case 'q':
				c.mu.Lock()
				c.save = true
				c.mu.Unlock()
				return
			case 'Q':
				return
			}
		case scores:
			if i, ok := pendingIndex(event); ok && c.options.Address == "" {
				c.pending.Remove(i)
				c.showScores()
				continue
			}
			c.state.set(lobby)
			c.render.lobby(defaultLobby())
		case playing:
			g, _ := c.current()
			if event.Key == keyboard.KeyEsc {
				// the game listener takes the client back to the lobby.
				g.Stop()
				continue
			}
			if a, ok := keyAction(event); ok {
				g.Action(a)
			}
		}
	}
}

func keyAction(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.Rotate, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	}
	return "", false
}

// pendingIndex maps the keys 1 to 9 to the index of a pending score.
func pendingIndex(event keyboard.KeyEvent) (int, bool) {
	if event.Rune < '1' || event.Rune > '9' {
		return 0, false
	}
	return int(event.Rune - '1'), true
}

func (c *Client) play() {
	g, err := c.newGame()
	if err != nil {
		c.logger.Error("unable to start game", slog.String("error", err.Error()))
		c.render.lobby(errorMessage())
		return
	}
	done := make(chan struct{})
	c.mu.Lock()
	c.tetris = g
	c.gameDone = done
	c.mu.Unlock()
	c.state.set(playing)
	c.render.reset()
	g.Start()
	go c.listenTetris(g, done)
}

func (c *Client) listenTetris(g tetrisGame, done chan struct{}) {
	defer close(done)
	var last *tetris.Snapshot
	for u := range g.GetUpdate() {
		last = u
		c.render.game(u)
	}
	if last == nil || !last.GameOver {
		c.state.set(lobby)
		c.render.lobby(defaultLobby())
		return
	}
	// the score is pending before the lobby accepts a quit.
	if c.options.Address == "" {
		c.pending.Add(scoreboard.Entry{Name: c.options.Name, Score: last.Score, LinesCleared: last.LinesCleared})
	}
	c.state.set(lobby)
	c.render.lobby(gameOver(last.Score))
}

// showScores renders the scoreboard. Local games also list the scores not
// saved yet, which the player can drop with their number.
func (c *Client) showScores() {
	entries, err := c.board()
	if err != nil {
		c.logger.Error("unable to load scores", slog.String("error", err.Error()))
		c.render.lobby(errorMessage())
		return
	}
	var pending []scoreboard.Entry
	if c.options.Address == "" {
		pending = c.pending.Pending()
	}
	c.state.set(scores)
	c.render.scores(entries, pending)
}

func (c *Client) current() (tetrisGame, chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tetris, c.gameDone
}

func (c *Client) localGame() (tetrisGame, error) {
	seed := c.options.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g, err := tetris.New(seed, c.options.StartingLevel)
	if err != nil {
		return nil, err
	}
	c.logger.Info("local game started", slog.Uint64("seed", seed), slog.Int("starting_level", c.options.StartingLevel))
	return tetris.NewSession(g), nil
}
