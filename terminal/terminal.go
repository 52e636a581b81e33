// Package terminal prepares the console the game is drawn on.
package terminal

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[24;0H\n\r\033[?25h"

	// MinWidth and MinHeight fit the board, the side panel and the help line.
	MinWidth  = 46
	MinHeight = 24
)

var (
	ErrNotATerminal = errors.New("not a terminal")
	ErrTooSmall     = errors.New("terminal too small")
)

// Console is the subset of term the package relies on.
type Console interface {
	IsTerminal(fd int) bool
	GetSize(fd int) (width, height int, err error)
	GetState(fd int) (*term.State, error)
	Restore(fd int, state *term.State) error
}

type xterm struct{}

func (xterm) IsTerminal(fd int) bool                  { return term.IsTerminal(fd) }
func (xterm) GetSize(fd int) (int, int, error)        { return term.GetSize(fd) }
func (xterm) GetState(fd int) (*term.State, error)    { return term.GetState(fd) }
func (xterm) Restore(fd int, state *term.State) error { return term.Restore(fd, state) }

// Start checks that fd is a terminal big enough for the game, hides the
// cursor and returns a function that puts the terminal back as it was.
func Start(w io.Writer, fd int) (func() error, error) {
	return start(xterm{}, w, fd)
}

func start(c Console, w io.Writer, fd int) (func() error, error) {
	if !c.IsTerminal(fd) {
		return nil, ErrNotATerminal
	}
	width, height, err := c.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("unable to read terminal size: %w", err)
	}
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall, width, height, MinWidth, MinHeight)
	}
	state, err := c.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("unable to read terminal state: %w", err)
	}

	fmt.Fprint(w, hideCursor)
	return func() error {
		fmt.Fprint(w, showCursor)
		if err := c.Restore(fd, state); err != nil {
			return fmt.Errorf("unable to restore the terminal original state: %w", err)
		}
		return nil
	}, nil
}
