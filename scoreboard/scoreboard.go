// Package scoreboard keeps the results of finished games.
package scoreboard

import (
	"cmp"
	"slices"
	"sync"
)

// Entry is the result of one game.
type Entry struct {
	Name         string
	Score        int
	LinesCleared int
}

// Compare orders entries best first: higher score, then more lines
// cleared, then by name.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.LinesCleared, a.LinesCleared); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Scoreboard is a collection of entries. It is safe for concurrent use.
type Scoreboard struct {
	mu      sync.RWMutex
	entries []Entry
}

func New(entries ...Entry) *Scoreboard {
	return &Scoreboard{entries: slices.Clone(entries)}
}

func (s *Scoreboard) Add(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

func (s *Scoreboard) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns the entries in the order they were added.
func (s *Scoreboard) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Sorted returns the entries best first.
func (s *Scoreboard) Sorted() []Entry {
	e := s.Entries()
	slices.SortStableFunc(e, Compare)
	return e
}

// Top returns at most n of the best entries. n <= 0 returns all of them.
func (s *Scoreboard) Top(n int) []Entry {
	e := s.Sorted()
	if n > 0 && n < len(e) {
		e = e[:n]
	}
	return e
}
