package scoreboard

import (
	"slices"
	"sync"
)

// Store is where saved entries end up.
type Store interface {
	Append(entries ...Entry) error
}

// Manager holds the entries of the current run until the player decides
// which ones to keep and saves them.
type Manager struct {
	mu      sync.Mutex
	store   Store
	pending []Entry
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Add(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, e)
}

// Pending returns the entries not saved yet, best first. The indices
// taken by Remove refer to this order.
func (m *Manager) Pending() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sort()
	return slices.Clone(m.pending)
}

// Remove drops pending entries by their index in Pending.
// Indices out of range are ignored.
func (m *Manager) Remove(indices ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sort()
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := m.pending[:0]
	for i, e := range m.pending {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	m.pending = kept
}

// Save appends the pending entries to the store and forgets them.
// On failure the entries stay pending.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil
	}
	m.sort()
	if err := m.store.Append(m.pending...); err != nil {
		return err
	}
	m.pending = nil
	return nil
}

func (m *Manager) sort() { slices.SortStableFunc(m.pending, Compare) }
