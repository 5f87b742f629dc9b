package storefront

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session state between requests. Implementations
// store and return copies.
type SessionStore interface {
	Get(ctx context.Context, id string) (*State, error)
	Put(ctx context.Context, id string, state *State) error
	Delete(ctx context.Context, id string) error
}

// AtomicUpdater is implemented by stores shared between processes. Update
// applies fn to the stored state and saves it in one atomic step, so the
// in-process session lock is not the only guard.
type AtomicUpdater interface {
	Update(ctx context.Context, id string, fn func(*State) error) (*State, error)
}

type memoryEntry struct {
	state     *State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Entries expire ttl after
// their last write; a zero ttl disables expiry.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.expired(entry) {
		delete(m.entries, id)
		return nil, ErrSessionNotFound
	}
	return entry.state.Clone(), nil
}

func (m *MemoryStore) Put(ctx context.Context, id string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{state: state.Clone()}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[id] = entry
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
