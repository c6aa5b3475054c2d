// internal/store/memory.go
//
// In-memory registry of live matches.
// Matches live for the process lifetime only; nothing is persisted.
//
// Characteristics:
//   - Stores *match.Match objects keyed by round ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sweep drops matches idle for longer than a TTL.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kiittsunne/wardle/internal/match"
	"github.com/kiittsunne/wardle/internal/metrics"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// MinJanitorInterval is the tick used when Janitor is given no usable interval.
const MinJanitorInterval = time.Second

// Store holds live matches.
type Store interface {
	// Save adds or replaces a match.
	Save(ctx context.Context, m *match.Match) error

	// Get retrieves a match by round ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*match.Match, error)

	// Delete removes a match; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many matches are held.
	Len() int
}

// Memory is the map-backed Store.
type Memory struct {
	mu      sync.RWMutex
	matches map[string]*match.Match
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *Memory {
	return &Memory{matches: make(map[string]*match.Match)}
}

func (m *Memory) Save(ctx context.Context, mt *match.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[mt.ID()] = mt
	metrics.LiveRounds.Set(float64(len(m.matches)))
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*match.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mt, ok := m.matches[id]; ok {
		return mt, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
	metrics.LiveRounds.Set(float64(len(m.matches)))
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// Sweep removes matches whose last activity is older than now-ttl and returns
// how many were removed.
func (m *Memory) Sweep(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, mt := range m.matches {
		if mt.LastActivity().Before(cutoff) {
			delete(m.matches, id)
			n++
		}
	}
	metrics.LiveRounds.Set(float64(len(m.matches)))
	return n
}

// Janitor calls Sweep every interval until ctx is done. onTick, if set, runs
// after every sweep with the tick time and the number of rounds removed.
// A non-positive interval falls back to MinJanitorInterval.
func (m *Memory) Janitor(ctx context.Context, interval, ttl time.Duration, onTick func(now time.Time, removed int)) error {
	if interval <= 0 {
		interval = MinJanitorInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			n := m.Sweep(now, ttl)
			if onTick != nil {
				onTick(now, n)
			}
		}
	}
}
