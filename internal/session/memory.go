package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]models.Session{}}
}

func (m *MemoryStore) Create(_ context.Context, s models.Session) (models.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[s.ID]; ok {
		return existing.Clone(), false, nil
	}
	m.sessions[s.ID] = s.Clone()
	return s.Clone(), true, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// Sweep removes sessions whose last update is older than ttl and returns how many
// were dropped.
func (m *MemoryStore) Sweep(now time.Time, ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.UpdatedAt) > ttl {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval, ttl time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Sweep(now, ttl); n > 0 {
				logger.Info().Int("expired", n).Msg("idle sessions swept")
			}
		}
	}
}
