package conversation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps history in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Exchange
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory history store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Exchange),
		now:      time.Now,
	}
}

func (m *MemoryStore) Append(ctx context.Context, sessionID, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], Exchange{
		Question:  question,
		Answer:    answer,
		CreatedAt: m.now(),
	})
	return nil
}

func (m *MemoryStore) ReadAll(ctx context.Context, sessionID string) ([]Exchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.sessions[sessionID]
	out := make([]Exchange, len(stored))
	copy(out, stored)
	return out, nil
}
