package projects

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store keeps projects between requests
type Store interface {
	Get(ctx context.Context, id string) (*Project, error)
	Put(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	// DeleteOlderThan removes projects created before cutoff and reports how many
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// MemoryStore keeps projects in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

// NewMemoryStore creates an empty in-memory project store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*Project)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryStore) Put(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = clone(p)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, p := range m.projects {
		if p.CreatedAt.Before(cutoff) {
			delete(m.projects, id)
			n++
		}
	}
	return n, nil
}

func clone(p *Project) *Project {
	cp := *p
	cp.Files = append([]File(nil), p.Files...)
	return &cp
}
