package task

import (
	"context"
	"sort"
	"sync"
)

// InMemory implements Store with in-process concurrency safety. Used by
// tests and by local development when no database DSN is configured.
type InMemory struct {
	mu    sync.RWMutex
	seq   int64
	tasks map[int64]Task
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty task store.
func NewInMemory() *InMemory {
	return &InMemory{tasks: make(map[int64]Task)}
}

func (s *InMemory) Create(ctx context.Context, t Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t.ID = s.seq
	s.tasks[t.ID] = t
	return t, nil
}

func (s *InMemory) Update(ctx context.Context, t Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return Task{}, ErrTaskNotFound
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *InMemory) FindByID(ctx context.Context, id int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *InMemory) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *InMemory) ListByOwner(ctx context.Context, ownerID int64) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Task
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
