package identity

import (
	"context"
	"sync"
)

// InMemory implements Store with in-process concurrency safety. Used by
// tests and by local development when no database DSN is configured.
type InMemory struct {
	mu    sync.RWMutex
	users map[int64]User
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty directory.
func NewInMemory() *InMemory {
	return &InMemory{users: make(map[int64]User)}
}

func (s *InMemory) FindByID(ctx context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *InMemory) Create(ctx context.Context, u User) (User, error) {
	if err := validateUser(u); err != nil {
		return User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return User{}, &AlreadyExistsError{ID: u.ID}
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *InMemory) CreateMany(ctx context.Context, users []User) ([]User, error) {
	for _, u := range users {
		if err := validateUser(u); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Fail fast before touching the map so a conflict leaves no partial batch.
	seen := make(map[int64]struct{}, len(users))
	for _, u := range users {
		if _, ok := s.users[u.ID]; ok {
			return nil, &AlreadyExistsError{ID: u.ID}
		}
		if _, ok := seen[u.ID]; ok {
			return nil, &AlreadyExistsError{ID: u.ID}
		}
		seen[u.ID] = struct{}{}
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		s.users[u.ID] = u
		out = append(out, u)
	}
	return out, nil
}

func (s *InMemory) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.users, id)
	return nil
}
