package task

import (
	"context"

	"taskdeck.org/internal/identity"
)

// Service applies the self-or-admin policy in front of the task store.
// Every operation resolves the caller through the session resolver first;
// ownership of the targeted task is what the policy compares against.
type Service struct {
	sessions *identity.Resolver
	tasks    Store
}

func NewService(sessions *identity.Resolver, tasks Store) *Service {
	return &Service{sessions: sessions, tasks: tasks}
}

// Create stores a new task owned by the caller.
func (s *Service) Create(ctx context.Context, in Input) (Task, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return Task{}, err
	}
	return s.tasks.Create(ctx, Task{
		Name:      in.Name,
		State:     in.State,
		From:      in.From,
		To:        in.To,
		AlertAt:   in.AlertAt,
		EventDate: in.EventDate,
		OwnerID:   actor.ID,
	})
}

// FindByID returns the task to its owner or to an admin.
func (s *Service) FindByID(ctx context.Context, id int64) (Task, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return Task{}, err
	}
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := identity.Authorize(actor, t.OwnerID); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Update replaces the task fields, keeping id and owner.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Task, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return Task{}, err
	}
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := identity.Authorize(actor, t.OwnerID); err != nil {
		return Task{}, err
	}
	t.Name = in.Name
	t.State = in.State
	t.From = in.From
	t.To = in.To
	t.AlertAt = in.AlertAt
	t.EventDate = in.EventDate
	return s.tasks.Update(ctx, t)
}

// Delete removes the task; true on success mirrors the boolean contract.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return false, err
	}
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := identity.Authorize(actor, t.OwnerID); err != nil {
		return false, err
	}
	if err := s.tasks.DeleteByID(ctx, t.ID); err != nil {
		return false, err
	}
	return true, nil
}

// ListOwn returns the caller's tasks.
func (s *Service) ListOwn(ctx context.Context) ([]Task, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, actor.ID)
}
