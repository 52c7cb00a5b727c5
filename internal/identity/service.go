package identity

import (
	"context"

	"taskdeck.org/internal/audit"
)

// Service is the user resource service. Every operation follows the same
// template: resolve the caller, determine the target id, consult the policy,
// then delegate to the directory and echo the result untransformed.
type Service struct {
	sessions *Resolver
	users    Store
}

func NewService(sessions *Resolver, users Store) *Service {
	return &Service{sessions: sessions, users: users}
}

// Login derives the principal from the request credential, provisioning it
// on first sight.
func (s *Service) Login(ctx context.Context) (User, error) {
	claims, err := s.sessions.ClaimsFromRequest(ctx)
	if err != nil {
		return User{}, err
	}
	u, err := s.sessions.Login(ctx, claims)
	if err != nil {
		return User{}, err
	}
	_ = audit.LogEvent(ctx, "identity.login", map[string]any{"user_id": u.ID})
	return u, nil
}

// Register explicitly provisions the principal asserted by the credential.
func (s *Service) Register(ctx context.Context) (User, error) {
	claims, err := s.sessions.ClaimsFromRequest(ctx)
	if err != nil {
		return User{}, err
	}
	u, err := s.sessions.Register(ctx, claims)
	if err != nil {
		return User{}, err
	}
	_ = audit.LogEvent(ctx, "identity.register", map[string]any{"user_id": u.ID})
	return u, nil
}

// FindByID returns the target principal to its owner or to an admin.
func (s *Service) FindByID(ctx context.Context, id int64) (User, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return User{}, err
	}
	if err := Authorize(actor, id); err != nil {
		return User{}, err
	}
	return s.users.FindByID(ctx, id)
}

// Delete removes the target principal. Reports true on success so the
// transport can echo the boolean contract.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return false, err
	}
	if err := Authorize(actor, id); err != nil {
		return false, err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return false, err
	}
	_ = audit.LogEvent(ctx, "identity.user.delete", map[string]any{
		"actor_id": actor.ID,
		"user_id":  id,
	})
	return true, nil
}

// CreateMany bulk-provisions principals. Admin only; conflicts abort the
// whole batch.
func (s *Service) CreateMany(ctx context.Context, inputs []UserInput) ([]User, error) {
	actor, err := s.sessions.VerifyLoggedUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(inputs))
	for _, in := range inputs {
		role, err := ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, User{ID: in.ID, Role: role})
	}
	created, err := s.users.CreateMany(ctx, users)
	if err != nil {
		return nil, err
	}
	_ = audit.LogEvent(ctx, "identity.user.create_many", map[string]any{
		"actor_id": actor.ID,
		"count":    len(created),
	})
	return created, nil
}
