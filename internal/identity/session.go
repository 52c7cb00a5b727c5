package identity

import (
	"context"
	"errors"

	"taskdeck.org/internal/auth"
)

// Resolver reconciles verified claims against the directory. Login and
// register are deliberately asymmetric: login silently returns an existing
// principal and provisions a missing one, register refuses to touch an
// existing id.
type Resolver struct {
	verifier auth.Verifier
	users    Store
}

func NewResolver(verifier auth.Verifier, users Store) *Resolver {
	return &Resolver{verifier: verifier, users: users}
}

// ClaimsFromRequest extracts and verifies the credential attached to the
// current request.
func (r *Resolver) ClaimsFromRequest(ctx context.Context) (auth.Claims, error) {
	token, ok := auth.TokenFromContext(ctx)
	if !ok {
		return auth.Claims{}, auth.ErrNoAuthToken
	}
	return r.verifier.Verify(token)
}

// Login returns the stored principal when it exists; the role comes from
// storage, not from the fresh claims. A miss provisions the principal from
// the claims as a side effect of first login.
func (r *Resolver) Login(ctx context.Context, claims auth.Claims) (User, error) {
	u, err := r.users.FindByID(ctx, claims.UserID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	return r.provision(ctx, claims)
}

// Register provisions a new principal and fails on an existing id.
func (r *Resolver) Register(ctx context.Context, claims auth.Claims) (User, error) {
	return r.provision(ctx, claims)
}

// VerifyLoggedUser resolves the caller's own principal from the request
// credential. Unlike login it never provisions: this is the authorization
// gate every authenticated operation passes through.
func (r *Resolver) VerifyLoggedUser(ctx context.Context) (User, error) {
	claims, err := r.ClaimsFromRequest(ctx)
	if err != nil {
		return User{}, err
	}
	return r.users.FindByID(ctx, claims.UserID)
}

func (r *Resolver) provision(ctx context.Context, claims auth.Claims) (User, error) {
	role, err := ParseRole(claims.Role)
	if err != nil {
		return User{}, err
	}
	return r.users.Create(ctx, User{ID: claims.UserID, Role: role})
}
