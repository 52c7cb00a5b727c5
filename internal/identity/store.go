package identity

import "context"

// Store describes persistence for the identity directory. Uniqueness of the
// principal id is enforced at this layer: implementations perform the
// existence check and the insert inside one consistent view, with the
// database unique constraint as the final arbiter under concurrency.
type Store interface {
	FindByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, u User) (User, error)
	// CreateMany provisions a batch fail-fast: the first conflicting id
	// aborts the whole batch and no partial commit is visible to the caller.
	CreateMany(ctx context.Context, users []User) ([]User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// validateUser rejects records that would corrupt the directory.
func validateUser(u User) error {
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return &InvalidRoleError{Role: string(u.Role)}
	}
	return nil
}
