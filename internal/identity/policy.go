package identity

// Authorize is the self-or-admin decision applied uniformly to every
// identity- and resource-scoped operation. Pure: no I/O, no state.
func Authorize(actor User, targetID int64) error {
	if actor.Role == RoleAdmin || actor.ID == targetID {
		return nil
	}
	return ErrUnauthorized
}

// RequireAdmin denies everyone but admins. Bulk provisioning is admin-only
// unconditionally: a non-admin's own id can never name a not-yet-existing
// other user in a batch, so there is no self case to carve out.
func RequireAdmin(actor User) error {
	if actor.Role != RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}
