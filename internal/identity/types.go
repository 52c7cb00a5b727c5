// Package identity holds the locally known principals and the authorization
// rules applied to every identity-scoped operation.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of principal roles. The external issuer asserts the
// role as a free string; the directory boundary rejects anything outside
// this enumeration.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates an externally supplied role value.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", &InvalidRoleError{Role: raw}
}

// User is a locally recorded principal. The id is assigned by the external
// credential issuer, never generated here. At most one User per id exists in
// the directory at any time.
type User struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// UserInput is the externally supplied shape for explicit provisioning.
type UserInput struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// Error texts below are part of the API contract; clients assert on them
// verbatim.
var (
	ErrUserNotFound = errors.New("User not found.")
	ErrUnauthorized = errors.New("Unauthorized.")
)

// AlreadyExistsError reports a provisioning conflict on an existing id.
type AlreadyExistsError struct {
	ID int64
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("User with id: %d already exists.", e.ID)
}

// NotFoundError reports a deletion miss.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with id: %d is not found.", e.ID)
}

// InvalidRoleError reports a role value outside the closed enumeration.
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("Invalid role: %s.", e.Role)
}
