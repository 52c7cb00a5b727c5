// Package task implements the task store and the service applying the
// identity authorization policy in front of it.
package task

import (
	"errors"
	"time"
)

// Task is plain data owned by a principal. The owner id is the basis for the
// non-admin branch of the authorization policy; there are no invariants
// beyond existence.
type Task struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	From      *string    `json:"from,omitempty"`
	To        *string    `json:"to,omitempty"`
	AlertAt   *time.Time `json:"alertAt,omitempty"`
	EventDate *string    `json:"eventDate,omitempty"`
	OwnerID   int64      `json:"userId"`
}

// Input is the externally supplied task shape.
type Input struct {
	Name      string
	State     string
	From      *string
	To        *string
	AlertAt   *time.Time
	EventDate *string
}

// ErrTaskNotFound text is part of the API contract.
var ErrTaskNotFound = errors.New("Task not found.")
