package task

import "context"

// Store describes task persistence. Task ids are store-assigned.
type Store interface {
	Create(ctx context.Context, t Task) (Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	FindByID(ctx context.Context, id int64) (Task, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Task, error)
}
