package identity

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryCreateAndFind(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, User{ID: 1, Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 || created.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", created)
	}

	// FindByID is a pure read: repeated calls return identical results.
	for i := 0; i < 3; i++ {
		got, err := s.FindByID(ctx, 1)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got != created {
			t.Fatalf("unexpected user: %+v", got)
		}
	}
}

func TestInMemoryFindMiss(t *testing.T) {
	s := NewInMemory()
	if _, err := s.FindByID(context.Background(), 222); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInMemoryCreateConflict(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	if _, err := s.Create(ctx, User{ID: 2, Role: RoleUser}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, User{ID: 2, Role: RoleUser})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if err.Error() != "User with id: 2 already exists." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestInMemoryCreateRejectsUnknownRole(t *testing.T) {
	s := NewInMemory()
	_, err := s.Create(context.Background(), User{ID: 9, Role: Role("owner")})
	var ire *InvalidRoleError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidRoleError, got %v", err)
	}
}

func TestInMemoryCreateManyFailFast(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	if _, err := s.Create(ctx, User{ID: 3, Role: RoleUser}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.CreateMany(ctx, []User{
		{ID: 4, Role: RoleUser},
		{ID: 3, Role: RoleUser},
		{ID: 5, Role: RoleUser},
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if err.Error() != "User with id: 3 already exists." {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	// No partial commit is visible after the aborted batch.
	if _, err := s.FindByID(ctx, 4); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected id 4 absent, got %v", err)
	}
	if _, err := s.FindByID(ctx, 5); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected id 5 absent, got %v", err)
	}
}

func TestInMemoryCreateManyPreservesOrder(t *testing.T) {
	s := NewInMemory()
	batch := []User{
		{ID: 3, Role: RoleUser},
		{ID: 4, Role: RoleUser},
		{ID: 5, Role: RoleUser},
	}
	created, err := s.CreateMany(context.Background(), batch)
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	if len(created) != len(batch) {
		t.Fatalf("expected %d users, got %d", len(batch), len(created))
	}
	for i := range batch {
		if created[i] != batch[i] {
			t.Fatalf("order or fields mutated at %d: %+v", i, created[i])
		}
	}
}

func TestInMemoryDelete(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	if _, err := s.Create(ctx, User{ID: 4, Role: RoleUser}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.DeleteByID(ctx, 4); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	err := s.DeleteByID(ctx, 4)
	if err == nil {
		t.Fatal("expected miss")
	}
	if err.Error() != "User with id: 4 is not found." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
