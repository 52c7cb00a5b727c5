package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskdeck.org/internal/auth"
)

var testSecret = []byte("identity-test-secret")

func newTestService(t *testing.T) (*Service, *InMemory) {
	t.Helper()
	verifier, err := auth.NewHS256Verifier(testSecret)
	if err != nil {
		t.Fatalf("NewHS256Verifier: %v", err)
	}
	store := NewInMemory()
	return NewService(NewResolver(verifier, store), store), store
}

func ctxWithToken(t *testing.T, id int64, role string) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, id, role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return auth.ContextWithToken(context.Background(), token)
}

func TestRegisterProvisionsFromClaims(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Register(ctxWithToken(t, 1, "admin"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 1 || u.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := ctxWithToken(t, 2, "user")

	if _, err := svc.Login(ctx); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, err := svc.Register(ctx)
	if err == nil {
		t.Fatal("expected conflict")
	}
	if err.Error() != "User with id: 2 already exists." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginProvisionsUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Login(ctxWithToken(t, 2, "user"))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != 2 || u.Role != RoleUser {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestLoginPrefersStoredRole(t *testing.T) {
	svc, store := newTestService(t)
	if _, err := store.Create(context.Background(), User{ID: 5, Role: RoleUser}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Fresh claims assert admin, but storage is authoritative once provisioned.
	u, err := svc.Login(ctxWithToken(t, 5, "admin"))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected stored role, got %s", u.Role)
	}
}

func TestFindByIDRequiresSelfOrAdmin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	_, _ = store.Create(ctx, User{ID: 2, Role: RoleUser})
	_, _ = store.Create(ctx, User{ID: 3, Role: RoleUser})
	_, _ = store.Create(ctx, User{ID: 1, Role: RoleAdmin})

	if _, err := svc.FindByID(ctxWithToken(t, 3, "user"), 3); err != nil {
		t.Fatalf("self lookup: %v", err)
	}
	if _, err := svc.FindByID(ctxWithToken(t, 3, "user"), 2); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if u, err := svc.FindByID(ctxWithToken(t, 1, "admin"), 2); err != nil || u.ID != 2 {
		t.Fatalf("admin lookup: %+v %v", u, err)
	}
	if _, err := svc.FindByID(ctxWithToken(t, 1, "admin"), 222); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindByIDRejectsUnprovisionedCaller(t *testing.T) {
	svc, _ := newTestService(t)

	// Valid token, but the principal was never provisioned: the verify flow
	// never auto-registers.
	_, err := svc.FindByID(ctxWithToken(t, 7, "user"), 7)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteOwnThenMiss(t *testing.T) {
	svc, store := newTestService(t)
	_, _ = store.Create(context.Background(), User{ID: 4, Role: RoleUser})

	ok, err := svc.Delete(ctxWithToken(t, 4, "user"), 4)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}

	// Repeating the delete needs an admin caller since id 4 no longer exists.
	_, err = svc.Delete(ctxWithToken(t, 4, "user"), 4)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected caller resolution failure, got %v", err)
	}
}

func TestDeleteMissByAdmin(t *testing.T) {
	svc, store := newTestService(t)
	_, _ = store.Create(context.Background(), User{ID: 1, Role: RoleAdmin})

	_, err := svc.Delete(ctxWithToken(t, 1, "admin"), 4)
	if err == nil {
		t.Fatal("expected miss")
	}
	if err.Error() != "User with id: 4 is not found." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDeleteOtherDenied(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	_, _ = store.Create(ctx, User{ID: 2, Role: RoleUser})
	_, _ = store.Create(ctx, User{ID: 5, Role: RoleUser})

	if _, err := svc.Delete(ctxWithToken(t, 2, "user"), 5); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// The denied write left the target untouched.
	if _, err := store.FindByID(ctx, 5); err != nil {
		t.Fatalf("target should still exist: %v", err)
	}
}

func TestCreateManyAdminEchoesInput(t *testing.T) {
	svc, store := newTestService(t)
	_, _ = store.Create(context.Background(), User{ID: 1, Role: RoleAdmin})

	inputs := []UserInput{
		{ID: 3, Role: "user"},
		{ID: 4, Role: "user"},
		{ID: 5, Role: "user"},
	}
	created, err := svc.CreateMany(ctxWithToken(t, 1, "admin"), inputs)
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	for i, in := range inputs {
		if created[i].ID != in.ID || string(created[i].Role) != in.Role {
			t.Fatalf("field mutation at %d: %+v", i, created[i])
		}
	}
}

func TestCreateManyRequiresAdmin(t *testing.T) {
	svc, store := newTestService(t)
	_, _ = store.Create(context.Background(), User{ID: 3, Role: RoleUser})

	_, err := svc.CreateMany(ctxWithToken(t, 3, "user"), []UserInput{{ID: 3, Role: "user"}})
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestOperationsWithoutToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx); !errors.Is(err, auth.ErrNoAuthToken) {
		t.Fatalf("Login: expected ErrNoAuthToken, got %v", err)
	}
	if _, err := svc.FindByID(ctx, 1); !errors.Is(err, auth.ErrNoAuthToken) {
		t.Fatalf("FindByID: expected ErrNoAuthToken, got %v", err)
	}
	if _, err := svc.Delete(ctx, 1); !errors.Is(err, auth.ErrNoAuthToken) {
		t.Fatalf("Delete: expected ErrNoAuthToken, got %v", err)
	}
}

func TestOperationsWithMalformedToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := auth.ContextWithToken(context.Background(), "incorrect token")

	_, err := svc.FindByID(ctx, 1)
	if !auth.IsMalformedToken(err) {
		t.Fatalf("expected malformed token error, got %v", err)
	}
	if err.Error() != "jwt malformed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
