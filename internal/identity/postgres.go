package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

var _ Store = (*PGStore)(nil)

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx, `select id, role from users where id=$1`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *PGStore) Create(ctx context.Context, u User) (User, error) {
	if err := validateUser(u); err != nil {
		return User{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertUser(ctx, tx, u); err != nil {
		return User{}, err
	}
	if err := tx.Commit(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *PGStore) CreateMany(ctx context.Context, users []User) ([]User, error) {
	for _, u := range users {
		if err := validateUser(u); err != nil {
			return nil, err
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]User, 0, len(users))
	for _, u := range users {
		// First conflict aborts the transaction; nothing is committed.
		if err := insertUser(ctx, tx, u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PGStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from users where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// insertUser performs the check-then-insert inside the caller's transaction.
// The unique constraint on users.id remains the arbiter for concurrent
// provisioning of the same id.
func insertUser(ctx context.Context, tx *sql.Tx, u User) error {
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`select exists(select 1 from users where id=$1)`, u.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return &AlreadyExistsError{ID: u.ID}
	}
	if _, err := tx.ExecContext(ctx,
		`insert into users(id, role) values($1,$2)`, u.ID, u.Role); err != nil {
		if isUniqueViolation(err) {
			return &AlreadyExistsError{ID: u.ID}
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
