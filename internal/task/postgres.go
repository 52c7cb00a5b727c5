package task

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

var _ Store = (*PGStore)(nil)

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const taskColumns = `id, name, state, range_from, range_to, alert_at, event_date, user_id`

func (s *PGStore) Create(ctx context.Context, t Task) (Task, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into tasks(name, state, range_from, range_to, alert_at, event_date, user_id)
		values($1,$2,$3,$4,$5,$6,$7)
		returning id`,
		t.Name, t.State, t.From, t.To, t.AlertAt, t.EventDate, t.OwnerID,
	)
	if err := row.Scan(&t.ID); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *PGStore) Update(ctx context.Context, t Task) (Task, error) {
	res, err := s.db.ExecContext(ctx, `
		update tasks
		set name=$2, state=$3, range_from=$4, range_to=$5, alert_at=$6, event_date=$7
		where id=$1`,
		t.ID, t.Name, t.State, t.From, t.To, t.AlertAt, t.EventDate,
	)
	if err != nil {
		return Task{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Task{}, err
	}
	if affected == 0 {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (Task, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+taskColumns+` from tasks where id=$1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *PGStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from tasks where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *PGStore) ListByOwner(ctx context.Context, ownerID int64) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+taskColumns+` from tasks where user_id=$1 order by id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var t Task
	if err := row.Scan(&t.ID, &t.Name, &t.State, &t.From, &t.To, &t.AlertAt, &t.EventDate, &t.OwnerID); err != nil {
		return Task{}, err
	}
	return t, nil
}
