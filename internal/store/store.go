// Package store archives generated plans in Postgres.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Plan is one archived generation.
type Plan struct {
	ID         uuid.UUID
	Name       string
	Goal       pgtype.Text
	Workout    string
	Diet       string
	Tips       string
	Motivation string
	CreatedAt  pgtype.Timestamptz
}

const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    goal        TEXT,
    workout     TEXT NOT NULL,
    diet        TEXT NOT NULL DEFAULT '',
    tips        TEXT NOT NULL DEFAULT '',
    motivation  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS plans_created_at_idx ON plans (created_at DESC);
`

// Migrate creates the plans table if it does not exist.
func (q *Queries) Migrate(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate plans: %w", err)
	}
	return nil
}

type CreatePlanParams struct {
	ID         uuid.UUID
	Name       string
	Goal       pgtype.Text
	Workout    string
	Diet       string
	Tips       string
	Motivation string
	CreatedAt  time.Time
}

const createPlan = `
INSERT INTO plans (id, name, goal, workout, diet, tips, motivation, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING
`

// CreatePlan inserts a plan. Re-delivering the same id is a no-op so the
// archive task can be retried safely.
func (q *Queries) CreatePlan(ctx context.Context, arg CreatePlanParams) error {
	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := q.db.Exec(ctx, createPlan,
		arg.ID,
		arg.Name,
		arg.Goal,
		arg.Workout,
		arg.Diet,
		arg.Tips,
		arg.Motivation,
		pgtype.Timestamptz{Time: createdAt, Valid: true},
	)
	return err
}

const getPlan = `
SELECT id, name, goal, workout, diet, tips, motivation, created_at
FROM plans WHERE id = $1
`

func (q *Queries) GetPlan(ctx context.Context, id uuid.UUID) (Plan, error) {
	var p Plan
	err := q.db.QueryRow(ctx, getPlan, id).Scan(
		&p.ID, &p.Name, &p.Goal, &p.Workout, &p.Diet, &p.Tips, &p.Motivation, &p.CreatedAt,
	)
	return p, err
}

const listRecentPlans = `
SELECT id, name, goal, workout, diet, tips, motivation, created_at
FROM plans ORDER BY created_at DESC LIMIT $1
`

func (q *Queries) ListRecentPlans(ctx context.Context, limit int32) ([]Plan, error) {
	rows, err := q.db.Query(ctx, listRecentPlans, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Goal, &p.Workout, &p.Diet, &p.Tips, &p.Motivation, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
