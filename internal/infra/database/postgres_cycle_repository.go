// internal/infra/database/postgres_cycle_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/notification"
)

const createCyclesTable = `CREATE TABLE IF NOT EXISTS poll_cycles (
    id           UUID PRIMARY KEY,
    from_date    BIGINT      NOT NULL,
    api_date     BIGINT      NOT NULL DEFAULT 0,
    items        INTEGER     NOT NULL DEFAULT 0,
    notified     INTEGER     NOT NULL DEFAULT 0,
    outcome      TEXT        NOT NULL,
    error        TEXT        NOT NULL DEFAULT '',
    started_at   TIMESTAMPTZ NOT NULL,
    finished_at  TIMESTAMPTZ NOT NULL
)`

const createCyclesIndex = `CREATE INDEX IF NOT EXISTS poll_cycles_started_at_idx ON poll_cycles (started_at DESC)`

type PostgresCycleRepository struct {
	db *sql.DB
}

func NewPostgresCycleRepository(db *sql.DB) *PostgresCycleRepository {
	return &PostgresCycleRepository{db: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r *PostgresCycleRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createCyclesTable, createCyclesIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating poll_cycles schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresCycleRepository) CreateCycle(ctx context.Context, cycle *notification.Cycle) error {
	query := `INSERT INTO poll_cycles (id, from_date, api_date, items, notified, outcome, error, started_at, finished_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		cycle.ID, cycle.From, cycle.CurrentDate, cycle.Items, cycle.Notified,
		cycle.Outcome, cycle.Error, cycle.StartedAt, cycle.FinishedAt)
	if err != nil {
		return fmt.Errorf("error creating poll cycle: %w", err)
	}
	return nil
}

func (r *PostgresCycleRepository) ListRecentCycles(ctx context.Context, limit int) ([]*notification.Cycle, error) {
	query := `SELECT id, from_date, api_date, items, notified, outcome, error, started_at, finished_at
              FROM poll_cycles ORDER BY started_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing poll cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*notification.Cycle
	for rows.Next() {
		c := &notification.Cycle{}
		if err := rows.Scan(&c.ID, &c.From, &c.CurrentDate, &c.Items, &c.Notified,
			&c.Outcome, &c.Error, &c.StartedAt, &c.FinishedAt); err != nil {
			return nil, fmt.Errorf("error scanning poll cycle row: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poll cycle rows: %w", err)
	}
	return cycles, nil
}
