package followups

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"cadence-platform/internal/status"
)

// PostgresRepo persists follow-up tasks.
//
// NOTE: assumes table followups with FKs empresa_dominio and interacao_id.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context, domain string) ([]Task, error) {
	q := `
SELECT id, empresa_dominio, COALESCE(interacao_id, ''), status, data_prevista,
       tentativas, COALESCE(detalhes, ''), created_at, updated_at
FROM followups
`
	args := []any{}
	if domain != "" {
		q += ` WHERE empresa_dominio = $1`
		args = append(args, domain)
	}
	q += ` ORDER BY data_prevista`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		var t Task
		var st string
		if err := rows.Scan(
			&t.ID, &t.CompanyDomain, &t.InteractionID, &st, &t.DueAt,
			&t.Attempts, &t.Details, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Status = status.FollowUpStatus(st)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, t Task) error {
	const q = `
INSERT INTO followups
  (id, empresa_dominio, interacao_id, status, data_prevista, tentativas, detalhes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.CompanyDomain, t.InteractionID, string(t.Status), t.DueAt,
		t.Attempts, t.Details, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id string, to status.FollowUpStatus, updatedAt time.Time) error {
	const q = `UPDATE followups SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, string(to), updatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryRepo is a simple in-memory repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	Rows map[string]Task
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]Task{}} }

func (r *MemoryRepo) List(ctx context.Context, domain string) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Task, 0)
	for _, t := range r.Rows {
		if domain != "" && t.CompanyDomain != domain {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, t Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[t.ID] = t
	return nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, to status.FollowUpStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Rows[id]
	if !ok {
		return ErrNotFound
	}
	t.Status = to
	t.UpdatedAt = updatedAt
	r.Rows[id] = t
	return nil
}
