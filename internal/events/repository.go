package events

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// PostgresRepo persists error events.
//
// NOTE: assumes table eventos_erro with FK empresa_dominio -> empresas.dominio.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context, domain string) ([]ErrorEvent, error) {
	q := `
SELECT id, empresa_dominio, tipo_erro, COALESCE(url_erro, ''), detectado_em,
       status_processamento, created_at, updated_at
FROM eventos_erro
`
	args := []any{}
	if domain != "" {
		q += ` WHERE empresa_dominio = $1`
		args = append(args, domain)
	}
	q += ` ORDER BY detectado_em DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ErrorEvent, 0)
	for rows.Next() {
		var e ErrorEvent
		var st string
		if err := rows.Scan(
			&e.ID, &e.CompanyDomain, &e.ErrorType, &e.ErrorURL, &e.DetectedAt,
			&st, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.ProcessingStatus = ProcessingStatus(st)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, e ErrorEvent) error {
	const q = `
INSERT INTO eventos_erro
  (id, empresa_dominio, tipo_erro, url_erro, detectado_em, status_processamento, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.CompanyDomain, e.ErrorType, e.ErrorURL, e.DetectedAt,
		string(e.ProcessingStatus), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) UpdateProcessingStatus(ctx context.Context, id string, to ProcessingStatus, updatedAt time.Time) error {
	const q = `UPDATE eventos_erro SET status_processamento = $2, updated_at = $3 WHERE id = $1`
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
	Rows map[string]ErrorEvent
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]ErrorEvent{}} }

func (r *MemoryRepo) List(ctx context.Context, domain string) ([]ErrorEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ErrorEvent, 0)
	for _, e := range r.Rows {
		if domain != "" && e.CompanyDomain != domain {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.After(out[j].DetectedAt) })
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, e ErrorEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[e.ID] = e
	return nil
}

func (r *MemoryRepo) UpdateProcessingStatus(ctx context.Context, id string, to ProcessingStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Rows[id]
	if !ok {
		return ErrNotFound
	}
	e.ProcessingStatus = to
	e.UpdatedAt = updatedAt
	r.Rows[id] = e
	return nil
}
