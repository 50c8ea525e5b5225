package appointments

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"cadence-platform/internal/status"
)

// PostgresRepo persists appointments.
//
// NOTE: assumes table agendamentos with FK empresa_dominio -> empresas.dominio.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context, domain string) ([]Appointment, error) {
	q := `
SELECT id, empresa_dominio, COALESCE(interacao_id, ''), COALESCE(erro_evento_id, ''),
       inicio, fim, status,
       COALESCE(calendar_event_id, ''), COALESCE(calendar_link, ''),
       created_at, updated_at
FROM agendamentos
`
	args := []any{}
	if domain != "" {
		q += ` WHERE empresa_dominio = $1`
		args = append(args, domain)
	}
	q += ` ORDER BY inicio DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		var a Appointment
		var st string
		if err := rows.Scan(
			&a.ID, &a.CompanyDomain, &a.InteractionID, &a.ErrorEventID,
			&a.StartsAt, &a.EndsAt, &st,
			&a.CalendarEventID, &a.CalendarLink,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.Status = status.AppointmentStatus(st)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, a Appointment) error {
	const q = `
INSERT INTO agendamentos
  (id, empresa_dominio, interacao_id, erro_evento_id, inicio, fim, status,
   calendar_event_id, calendar_link, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.CompanyDomain, a.InteractionID, a.ErrorEventID, a.StartsAt, a.EndsAt,
		string(a.Status), a.CalendarEventID, a.CalendarLink, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id string, to status.AppointmentStatus, updatedAt time.Time) error {
	const q = `UPDATE agendamentos SET status = $2, updated_at = $3 WHERE id = $1`
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
	Rows map[string]Appointment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]Appointment{}} }

func (r *MemoryRepo) List(ctx context.Context, domain string) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Appointment, 0)
	for _, a := range r.Rows {
		if domain != "" && a.CompanyDomain != domain {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[a.ID] = a
	return nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, to status.AppointmentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Rows[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = to
	a.UpdatedAt = updatedAt
	r.Rows[id] = a
	return nil
}
