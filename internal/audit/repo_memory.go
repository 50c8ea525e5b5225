package audit

import (
	"context"
	"database/sql"
	"sync"
)

// PostgresRepo persists status-history entries.
//
// NOTE: assumes table historico_status, INSERT-only.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO historico_status
  (id, empresa_dominio, status_anterior, status_novo, actor_user_id, actor_role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.CompanyDomain, e.FromStatus, e.ToStatus, e.ActorUserID, e.ActorRole, e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, companyDomain string, limit int) ([]Entry, error) {
	const q = `
SELECT id, empresa_dominio, COALESCE(status_anterior, ''), status_novo,
       COALESCE(actor_user_id, ''), COALESCE(actor_role, ''), created_at
FROM historico_status
WHERE empresa_dominio = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, companyDomain, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.CompanyDomain, &e.FromStatus, &e.ToStatus,
			&e.ActorUserID, &e.ActorRole, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MemoryRepo is a simple in-memory append-only repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, companyDomain string, limit int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].CompanyDomain == companyDomain {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *MemoryRepo) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
