package tracking

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// PostgresRepo persists tracked links and their clicks.
//
// NOTE: assumes tables links_rastreados and cliques_link (cliques_link.id is
// a bigserial, assigned by the database).

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) GetByCode(ctx context.Context, code string) (TrackedLink, error) {
	const q = `
SELECT id, codigo, url_destino, COALESCE(rotulo, ''), COALESCE(empresa_dominio, ''), created_at
FROM links_rastreados WHERE codigo = $1
`
	var l TrackedLink
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&l.ID, &l.Code, &l.TargetURL, &l.Label, &l.CompanyDomain, &l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return TrackedLink{}, ErrNotFound
	}
	if err != nil {
		return TrackedLink{}, err
	}
	return l, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, l TrackedLink) error {
	const q = `
INSERT INTO links_rastreados (id, codigo, url_destino, rotulo, empresa_dominio, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.ExecContext(ctx, q, l.ID, l.Code, l.TargetURL, l.Label, l.CompanyDomain, l.CreatedAt)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, companyDomain string) ([]TrackedLink, error) {
	q := `
SELECT id, codigo, url_destino, COALESCE(rotulo, ''), COALESCE(empresa_dominio, ''), created_at
FROM links_rastreados
`
	args := []any{}
	if companyDomain != "" {
		q += ` WHERE empresa_dominio = $1`
		args = append(args, companyDomain)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrackedLink, 0)
	for rows.Next() {
		var l TrackedLink
		if err := rows.Scan(&l.ID, &l.Code, &l.TargetURL, &l.Label, &l.CompanyDomain, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) RecordClick(ctx context.Context, c LinkClick) error {
	const q = `INSERT INTO cliques_link (link_id, clicado_em, user_agent) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, q, c.LinkID, c.ClickedAt, c.UserAgent)
	return err
}

func (r *PostgresRepo) ListClicks(ctx context.Context, linkID string, from, to time.Time) ([]LinkClick, error) {
	const q = `
SELECT id, link_id, clicado_em, COALESCE(user_agent, '')
FROM cliques_link
WHERE link_id = $1 AND clicado_em >= $2 AND clicado_em < $3
ORDER BY clicado_em
`
	rows, err := r.db.QueryContext(ctx, q, linkID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LinkClick, 0)
	for rows.Next() {
		var c LinkClick
		if err := rows.Scan(&c.ID, &c.LinkID, &c.ClickedAt, &c.UserAgent); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MemoryRepo is a simple in-memory repository for tests.

type MemoryRepo struct {
	mu     sync.Mutex
	Links  []TrackedLink
	Clicks []LinkClick
	nextID int64
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (TrackedLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.Links {
		if l.Code == code {
			return l, nil
		}
	}
	return TrackedLink{}, ErrNotFound
}

func (r *MemoryRepo) Insert(ctx context.Context, l TrackedLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Links = append(r.Links, l)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, companyDomain string) ([]TrackedLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TrackedLink, 0)
	for _, l := range r.Links {
		if companyDomain != "" && l.CompanyDomain != companyDomain {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) RecordClick(ctx context.Context, c LinkClick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.Clicks = append(r.Clicks, c)
	return nil
}

func (r *MemoryRepo) ListClicks(ctx context.Context, linkID string, from, to time.Time) ([]LinkClick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LinkClick, 0)
	for _, c := range r.Clicks {
		if c.LinkID != linkID {
			continue
		}
		if c.ClickedAt.Before(from) || !c.ClickedAt.Before(to) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClickedAt.Before(out[j].ClickedAt) })
	return out, nil
}
