package templates

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
)

// PostgresRepo persists message templates.
//
// NOTE: assumes table templates_mensagem.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context, channel Channel) ([]Template, error) {
	q := `
SELECT id, canal, codigo_etapa, nome, COALESCE(assunto, ''), corpo, ativo,
       COALESCE(descricao, ''), created_at, updated_at
FROM templates_mensagem
`
	args := []any{}
	if channel != "" {
		q += ` WHERE canal = $1`
		args = append(args, string(channel))
	}
	q += ` ORDER BY codigo_etapa, nome`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Template, 0)
	for rows.Next() {
		var t Template
		var canal string
		if err := rows.Scan(
			&t.ID, &canal, &t.StageCode, &t.Name, &t.Subject, &t.Body, &t.Active,
			&t.Description, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Channel = Channel(canal)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Template, error) {
	const q = `
SELECT id, canal, codigo_etapa, nome, COALESCE(assunto, ''), corpo, ativo,
       COALESCE(descricao, ''), created_at, updated_at
FROM templates_mensagem
WHERE id = $1
`
	var t Template
	var canal string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &canal, &t.StageCode, &t.Name, &t.Subject, &t.Body, &t.Active,
		&t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	t.Channel = Channel(canal)
	return t, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, t Template) error {
	const q = `
INSERT INTO templates_mensagem
  (id, canal, codigo_etapa, nome, assunto, corpo, ativo, descricao, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, string(t.Channel), t.StageCode, t.Name, t.Subject, t.Body, t.Active,
		t.Description, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, t Template) error {
	const q = `
UPDATE templates_mensagem
SET canal = $2, codigo_etapa = $3, nome = $4, assunto = $5, corpo = $6,
    ativo = $7, descricao = $8, updated_at = $9
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		t.ID, string(t.Channel), t.StageCode, t.Name, t.Subject, t.Body,
		t.Active, t.Description, t.UpdatedAt,
	)
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

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM templates_mensagem WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
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
	Rows map[string]Template
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]Template{}} }

func (r *MemoryRepo) List(ctx context.Context, channel Channel) ([]Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Template, 0)
	for _, t := range r.Rows {
		if channel != "" && t.Channel != channel {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StageCode != out[j].StageCode {
			return out[i].StageCode < out[j].StageCode
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Rows[id]
	if !ok {
		return Template{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, t Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[t.ID] = t
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, t Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Rows[t.ID]; !ok {
		return ErrNotFound
	}
	r.Rows[t.ID] = t
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.Rows, id)
	return nil
}
