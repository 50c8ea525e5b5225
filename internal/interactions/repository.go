package interactions

import (
	"context"
	"database/sql"
	"time"

	"cadence-platform/internal/status"
)

// PostgresRepo persists interactions.
//
// NOTE: assumes table interacoes with FK empresa_dominio -> empresas.dominio.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListByCompany(ctx context.Context, domain string) ([]Interaction, error) {
	const q = `
SELECT id, empresa_dominio, canal, direcao, status,
       COALESCE(session_id, ''), COALESCE(template_id, ''),
       COALESCE(resposta_ia, ''), COALESCE(resumo_ia, ''),
       COALESCE(custo_estimado, 0),
       created_at, updated_at, ended_at
FROM interacoes
WHERE empresa_dominio = $1
ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interaction, 0)
	for rows.Next() {
		var in Interaction
		var canal, direcao, st string
		if err := rows.Scan(
			&in.ID, &in.CompanyDomain, &canal, &direcao, &st,
			&in.SessionID, &in.TemplateID,
			&in.AIResponse, &in.AISummary,
			&in.CostEstimate,
			&in.CreatedAt, &in.UpdatedAt, &in.EndedAt,
		); err != nil {
			return nil, err
		}
		in.Channel = Channel(canal)
		in.Direction = Direction(direcao)
		in.Status = status.InteractionStatus(st)
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, in Interaction) error {
	const q = `
INSERT INTO interacoes
  (id, empresa_dominio, canal, direcao, status, session_id, template_id,
   resposta_ia, resumo_ia, custo_estimado, created_at, updated_at, ended_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err := r.db.ExecContext(ctx, q,
		in.ID, in.CompanyDomain, string(in.Channel), string(in.Direction), string(in.Status),
		in.SessionID, in.TemplateID, in.AIResponse, in.AISummary, in.CostEstimate,
		in.CreatedAt, in.UpdatedAt, in.EndedAt,
	)
	return err
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id string, to status.InteractionStatus, endedAt *time.Time, updatedAt time.Time) error {
	const q = `
UPDATE interacoes
SET status = $2, ended_at = $3, updated_at = $4
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, id, string(to), endedAt, updatedAt)
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
