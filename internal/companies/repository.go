package companies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cadence-platform/internal/status"
)

// PostgresRepo persists companies and contacts.
//
// NOTE: This repository assumes the following tables exist:
// - empresas (PK dominio)
// - contatos (FK empresa_dominio -> empresas.dominio)
//
// Writes are last-write-wins at the row level; there is no version column.
// That matches the dashboard's historical behavior.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const companyColumns = `
dominio, nome, COALESCE(nome_gmn, ''), COALESCE(cadence_status, ''),
COALESCE(scraping_status, ''), COALESCE(scraping_error_type, ''),
total_tentativas, proxima_tentativa_em,
COALESCE(ultimo_erro, ''), ultimo_erro_em,
created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (Company, error) {
	var c Company
	var cadence string
	err := row.Scan(
		&c.Domain,
		&c.Name,
		&c.GMNName,
		&cadence,
		&c.ScrapingStatus,
		&c.ScrapingErrorType,
		&c.TotalAttempts,
		&c.NextAttemptAt,
		&c.LastError,
		&c.LastErrorAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Company{}, err
	}
	c.CadenceStatus = status.CadenceStatus(cadence)
	return c, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Company, error) {
	q := `SELECT ` + companyColumns + ` FROM empresas WHERE 1=1`
	args := []any{}
	if f.CadenceStatus != "" {
		args = append(args, f.CadenceStatus)
		q += fmt.Sprintf(" AND cadence_status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		q += fmt.Sprintf(" AND (dominio ILIKE $%d OR nome ILIKE $%d OR nome_gmn ILIKE $%d)", len(args), len(args), len(args))
	}
	args = append(args, f.Limit)
	q += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, domain string) (Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM empresas WHERE dominio = $1`
	c, err := scanCompany(r.db.QueryRowContext(ctx, q, domain))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	return c, nil
}

func (r *PostgresRepo) UpdateCadenceStatus(ctx context.Context, domain string, to status.CadenceStatus, updatedAt time.Time) error {
	const q = `
UPDATE empresas
SET cadence_status = $2, updated_at = $3
WHERE dominio = $1
`
	res, err := r.db.ExecContext(ctx, q, domain, string(to), updatedAt)
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

func (r *PostgresRepo) IncrementAttempts(ctx context.Context, domain string, nextAttemptAt *time.Time, updatedAt time.Time) error {
	// Increment in SQL so concurrent reporters never lose an attempt.
	const q = `
UPDATE empresas
SET total_tentativas = total_tentativas + 1,
    proxima_tentativa_em = $2,
    updated_at = $3
WHERE dominio = $1
`
	res, err := r.db.ExecContext(ctx, q, domain, nextAttemptAt, updatedAt)
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

func (r *PostgresRepo) ListContacts(ctx context.Context, domain string) ([]Contact, error) {
	const q = `
SELECT id, empresa_dominio, tipo, valor, status, COALESCE(origem, ''),
       whatsapp_valido, whatsapp_business, origem_gmn, created_at, updated_at
FROM contatos
WHERE empresa_dominio = $1
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contact, 0)
	for rows.Next() {
		var ct Contact
		var tipo, st string
		if err := rows.Scan(
			&ct.ID, &ct.CompanyDomain, &tipo, &ct.Value, &st, &ct.Source,
			&ct.WhatsAppValid, &ct.WhatsAppBusiness, &ct.FromGMN,
			&ct.CreatedAt, &ct.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ct.Type = ContactType(tipo)
		ct.Status = status.ContactStatus(st)
		out = append(out, ct)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) InsertContact(ctx context.Context, ct Contact) error {
	const q = `
INSERT INTO contatos
  (id, empresa_dominio, tipo, valor, status, origem, whatsapp_valido, whatsapp_business, origem_gmn, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := r.db.ExecContext(ctx, q,
		ct.ID, ct.CompanyDomain, string(ct.Type), ct.Value, string(ct.Status), ct.Source,
		ct.WhatsAppValid, ct.WhatsAppBusiness, ct.FromGMN, ct.CreatedAt, ct.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) UpdateContactStatus(ctx context.Context, id string, to status.ContactStatus, updatedAt time.Time) error {
	const q = `UPDATE contatos SET status = $2, updated_at = $3 WHERE id = $1`
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
