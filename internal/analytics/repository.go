package analytics

import (
	"context"
	"database/sql"
	"time"

	"cadence-platform/internal/appointments"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/status"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"
)

// PostgresRepo reads the raw rows the aggregations consume. Each query
// projects only the columns the service actually uses; the structs come back
// partially hydrated and are not meant to round-trip to the owning repos.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListCompanies(ctx context.Context) ([]companies.Company, error) {
	const q = `SELECT dominio, COALESCE(cadence_status, '') FROM empresas`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]companies.Company, 0)
	for rows.Next() {
		var c companies.Company
		var st string
		if err := rows.Scan(&c.Domain, &st); err != nil {
			return nil, err
		}
		c.CadenceStatus = status.CadenceStatus(st)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListInteractions(ctx context.Context, from, to time.Time) ([]interactions.Interaction, error) {
	const q = `
SELECT id, empresa_dominio, canal, status, COALESCE(template_id, ''),
       COALESCE(custo_estimado, 0), created_at
FROM interacoes
WHERE created_at >= $1 AND created_at < $2
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interactions.Interaction, 0)
	for rows.Next() {
		var in interactions.Interaction
		var canal, st string
		if err := rows.Scan(&in.ID, &in.CompanyDomain, &canal, &st, &in.TemplateID, &in.CostEstimate, &in.CreatedAt); err != nil {
			return nil, err
		}
		in.Channel = interactions.Channel(canal)
		in.Status = status.InteractionStatus(st)
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListAppointments(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	const q = `
SELECT id, empresa_dominio, COALESCE(interacao_id, ''), status, created_at
FROM agendamentos
WHERE created_at >= $1 AND created_at < $2
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		var a appointments.Appointment
		var st string
		if err := rows.Scan(&a.ID, &a.CompanyDomain, &a.InteractionID, &st, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Status = status.AppointmentStatus(st)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListFollowUps(ctx context.Context) ([]followups.Task, error) {
	const q = `SELECT id, empresa_dominio, status FROM followups`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]followups.Task, 0)
	for rows.Next() {
		var t followups.Task
		var st string
		if err := rows.Scan(&t.ID, &t.CompanyDomain, &st); err != nil {
			return nil, err
		}
		t.Status = status.FollowUpStatus(st)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListErrorEvents(ctx context.Context) ([]events.ErrorEvent, error) {
	const q = `SELECT id, empresa_dominio, status_processamento FROM eventos_erro`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.ErrorEvent, 0)
	for rows.Next() {
		var e events.ErrorEvent
		var st string
		if err := rows.Scan(&e.ID, &e.CompanyDomain, &st); err != nil {
			return nil, err
		}
		e.ProcessingStatus = events.ProcessingStatus(st)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListTemplates(ctx context.Context) ([]templates.Template, error) {
	const q = `SELECT id, canal, nome FROM templates_mensagem`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]templates.Template, 0)
	for rows.Next() {
		var t templates.Template
		var canal string
		if err := rows.Scan(&t.ID, &canal, &t.Name); err != nil {
			return nil, err
		}
		t.Channel = templates.Channel(canal)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListLinks(ctx context.Context) ([]tracking.TrackedLink, error) {
	const q = `SELECT id, codigo, COALESCE(rotulo, '') FROM links_rastreados`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tracking.TrackedLink, 0)
	for rows.Next() {
		var l tracking.TrackedLink
		if err := rows.Scan(&l.ID, &l.Code, &l.Label); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListClicks(ctx context.Context, from, to time.Time) ([]tracking.LinkClick, error) {
	const q = `
SELECT id, link_id, clicado_em
FROM cliques_link
WHERE clicado_em >= $1 AND clicado_em < $2
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tracking.LinkClick, 0)
	for rows.Next() {
		var c tracking.LinkClick
		if err := rows.Scan(&c.ID, &c.LinkID, &c.ClickedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
