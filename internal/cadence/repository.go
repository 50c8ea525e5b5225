package cadence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
)

// PostgresRepo persists rule configurations.
//
// NOTE: assumes table config_cadencia. Weekdays are stored as a
// comma-separated code list; the set is tiny and ordering is cosmetic.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) FindActive(ctx context.Context) (RuleConfig, bool, error) {
	const q = `
SELECT id, nome, horario_inicio_funcionamento, horario_fim_funcionamento,
       dias_semana_funcionamento,
       max_cadencias_por_empresa, cooldown_entre_cadencias_dias,
       max_mensagens_dia1, max_mensagens_dia2, max_mensagens_dia3,
       intervalo_reforco1_horas, intervalo_reforco2_horas,
       limite_max_novas_abordagens_dia,
       intervalo_min_entre_mensagens_global_segundos,
       intervalo_max_entre_mensagens_global_segundos,
       ativo, created_at, updated_at
FROM config_cadencia
WHERE ativo = true
ORDER BY updated_at DESC
LIMIT 1
`
	var c RuleConfig
	var weekdays string
	err := r.db.QueryRowContext(ctx, q).Scan(
		&c.ID, &c.Name, &c.BusinessHoursStart, &c.BusinessHoursEnd,
		&weekdays,
		&c.MaxCadencesPerCompany, &c.CooldownDays,
		&c.MaxMessagesDay1, &c.MaxMessagesDay2, &c.MaxMessagesDay3,
		&c.Reinforcement1Hours, &c.Reinforcement2Hours,
		&c.DailyNewApproachLimit,
		&c.MinIntervalSeconds, &c.MaxIntervalSeconds,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RuleConfig{}, false, nil
		}
		return RuleConfig{}, false, err
	}
	if weekdays != "" {
		c.Weekdays = strings.Split(weekdays, ",")
	}
	return c, true, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, c RuleConfig) error {
	const q = `
INSERT INTO config_cadencia
  (id, nome, horario_inicio_funcionamento, horario_fim_funcionamento,
   dias_semana_funcionamento,
   max_cadencias_por_empresa, cooldown_entre_cadencias_dias,
   max_mensagens_dia1, max_mensagens_dia2, max_mensagens_dia3,
   intervalo_reforco1_horas, intervalo_reforco2_horas,
   limite_max_novas_abordagens_dia,
   intervalo_min_entre_mensagens_global_segundos,
   intervalo_max_entre_mensagens_global_segundos,
   ativo, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.BusinessHoursStart, c.BusinessHoursEnd,
		strings.Join(c.Weekdays, ","),
		c.MaxCadencesPerCompany, c.CooldownDays,
		c.MaxMessagesDay1, c.MaxMessagesDay2, c.MaxMessagesDay3,
		c.Reinforcement1Hours, c.Reinforcement2Hours,
		c.DailyNewApproachLimit,
		c.MinIntervalSeconds, c.MaxIntervalSeconds,
		c.Active, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, c RuleConfig) error {
	const q = `
UPDATE config_cadencia
SET nome = $2,
    horario_inicio_funcionamento = $3, horario_fim_funcionamento = $4,
    dias_semana_funcionamento = $5,
    max_cadencias_por_empresa = $6, cooldown_entre_cadencias_dias = $7,
    max_mensagens_dia1 = $8, max_mensagens_dia2 = $9, max_mensagens_dia3 = $10,
    intervalo_reforco1_horas = $11, intervalo_reforco2_horas = $12,
    limite_max_novas_abordagens_dia = $13,
    intervalo_min_entre_mensagens_global_segundos = $14,
    intervalo_max_entre_mensagens_global_segundos = $15,
    ativo = $16, updated_at = $17
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.BusinessHoursStart, c.BusinessHoursEnd,
		strings.Join(c.Weekdays, ","),
		c.MaxCadencesPerCompany, c.CooldownDays,
		c.MaxMessagesDay1, c.MaxMessagesDay2, c.MaxMessagesDay3,
		c.Reinforcement1Hours, c.Reinforcement2Hours,
		c.DailyNewApproachLimit,
		c.MinIntervalSeconds, c.MaxIntervalSeconds,
		c.Active, c.UpdatedAt,
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

// MemoryRepo is a simple in-memory repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	Rows map[string]RuleConfig
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]RuleConfig{}} }

func (r *MemoryRepo) FindActive(ctx context.Context) (RuleConfig, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Rows {
		if c.Active {
			return c, true, nil
		}
	}
	return RuleConfig{}, false, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, c RuleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[c.ID] = c
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, c RuleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Rows[c.ID]; !ok {
		return ErrNotFound
	}
	r.Rows[c.ID] = c
	return nil
}
