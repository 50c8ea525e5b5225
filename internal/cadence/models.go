package cadence

import (
	"errors"
	"fmt"
	"time"
)

// RuleConfig bounds how aggressively a company may be contacted. Exactly one
// row is active at a time, by upsert convention rather than a DB constraint;
// SaveRules always updates the active row in place when one exists.
//
// The dashboard reads and writes these limits; the execution automation is
// the component that actually honors them.

type RuleConfig struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"nome" db:"nome"`

	// Business hours in local wall-clock "HH:MM".
	BusinessHoursStart string `json:"horario_inicio_funcionamento" db:"horario_inicio_funcionamento"`
	BusinessHoursEnd   string `json:"horario_fim_funcionamento" db:"horario_fim_funcionamento"`

	// Weekdays the cadence may run on, as codes from WeekdayCodes.
	Weekdays []string `json:"dias_semana_funcionamento" db:"dias_semana_funcionamento"`

	MaxCadencesPerCompany int `json:"max_cadencias_por_empresa" db:"max_cadencias_por_empresa"`
	CooldownDays          int `json:"cooldown_entre_cadencias_dias" db:"cooldown_entre_cadencias_dias"`

	MaxMessagesDay1 int `json:"max_mensagens_dia1" db:"max_mensagens_dia1"`
	MaxMessagesDay2 int `json:"max_mensagens_dia2" db:"max_mensagens_dia2"`
	MaxMessagesDay3 int `json:"max_mensagens_dia3" db:"max_mensagens_dia3"`

	Reinforcement1Hours int `json:"intervalo_reforco1_horas" db:"intervalo_reforco1_horas"`
	Reinforcement2Hours int `json:"intervalo_reforco2_horas" db:"intervalo_reforco2_horas"`

	DailyNewApproachLimit int `json:"limite_max_novas_abordagens_dia" db:"limite_max_novas_abordagens_dia"`

	MinIntervalSeconds int `json:"intervalo_min_entre_mensagens_global_segundos" db:"intervalo_min_entre_mensagens_global_segundos"`
	MaxIntervalSeconds int `json:"intervalo_max_entre_mensagens_global_segundos" db:"intervalo_max_entre_mensagens_global_segundos"`

	Active bool `json:"ativo" db:"ativo"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const DefaultConfigName = "Configuração Principal"

// WeekdayCodes is the full set of accepted weekday codes, Monday first.
var WeekdayCodes = []string{"seg", "ter", "qua", "qui", "sex", "sab", "dom"}

// DefaultRules returns the observed production defaults.
func DefaultRules() RuleConfig {
	return RuleConfig{
		Name:                  DefaultConfigName,
		BusinessHoursStart:    "09:00",
		BusinessHoursEnd:      "18:00",
		Weekdays:              []string{"seg", "ter", "qua", "qui", "sex"},
		MaxCadencesPerCompany: 7,
		CooldownDays:          2,
		MaxMessagesDay1:       3,
		MaxMessagesDay2:       3,
		MaxMessagesDay3:       1,
		Reinforcement1Hours:   3,
		Reinforcement2Hours:   5,
		DailyNewApproachLimit: 100,
		MinIntervalSeconds:    60,
		MaxIntervalSeconds:    180,
		Active:                true,
	}
}

// Validate checks the configuration's internal constraints.
func (c RuleConfig) Validate() error {
	start, err := parseWallClock(c.BusinessHoursStart)
	if err != nil {
		return fmt.Errorf("horario_inicio_funcionamento: %w", err)
	}
	end, err := parseWallClock(c.BusinessHoursEnd)
	if err != nil {
		return fmt.Errorf("horario_fim_funcionamento: %w", err)
	}
	if start >= end {
		return errors.New("horario_inicio_funcionamento must be before horario_fim_funcionamento")
	}

	if len(c.Weekdays) == 0 {
		return errors.New("dias_semana_funcionamento must not be empty")
	}
	seen := map[string]bool{}
	for _, d := range c.Weekdays {
		if !isWeekdayCode(d) {
			return fmt.Errorf("dias_semana_funcionamento: unknown code %q", d)
		}
		if seen[d] {
			return fmt.Errorf("dias_semana_funcionamento: duplicate code %q", d)
		}
		seen[d] = true
	}

	for _, check := range []struct {
		name string
		v    int
	}{
		{"max_cadencias_por_empresa", c.MaxCadencesPerCompany},
		{"cooldown_entre_cadencias_dias", c.CooldownDays},
		{"max_mensagens_dia1", c.MaxMessagesDay1},
		{"max_mensagens_dia2", c.MaxMessagesDay2},
		{"max_mensagens_dia3", c.MaxMessagesDay3},
		{"intervalo_reforco1_horas", c.Reinforcement1Hours},
		{"intervalo_reforco2_horas", c.Reinforcement2Hours},
		{"limite_max_novas_abordagens_dia", c.DailyNewApproachLimit},
		{"intervalo_min_entre_mensagens_global_segundos", c.MinIntervalSeconds},
		{"intervalo_max_entre_mensagens_global_segundos", c.MaxIntervalSeconds},
	} {
		if check.v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", check.name, check.v)
		}
	}

	if c.MinIntervalSeconds > c.MaxIntervalSeconds {
		return errors.New("intervalo_min must be <= intervalo_max")
	}
	return nil
}

// parseWallClock converts "HH:MM" to minutes since midnight.
func parseWallClock(v string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("out of range: %q", v)
	}
	return h*60 + m, nil
}

func isWeekdayCode(d string) bool {
	for _, c := range WeekdayCodes {
		if c == d {
			return true
		}
	}
	return false
}
