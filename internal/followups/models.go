package followups

import (
	"time"

	"cadence-platform/internal/status"
)

// Task is a manual follow-up owed to a company, created when a WhatsApp
// conversation escalates to a human and needs a scheduled return.

type Task struct {
	ID            string `json:"id" db:"id"`
	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`
	InteractionID string `json:"interacao_id" db:"interacao_id"`

	Status status.FollowUpStatus `json:"status" db:"status"`

	DueAt    time.Time `json:"data_prevista" db:"data_prevista"`
	Attempts int       `json:"tentativas" db:"tentativas"`
	Details  string    `json:"detalhes,omitempty" db:"detalhes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
