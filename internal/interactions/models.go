package interactions

import (
	"time"

	"cadence-platform/internal/status"
)

// Interaction represents a single message event, inbound or outbound,
// belonging to exactly one company.
//
// Status transitions are written as reported by the execution automation;
// the dashboard does not re-validate ordering between them.

type Interaction struct {
	ID            string `json:"id" db:"id"`
	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`

	Channel   Channel   `json:"canal" db:"canal"`
	Direction Direction `json:"direcao" db:"direcao"`

	Status status.InteractionStatus `json:"status" db:"status"`

	// SessionID links the interaction to its chat-history log and to the
	// template that originated it.
	SessionID  string `json:"session_id,omitempty" db:"session_id"`
	TemplateID string `json:"template_id,omitempty" db:"template_id"`

	// AI-generated artifacts attached by the automation.
	AIResponse string `json:"resposta_ia,omitempty" db:"resposta_ia"`
	AISummary  string `json:"resumo_ia,omitempty" db:"resumo_ia"`

	// CostEstimate is in the account currency; the store holds a decimal.
	CostEstimate float64 `json:"custo_estimado" db:"custo_estimado"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelTelefone Channel = "telefone"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)
