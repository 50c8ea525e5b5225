package gateway

import (
	"encoding/json"
	"time"
)

// The cadence-execution automation posts envelopes of this shape. The
// dashboard only records what happened; it never schedules or sends.

type Envelope struct {
	Type string          `json:"tipo"`
	Data json.RawMessage `json:"dados"`
}

const (
	EventInteractionCreated = "interacao_criada"
	EventInteractionStatus  = "interacao_status"
	EventCompanyStatus      = "empresa_status"
	EventAttemptRecorded    = "tentativa_registrada"
	EventChatMessage        = "mensagem_chat"
	EventErrorDetected      = "erro_detectado"
)

type InteractionCreatedPayload struct {
	ID            string  `json:"id,omitempty"`
	CompanyDomain string  `json:"empresa_dominio"`
	Channel       string  `json:"canal"`
	Direction     string  `json:"direcao"`
	Status        string  `json:"status,omitempty"`
	SessionID     string  `json:"session_id,omitempty"`
	TemplateID    string  `json:"template_id,omitempty"`
	AIResponse    string  `json:"resposta_ia,omitempty"`
	AISummary     string  `json:"resumo_ia,omitempty"`
	CostEstimate  float64 `json:"custo_estimado,omitempty"`
}

type InteractionStatusPayload struct {
	ID      string     `json:"id"`
	Status  string     `json:"status"`
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

type CompanyStatusPayload struct {
	Domain string `json:"dominio"`
	Status string `json:"status"`
}

type AttemptRecordedPayload struct {
	Domain        string     `json:"dominio"`
	NextAttemptAt *time.Time `json:"proxima_tentativa_em,omitempty"`
}

type ChatMessagePayload struct {
	SessionID string          `json:"session_id"`
	Payload   json.RawMessage `json:"payload"`
}

type ErrorDetectedPayload struct {
	ID            string    `json:"id,omitempty"`
	CompanyDomain string    `json:"empresa_dominio"`
	ErrorType     string    `json:"tipo_erro"`
	ErrorURL      string    `json:"url_erro,omitempty"`
	DetectedAt    time.Time `json:"detectado_em,omitempty"`
}
