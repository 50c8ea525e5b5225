package events

import "time"

// ErrorEvent is a fault detected on a company's website. Detected events are
// what seed a cadence: the opening message references the specific error.

type ErrorEvent struct {
	ID            string `json:"id" db:"id"`
	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`

	// ErrorType examples: ssl_expirado, dominio_expirando, site_fora_do_ar,
	// erro_500, formulario_quebrado.
	ErrorType string `json:"tipo_erro" db:"tipo_erro"`
	ErrorURL  string `json:"url_erro,omitempty" db:"url_erro"`

	DetectedAt time.Time `json:"detectado_em" db:"detectado_em"`

	ProcessingStatus ProcessingStatus `json:"status_processamento" db:"status_processamento"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ProcessingStatus string

const (
	ProcessingPendente        ProcessingStatus = "pendente"
	ProcessingEmProcessamento ProcessingStatus = "em_processamento"
	ProcessingProcessado      ProcessingStatus = "processado"
	ProcessingDescartado      ProcessingStatus = "descartado"
)
