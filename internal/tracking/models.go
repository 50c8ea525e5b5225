package tracking

import "time"

// TrackedLink is a short redirect link embedded in outbound messages so that
// click-throughs can be attributed back to a company and a cadence step.

type TrackedLink struct {
	ID            string `json:"id" db:"id"`
	Code          string `json:"codigo" db:"codigo"`
	TargetURL     string `json:"url_destino" db:"url_destino"`
	Label         string `json:"rotulo,omitempty" db:"rotulo"`
	CompanyDomain string `json:"empresa_dominio,omitempty" db:"empresa_dominio"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type LinkClick struct {
	ID        int64     `json:"id" db:"id"`
	LinkID    string    `json:"link_id" db:"link_id"`
	ClickedAt time.Time `json:"clicado_em" db:"clicado_em"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
}
