package companies

import (
	"time"

	"cadence-platform/internal/status"
)

// Company is a prospect business, keyed by its website domain.
//
// Invariants:
// - CadenceStatus is empty or one of the enumerated cadence values.
// - TotalAttempts never decreases while a cadence is active; the execution
//   automation owns the increments, this service only records them.
//
// NOTE: This is a domain model only. Scraper-specific details stay in the
// scraping_* columns; do not mix automation bookkeeping into dashboard logic.

type Company struct {
	Domain string `json:"dominio" db:"dominio"`

	// Name as scraped from the company page; GMNName comes from the
	// business-listing source and wins for display when present.
	Name    string `json:"nome" db:"nome"`
	GMNName string `json:"nome_gmn,omitempty" db:"nome_gmn"`

	CadenceStatus status.CadenceStatus `json:"cadence_status,omitempty" db:"cadence_status"`

	ScrapingStatus    string `json:"scraping_status,omitempty" db:"scraping_status"`
	ScrapingErrorType string `json:"scraping_error_type,omitempty" db:"scraping_error_type"`

	TotalAttempts  int        `json:"total_tentativas" db:"total_tentativas"`
	NextAttemptAt  *time.Time `json:"proxima_tentativa_em,omitempty" db:"proxima_tentativa_em"`
	LastError      string     `json:"ultimo_erro,omitempty" db:"ultimo_erro"`
	LastErrorAt    *time.Time `json:"ultimo_erro_em,omitempty" db:"ultimo_erro_em"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName prefers the business-listing name over the scraped page name.
func (c Company) DisplayName() string {
	if c.GMNName != "" {
		return c.GMNName
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Domain
}

type ContactType string

const (
	ContactTypeEmail    ContactType = "email"
	ContactTypeTelefone ContactType = "telefone"
	ContactTypeWhatsApp ContactType = "whatsapp"
)

// Contact is a single contact point belonging to exactly one company.
type Contact struct {
	ID            string `json:"id" db:"id"`
	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`

	Type  ContactType          `json:"tipo" db:"tipo"`
	Value string               `json:"valor" db:"valor"`
	Status status.ContactStatus `json:"status" db:"status"`

	// Source examples: site, gmn, manual.
	Source string `json:"origem,omitempty" db:"origem"`

	WhatsAppValid    bool `json:"whatsapp_valido" db:"whatsapp_valido"`
	WhatsAppBusiness bool `json:"whatsapp_business" db:"whatsapp_business"`
	FromGMN          bool `json:"origem_gmn" db:"origem_gmn"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
