package companies

import (
	"context"
	"errors"
	"strings"
	"time"

	"cadence-platform/internal/status"
)

var (
	ErrNotFound          = errors.New("companies: not found")
	ErrInvalidRequest    = errors.New("companies: invalid request")
	ErrInvalidTransition = errors.New("companies: invalid status transition")
)

// Repository abstracts company/contact persistence.
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Company, error)
	Get(ctx context.Context, domain string) (Company, error)
	UpdateCadenceStatus(ctx context.Context, domain string, to status.CadenceStatus, updatedAt time.Time) error
	IncrementAttempts(ctx context.Context, domain string, nextAttemptAt *time.Time, updatedAt time.Time) error

	ListContacts(ctx context.Context, domain string) ([]Contact, error)
	InsertContact(ctx context.Context, ct Contact) error
	UpdateContactStatus(ctx context.Context, id string, to status.ContactStatus, updatedAt time.Time) error
}

// StatusAuditor receives cadence-status change notifications.
// Audit failures must never block the status change itself.
type StatusAuditor interface {
	StatusChanged(ctx context.Context, domain, from, to, actorUserID, actorRole string)
}

type ListFilter struct {
	CadenceStatus string `json:"cadence_status,omitempty"`
	Search        string `json:"search,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

type Service struct {
	repo    Repository
	auditor StatusAuditor
	clock   func() time.Time
}

func NewService(repo Repository, auditor StatusAuditor) *Service {
	return &Service{repo: repo, auditor: auditor, clock: time.Now}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Company, error) {
	if s.repo == nil {
		return nil, errors.New("companies: repository not configured")
	}
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, domain string) (Company, error) {
	if domain == "" {
		return Company{}, ErrInvalidRequest
	}
	return s.repo.Get(ctx, domain)
}

// ChangeCadenceStatus moves a company to a new cadence status.
// Transitions between known values are unrestricted (the execution automation
// is the ordering authority); values outside the enum are rejected.
func (s *Service) ChangeCadenceStatus(ctx context.Context, domain string, to status.CadenceStatus, actorUserID, actorRole string) (Company, error) {
	if domain == "" {
		return Company{}, ErrInvalidRequest
	}

	current, err := s.repo.Get(ctx, domain)
	if err != nil {
		return Company{}, err
	}
	if !status.CanTransition(status.DomainCadence, string(current.CadenceStatus), string(to)) {
		return Company{}, ErrInvalidTransition
	}

	now := s.clock().UTC()
	if err := s.repo.UpdateCadenceStatus(ctx, domain, to, now); err != nil {
		return Company{}, err
	}
	if s.auditor != nil {
		s.auditor.StatusChanged(ctx, domain, string(current.CadenceStatus), string(to), actorUserID, actorRole)
	}

	current.CadenceStatus = to
	current.UpdatedAt = now
	return current, nil
}

// RecordAttempt increments the attempts counter after the automation reports
// an outreach attempt. Counter only goes up; nextAttemptAt may be nil when the
// cadence ended.
func (s *Service) RecordAttempt(ctx context.Context, domain string, nextAttemptAt *time.Time) error {
	if domain == "" {
		return ErrInvalidRequest
	}
	return s.repo.IncrementAttempts(ctx, domain, nextAttemptAt, s.clock().UTC())
}

func (s *Service) ListContacts(ctx context.Context, domain string) ([]Contact, error) {
	if domain == "" {
		return nil, ErrInvalidRequest
	}
	return s.repo.ListContacts(ctx, domain)
}

type NewContact struct {
	CompanyDomain    string      `json:"empresa_dominio"`
	Type             ContactType `json:"tipo"`
	Value            string      `json:"valor"`
	Source           string      `json:"origem"`
	WhatsAppValid    bool        `json:"whatsapp_valido"`
	WhatsAppBusiness bool        `json:"whatsapp_business"`
	FromGMN          bool        `json:"origem_gmn"`
}

func (s *Service) AddContact(ctx context.Context, id string, in NewContact) (Contact, error) {
	if in.CompanyDomain == "" || strings.TrimSpace(in.Value) == "" {
		return Contact{}, ErrInvalidRequest
	}
	switch in.Type {
	case ContactTypeEmail, ContactTypeTelefone, ContactTypeWhatsApp:
	default:
		return Contact{}, ErrInvalidRequest
	}

	now := s.clock().UTC()
	ct := Contact{
		ID:               id,
		CompanyDomain:    in.CompanyDomain,
		Type:             in.Type,
		Value:            strings.TrimSpace(in.Value),
		Status:           status.ContactAtivo,
		Source:           in.Source,
		WhatsAppValid:    in.WhatsAppValid,
		WhatsAppBusiness: in.WhatsAppBusiness,
		FromGMN:          in.FromGMN,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.InsertContact(ctx, ct); err != nil {
		return Contact{}, err
	}
	return ct, nil
}

func (s *Service) ChangeContactStatus(ctx context.Context, id string, to status.ContactStatus) error {
	if id == "" {
		return ErrInvalidRequest
	}
	if !status.Known(status.DomainContact, string(to)) {
		return ErrInvalidTransition
	}
	return s.repo.UpdateContactStatus(ctx, id, to, s.clock().UTC())
}
