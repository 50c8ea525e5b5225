package appointments

import (
	"context"
	"errors"
	"time"

	"cadence-platform/internal/status"
)

var (
	ErrNotFound       = errors.New("appointments: not found")
	ErrInvalidRequest = errors.New("appointments: invalid request")
)

type Repository interface {
	List(ctx context.Context, domain string) ([]Appointment, error)
	Insert(ctx context.Context, a Appointment) error
	UpdateStatus(ctx context.Context, id string, to status.AppointmentStatus, updatedAt time.Time) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// List returns appointments, optionally scoped to one company (empty domain
// means all; the dashboard calendar view reads everything).
func (s *Service) List(ctx context.Context, domain string) ([]Appointment, error) {
	if s.repo == nil {
		return nil, errors.New("appointments: repository not configured")
	}
	return s.repo.List(ctx, domain)
}

func (s *Service) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if a.ID == "" || a.CompanyDomain == "" {
		return Appointment{}, ErrInvalidRequest
	}
	if a.StartsAt.IsZero() || a.EndsAt.IsZero() || !a.EndsAt.After(a.StartsAt) {
		return Appointment{}, ErrInvalidRequest
	}
	if a.Status == "" {
		a.Status = status.AppointmentSolicitado
	}
	if !status.Known(status.DomainAppointment, string(a.Status)) {
		return Appointment{}, ErrInvalidRequest
	}

	now := s.clock().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.repo.Insert(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) ChangeStatus(ctx context.Context, id string, to status.AppointmentStatus) error {
	if id == "" {
		return ErrInvalidRequest
	}
	if !status.Known(status.DomainAppointment, string(to)) {
		return ErrInvalidRequest
	}
	return s.repo.UpdateStatus(ctx, id, to, s.clock().UTC())
}
