package followups

import (
	"context"
	"errors"
	"time"

	"cadence-platform/internal/status"
)

var (
	ErrNotFound       = errors.New("followups: not found")
	ErrInvalidRequest = errors.New("followups: invalid request")
)

type Repository interface {
	List(ctx context.Context, domain string) ([]Task, error)
	Insert(ctx context.Context, t Task) error
	UpdateStatus(ctx context.Context, id string, to status.FollowUpStatus, updatedAt time.Time) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// List returns tasks, all of them when domain is empty.
func (s *Service) List(ctx context.Context, domain string) ([]Task, error) {
	if s.repo == nil {
		return nil, errors.New("followups: repository not configured")
	}
	return s.repo.List(ctx, domain)
}

func (s *Service) Create(ctx context.Context, t Task) (Task, error) {
	if t.ID == "" || t.CompanyDomain == "" || t.DueAt.IsZero() {
		return Task{}, ErrInvalidRequest
	}
	if t.Status == "" {
		t.Status = status.FollowUpPendente
	}
	if !status.Known(status.DomainFollowUp, string(t.Status)) {
		return Task{}, ErrInvalidRequest
	}

	now := s.clock().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.repo.Insert(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) ChangeStatus(ctx context.Context, id string, to status.FollowUpStatus) error {
	if id == "" {
		return ErrInvalidRequest
	}
	if !status.Known(status.DomainFollowUp, string(to)) {
		return ErrInvalidRequest
	}
	return s.repo.UpdateStatus(ctx, id, to, s.clock().UTC())
}
