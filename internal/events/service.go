package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("events: not found")
	ErrInvalidRequest = errors.New("events: invalid request")
)

type Repository interface {
	List(ctx context.Context, domain string) ([]ErrorEvent, error)
	Insert(ctx context.Context, e ErrorEvent) error
	UpdateProcessingStatus(ctx context.Context, id string, to ProcessingStatus, updatedAt time.Time) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context, domain string) ([]ErrorEvent, error) {
	if s.repo == nil {
		return nil, errors.New("events: repository not configured")
	}
	return s.repo.List(ctx, domain)
}

// Record persists an error event reported by the site monitor.
func (s *Service) Record(ctx context.Context, e ErrorEvent) (ErrorEvent, error) {
	if e.ID == "" || e.CompanyDomain == "" || e.ErrorType == "" {
		return ErrorEvent{}, ErrInvalidRequest
	}
	now := s.clock().UTC()
	if e.DetectedAt.IsZero() {
		e.DetectedAt = now
	}
	if e.ProcessingStatus == "" {
		e.ProcessingStatus = ProcessingPendente
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.repo.Insert(ctx, e); err != nil {
		return ErrorEvent{}, err
	}
	return e, nil
}

func (s *Service) ChangeProcessingStatus(ctx context.Context, id string, to ProcessingStatus) error {
	if id == "" {
		return ErrInvalidRequest
	}
	switch to {
	case ProcessingPendente, ProcessingEmProcessamento, ProcessingProcessado, ProcessingDescartado:
	default:
		return ErrInvalidRequest
	}
	return s.repo.UpdateProcessingStatus(ctx, id, to, s.clock().UTC())
}
