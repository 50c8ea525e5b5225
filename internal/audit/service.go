package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for the status history.
//
// It MUST be append-only for writes.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, companyDomain string, limit int) ([]Entry, error)
}

// Service records cadence-status transitions. Callers treat logging as
// best-effort; see StatusChanged.

type Service struct {
	repo  Repository
	log   *slog.Logger
	clock func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log, clock: time.Now}
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

func (s *Service) Append(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.CompanyDomain == "" || e.ToStatus == "" {
		return ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// StatusChanged implements the notification hook the company service calls
// on every cadence-status change. Failures are logged and swallowed so the
// change itself never rolls back over an audit problem.
func (s *Service) StatusChanged(ctx context.Context, domain, from, to, actorUserID, actorRole string) {
	err := s.Append(ctx, Entry{
		CompanyDomain: domain,
		FromStatus:    from,
		ToStatus:      to,
		ActorUserID:   actorUserID,
		ActorRole:     actorRole,
	})
	if err != nil {
		s.log.Error("audit append failed",
			slog.String("empresa_dominio", domain),
			slog.String("status_novo", to),
			slog.String("error", err.Error()),
		)
	}
}

// History lists the most recent transitions for one company, newest first.
func (s *Service) History(ctx context.Context, companyDomain string, limit int) ([]Entry, error) {
	if companyDomain == "" {
		return nil, ErrInvalidEntry
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, companyDomain, limit)
}
