package interactions

import (
	"context"
	"errors"
	"time"

	"cadence-platform/internal/status"
)

var (
	ErrNotFound       = errors.New("interactions: not found")
	ErrInvalidRequest = errors.New("interactions: invalid request")
)

type Repository interface {
	ListByCompany(ctx context.Context, domain string) ([]Interaction, error)
	Insert(ctx context.Context, in Interaction) error
	UpdateStatus(ctx context.Context, id string, to status.InteractionStatus, endedAt *time.Time, updatedAt time.Time) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) ListByCompany(ctx context.Context, domain string) ([]Interaction, error) {
	if domain == "" {
		return nil, ErrInvalidRequest
	}
	if s.repo == nil {
		return nil, errors.New("interactions: repository not configured")
	}
	return s.repo.ListByCompany(ctx, domain)
}

// Record persists a new interaction reported by the automation.
func (s *Service) Record(ctx context.Context, in Interaction) (Interaction, error) {
	if in.ID == "" || in.CompanyDomain == "" {
		return Interaction{}, ErrInvalidRequest
	}
	switch in.Channel {
	case ChannelWhatsApp, ChannelEmail, ChannelTelefone:
	default:
		return Interaction{}, ErrInvalidRequest
	}
	switch in.Direction {
	case DirectionInbound, DirectionOutbound:
	default:
		return Interaction{}, ErrInvalidRequest
	}
	if in.Status != "" && !status.Known(status.DomainInteraction, string(in.Status)) {
		return Interaction{}, ErrInvalidRequest
	}
	if in.Status == "" {
		in.Status = status.InteractionEnviada
	}

	now := s.clock().UTC()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now
	if err := s.repo.Insert(ctx, in); err != nil {
		return Interaction{}, err
	}
	return in, nil
}

// ChangeStatus updates the delivery/outcome state. A terminal status may carry
// an ended-at timestamp; nil leaves the column untouched for the memory repo
// and NULL-overwrites in Postgres, matching last-write-wins semantics.
func (s *Service) ChangeStatus(ctx context.Context, id string, to status.InteractionStatus, endedAt *time.Time) error {
	if id == "" {
		return ErrInvalidRequest
	}
	if !status.Known(status.DomainInteraction, string(to)) {
		return ErrInvalidRequest
	}
	return s.repo.UpdateStatus(ctx, id, to, endedAt, s.clock().UTC())
}
