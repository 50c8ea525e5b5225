package tracking

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("tracking: not found")
	ErrInvalidRequest = errors.New("tracking: invalid request")
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (TrackedLink, error)
	Insert(ctx context.Context, l TrackedLink) error
	List(ctx context.Context, companyDomain string) ([]TrackedLink, error)
	RecordClick(ctx context.Context, c LinkClick) error
	ListClicks(ctx context.Context, linkID string, from, to time.Time) ([]LinkClick, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Create registers a tracked link. The code is short and URL-safe; when the
// caller leaves it empty a fresh one is derived from a UUID.
func (s *Service) Create(ctx context.Context, l TrackedLink) (TrackedLink, error) {
	l.TargetURL = strings.TrimSpace(l.TargetURL)
	if l.TargetURL == "" {
		return TrackedLink{}, ErrInvalidRequest
	}
	u, err := url.Parse(l.TargetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return TrackedLink{}, ErrInvalidRequest
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Code == "" {
		l.Code = strings.Split(uuid.NewString(), "-")[0]
	}
	l.CreatedAt = s.clock().UTC()
	if err := s.repo.Insert(ctx, l); err != nil {
		return TrackedLink{}, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, companyDomain string) ([]TrackedLink, error) {
	return s.repo.List(ctx, companyDomain)
}

// Resolve looks up a link by its short code and records the click. The click
// write is best-effort: a failed insert must not break the redirect.
func (s *Service) Resolve(ctx context.Context, code, userAgent string) (TrackedLink, error) {
	if code == "" {
		return TrackedLink{}, ErrInvalidRequest
	}
	l, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return TrackedLink{}, err
	}
	_ = s.repo.RecordClick(ctx, LinkClick{
		LinkID:    l.ID,
		ClickedAt: s.clock().UTC(),
		UserAgent: userAgent,
	})
	return l, nil
}

func (s *Service) Clicks(ctx context.Context, linkID string, from, to time.Time) ([]LinkClick, error) {
	if linkID == "" {
		return nil, ErrInvalidRequest
	}
	return s.repo.ListClicks(ctx, linkID, from, to)
}
