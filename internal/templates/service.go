package templates

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("templates: not found")
	ErrInvalidRequest = errors.New("templates: invalid request")
)

type Repository interface {
	List(ctx context.Context, channel Channel) ([]Template, error)
	Get(ctx context.Context, id string) (Template, error)
	Insert(ctx context.Context, t Template) error
	Update(ctx context.Context, t Template) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// List returns templates, optionally filtered by channel (empty = all).
func (s *Service) List(ctx context.Context, channel Channel) ([]Template, error) {
	if s.repo == nil {
		return nil, errors.New("templates: repository not configured")
	}
	return s.repo.List(ctx, channel)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	if id == "" {
		return Template{}, ErrInvalidRequest
	}
	return s.repo.Get(ctx, id)
}

// Create validates and persists a template. WhatsApp bodies arrive as raw
// text and are wrapped into the stored envelope here.
func (s *Service) Create(ctx context.Context, id string, t Template) (Template, error) {
	if err := validate(&t); err != nil {
		return Template{}, err
	}

	now := s.clock().UTC()
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Channel == ChannelWhatsApp {
		t.Body = WrapWhatsAppBody(t.Body)
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, t Template) (Template, error) {
	if t.ID == "" {
		return Template{}, ErrInvalidRequest
	}
	if err := validate(&t); err != nil {
		return Template{}, err
	}

	current, err := s.repo.Get(ctx, t.ID)
	if err != nil {
		return Template{}, err
	}
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = s.clock().UTC()
	if t.Channel == ChannelWhatsApp {
		t.Body = WrapWhatsAppBody(t.Body)
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return Template{}, err
	}
	return t, nil
}

// Delete removes a template. Templates are the only hard-deletable entity.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidRequest
	}
	return s.repo.Delete(ctx, id)
}

// EditableBody returns the body as the editor should see it: raw text for
// whatsapp (unwrapped from the envelope), HTML as stored for email.
func (s *Service) EditableBody(t Template) string {
	if t.Channel == ChannelWhatsApp {
		return ExtractWhatsAppBody(t.Body)
	}
	return t.Body
}

// Preview renders the template with sample variable values substituted.
func (s *Service) Preview(t Template) string {
	return Substitute(s.EditableBody(t))
}

func validate(t *Template) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(t.Body) == "" {
		return ErrInvalidRequest
	}
	switch t.Channel {
	case ChannelWhatsApp:
		t.Subject = "" // whatsapp has no subject line
	case ChannelEmail:
	default:
		return ErrInvalidRequest
	}
	if StageDay(t.StageCode) == 0 {
		return ErrInvalidRequest
	}
	return nil
}
