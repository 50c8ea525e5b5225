package analytics

import (
	"context"
	"sync"
	"time"

	"cadence-platform/internal/appointments"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"
)

// MemoryRepo is a simple in-memory analytics source for tests. Fixtures are
// assigned directly to the exported slices.

type MemoryRepo struct {
	mu sync.Mutex

	Companies    []companies.Company
	Interactions []interactions.Interaction
	Appointments []appointments.Appointment
	FollowUps    []followups.Task
	ErrorEvents  []events.ErrorEvent
	Templates    []templates.Template
	Links        []tracking.TrackedLink
	Clicks       []tracking.LinkClick
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListCompanies(ctx context.Context) ([]companies.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]companies.Company(nil), r.Companies...), nil
}

func (r *MemoryRepo) ListInteractions(ctx context.Context, from, to time.Time) ([]interactions.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interactions.Interaction, 0)
	for _, it := range r.Interactions {
		if inWindow(it.CreatedAt, from, to) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListAppointments(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]appointments.Appointment, 0)
	for _, a := range r.Appointments {
		if inWindow(a.CreatedAt, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListFollowUps(ctx context.Context) ([]followups.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]followups.Task(nil), r.FollowUps...), nil
}

func (r *MemoryRepo) ListErrorEvents(ctx context.Context) ([]events.ErrorEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.ErrorEvent(nil), r.ErrorEvents...), nil
}

func (r *MemoryRepo) ListTemplates(ctx context.Context) ([]templates.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]templates.Template(nil), r.Templates...), nil
}

func (r *MemoryRepo) ListLinks(ctx context.Context) ([]tracking.TrackedLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tracking.TrackedLink(nil), r.Links...), nil
}

func (r *MemoryRepo) ListClicks(ctx context.Context, from, to time.Time) ([]tracking.LinkClick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tracking.LinkClick, 0)
	for _, c := range r.Clicks {
		if inWindow(c.ClickedAt, from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

// inWindow matches the half-open interval [from, to). A zero timestamp on the
// row always matches, mirroring rows whose created_at predates backfill.
func inWindow(t, from, to time.Time) bool {
	if t.IsZero() {
		return true
	}
	return !t.Before(from) && t.Before(to)
}
