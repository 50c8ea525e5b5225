package companies

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cadence-platform/internal/status"
)

// MemoryRepo is a simple in-memory repository for tests and early development.

type MemoryRepo struct {
	mu sync.Mutex

	Companies map[string]Company
	Contacts  map[string]Contact
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		Companies: map[string]Company{},
		Contacts:  map[string]Contact{},
	}
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Company, 0)
	for _, c := range r.Companies {
		if f.CadenceStatus != "" && string(c.CadenceStatus) != f.CadenceStatus {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.Domain), s) &&
				!strings.Contains(strings.ToLower(c.Name), s) &&
				!strings.Contains(strings.ToLower(c.GMNName), s) {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []Company{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, domain string) (Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Companies[domain]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) UpdateCadenceStatus(ctx context.Context, domain string, to status.CadenceStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Companies[domain]
	if !ok {
		return ErrNotFound
	}
	c.CadenceStatus = to
	c.UpdatedAt = updatedAt
	r.Companies[domain] = c
	return nil
}

func (r *MemoryRepo) IncrementAttempts(ctx context.Context, domain string, nextAttemptAt *time.Time, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Companies[domain]
	if !ok {
		return ErrNotFound
	}
	c.TotalAttempts++
	c.NextAttemptAt = nextAttemptAt
	c.UpdatedAt = updatedAt
	r.Companies[domain] = c
	return nil
}

func (r *MemoryRepo) ListContacts(ctx context.Context, domain string) ([]Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Contact, 0)
	for _, ct := range r.Contacts {
		if ct.CompanyDomain == domain {
			out = append(out, ct)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) InsertContact(ctx context.Context, ct Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Contacts[ct.ID] = ct
	return nil
}

func (r *MemoryRepo) UpdateContactStatus(ctx context.Context, id string, to status.ContactStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ct, ok := r.Contacts[id]
	if !ok {
		return ErrNotFound
	}
	ct.Status = to
	ct.UpdatedAt = updatedAt
	r.Contacts[id] = ct
	return nil
}
