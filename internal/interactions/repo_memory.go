package interactions

import (
	"context"
	"sort"
	"sync"
	"time"

	"cadence-platform/internal/status"
)

// MemoryRepo is a simple in-memory repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	Rows map[string]Interaction
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Rows: map[string]Interaction{}} }

func (r *MemoryRepo) ListByCompany(ctx context.Context, domain string) ([]Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Interaction, 0)
	for _, in := range r.Rows {
		if in.CompanyDomain == domain {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, in Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[in.ID] = in
	return nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, to status.InteractionStatus, endedAt *time.Time, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.Rows[id]
	if !ok {
		return ErrNotFound
	}
	in.Status = to
	in.EndedAt = endedAt
	in.UpdatedAt = updatedAt
	r.Rows[id] = in
	return nil
}
