package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"cadence-platform/internal/status"
)

func TestCreate_DefaultsToSolicitado(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	now := time.Unix(1700000000, 0).UTC()

	a, err := svc.Create(context.Background(), Appointment{
		ID:            "a1",
		CompanyDomain: "padaria.com.br",
		StartsAt:      now,
		EndsAt:        now.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != status.AppointmentSolicitado {
		t.Fatalf("expected solicitado, got %s", a.Status)
	}
}

func TestCreate_RejectsInvertedWindow(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	now := time.Unix(1700000000, 0).UTC()

	_, err := svc.Create(context.Background(), Appointment{
		ID:            "a1",
		CompanyDomain: "x",
		StartsAt:      now,
		EndsAt:        now.Add(-time.Minute),
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestChangeStatus_RejectsUnknown(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Rows["a1"] = Appointment{ID: "a1", CompanyDomain: "x", Status: status.AppointmentSolicitado}
	svc := NewService(repo)

	if err := svc.ChangeStatus(context.Background(), "a1", "adiado_para_sempre"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if err := svc.ChangeStatus(context.Background(), "a1", status.AppointmentConfirmado); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := repo.Rows["a1"].Status; got != status.AppointmentConfirmado {
		t.Fatalf("status not persisted: %s", got)
	}
}
