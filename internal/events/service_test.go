package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecord_DefaultsPendingAndDetectedAt(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	e, err := svc.Record(context.Background(), ErrorEvent{
		ID:            "e1",
		CompanyDomain: "padaria.com.br",
		ErrorType:     "ssl_expirado",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.ProcessingStatus != ProcessingPendente {
		t.Fatalf("expected pendente, got %s", e.ProcessingStatus)
	}
	if !e.DetectedAt.Equal(now) {
		t.Fatalf("expected detected_at defaulted to clock, got %v", e.DetectedAt)
	}
}

func TestChangeProcessingStatus_RejectsUnknown(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Rows["e1"] = ErrorEvent{ID: "e1", CompanyDomain: "x", ErrorType: "erro_500", ProcessingStatus: ProcessingPendente}
	svc := NewService(repo)

	if err := svc.ChangeProcessingStatus(context.Background(), "e1", "evaporado"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if err := svc.ChangeProcessingStatus(context.Background(), "e1", ProcessingProcessado); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
