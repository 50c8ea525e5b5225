package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCreate_WhatsAppBodyIsWrapped(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "t1", Template{
		Channel:   ChannelWhatsApp,
		StageCode: 101,
		Name:      "Abertura Dia 1",
		Body:      "Olá {{nome_lead}}",
		Active:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(created.Body, `{"type":"text"`) {
		t.Fatalf("body not wrapped: %s", created.Body)
	}
	if got := svc.EditableBody(created); got != "Olá {{nome_lead}}" {
		t.Fatalf("editable body mismatch: %q", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []Template{
		{Channel: ChannelWhatsApp, StageCode: 101, Name: "  ", Body: "x"},
		{Channel: ChannelWhatsApp, StageCode: 101, Name: "n", Body: ""},
		{Channel: "pombo", StageCode: 101, Name: "n", Body: "x"},
		{Channel: ChannelEmail, StageCode: 999, Name: "n", Body: "x"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), "t", in); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}

func TestCreate_WhatsAppDropsSubject(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	created, err := svc.Create(context.Background(), "t1", Template{
		Channel: ChannelWhatsApp, StageCode: 201, Name: "n", Body: "x", Subject: "não faz sentido",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Subject != "" {
		t.Fatalf("whatsapp templates must not keep a subject, got %q", created.Subject)
	}
}

func TestUpdate_KeepsCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "t1", Template{
		Channel: ChannelEmail, StageCode: 101, Name: "n", Body: "<p>oi</p>",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), Template{
		ID: "t1", Channel: ChannelEmail, StageCode: 102, Name: "n2", Body: "<p>olá</p>",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must survive updates")
	}
}

func TestDelete(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "t1", Template{Channel: ChannelEmail, StageCode: 101, Name: "n", Body: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPreview_SubstitutesInsideEnvelope(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	created, err := svc.Create(context.Background(), "t1", Template{
		Channel: ChannelWhatsApp, StageCode: 101, Name: "n",
		Body: "Oi {{nome_lead}}, sobre {{dominio}}",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got := svc.Preview(created)
	if got != "Oi João Silva, sobre padariacentral.com.br" {
		t.Fatalf("unexpected preview: %q", got)
	}
}
