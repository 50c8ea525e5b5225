package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadence-platform/internal/cadence"
	"cadence-platform/internal/chatlog"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/status"

	"github.com/gin-gonic/gin"
)

type fixture struct {
	handler      Handler
	interactions *interactions.MemoryRepo
	companies    *companies.MemoryRepo
	events       *events.MemoryRepo
	chat         *chatlog.MemoryRepo
}

func newFixture() fixture {
	intRepo := interactions.NewMemoryRepo()
	coRepo := companies.NewMemoryRepo()
	evRepo := events.NewMemoryRepo()
	chRepo := chatlog.NewMemoryRepo()

	coRepo.Companies["acme.com"] = companies.Company{
		Domain:        "acme.com",
		CadenceStatus: status.CadenceAptaParaContato,
	}

	return fixture{
		handler: Handler{
			Secret:       "s3cr3t",
			Interactions: interactions.NewService(intRepo),
			Companies:    companies.NewService(coRepo, nil),
			Events:       events.NewService(evRepo),
			Cadence:      cadence.NewService(cadence.NewMemoryRepo(), nil, 0),
			Chat:         chRepo,
		},
		interactions: intRepo,
		companies:    coRepo,
		events:       evRepo,
		chat:         chRepo,
	}
}

func post(t *testing.T, h Handler, secret string, env Envelope) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/cadence", h.Handle)

	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhooks/cadence", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustData(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestHandleRejectsBadSecret(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "wrong", Envelope{Type: EventChatMessage})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = post(t, f.handler, "", Envelope{Type: EventChatMessage})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}
}

func TestHandleInteractionCreated(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventInteractionCreated,
		Data: mustData(t, InteractionCreatedPayload{
			CompanyDomain: "acme.com",
			Channel:       "whatsapp",
			Direction:     "outbound",
			SessionID:     "sess-1",
		}),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	got, _ := f.interactions.ListByCompany(context.Background(), "acme.com")
	if len(got) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(got))
	}
	if got[0].ID == "" || got[0].Status != status.InteractionEnviada {
		t.Fatalf("expected generated id and default status, got %+v", got[0])
	}
}

func TestHandleInteractionCreatedRejectsBadChannel(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventInteractionCreated,
		Data: mustData(t, InteractionCreatedPayload{
			CompanyDomain: "acme.com",
			Channel:       "fax",
			Direction:     "outbound",
		}),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleCompanyStatus(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventCompanyStatus,
		Data: mustData(t, CompanyStatusPayload{Domain: "acme.com", Status: "em_cadencia"}),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	c := f.companies.Companies["acme.com"]
	if c.CadenceStatus != status.CadenceEmCadencia {
		t.Fatalf("expected status updated, got %s", c.CadenceStatus)
	}
}

func TestHandleCompanyStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventCompanyStatus,
		Data: mustData(t, CompanyStatusPayload{Domain: "acme.com", Status: "invented"}),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleAttemptRecorded(t *testing.T) {
	f := newFixture()
	next := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventAttemptRecorded,
		Data: mustData(t, AttemptRecordedPayload{Domain: "acme.com", NextAttemptAt: &next}),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	c := f.companies.Companies["acme.com"]
	if c.TotalAttempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", c.TotalAttempts)
	}
	if c.NextAttemptAt == nil || !c.NextAttemptAt.Equal(next) {
		t.Fatalf("expected next attempt recorded, got %v", c.NextAttemptAt)
	}
}

func TestHandleAttemptRecordedRejectsEmptyDomain(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventAttemptRecorded,
		Data: mustData(t, AttemptRecordedPayload{}),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleChatMessage(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventChatMessage,
		Data: mustData(t, ChatMessagePayload{
			SessionID: "sess-1",
			Payload:   json.RawMessage(`{"role":"user","content":"quero saber mais"}`),
		}),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	msgs, _ := f.chat.ListBySession(context.Background(), "sess-1")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}

func TestHandleErrorDetected(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{
		Type: EventErrorDetected,
		Data: mustData(t, ErrorDetectedPayload{
			CompanyDomain: "acme.com",
			ErrorType:     "ssl_expirado",
			ErrorURL:      "https://acme.com",
		}),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	evs, _ := f.events.List(context.Background(), "acme.com")
	if len(evs) != 1 || evs[0].ProcessingStatus != events.ProcessingPendente {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestHandleUnknownEventType(t *testing.T) {
	f := newFixture()
	w := post(t, f.handler, "s3cr3t", Envelope{Type: "algo_novo", Data: json.RawMessage(`{}`)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
