package companies

import (
	"context"
	"errors"
	"testing"
	"time"

	"cadence-platform/internal/status"
)

type captureAuditor struct {
	calls []string
}

func (a *captureAuditor) StatusChanged(ctx context.Context, domain, from, to, actorUserID, actorRole string) {
	a.calls = append(a.calls, domain+":"+from+"->"+to)
}

func fixtureRepo(now time.Time) *MemoryRepo {
	repo := NewMemoryRepo()
	repo.Companies["padaria.com.br"] = Company{
		Domain:        "padaria.com.br",
		Name:          "Padaria Central",
		CadenceStatus: status.CadenceAptaParaContato,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return repo
}

func TestChangeCadenceStatus_KnownTransition(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	repo := fixtureRepo(now)
	aud := &captureAuditor{}
	svc := NewService(repo, aud)
	svc.clock = func() time.Time { return now.Add(time.Minute) }

	out, err := svc.ChangeCadenceStatus(context.Background(), "padaria.com.br", status.CadenceEmCadencia, "u1", "consultor")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CadenceStatus != status.CadenceEmCadencia {
		t.Fatalf("unexpected status: %s", out.CadenceStatus)
	}
	if len(aud.calls) != 1 || aud.calls[0] != "padaria.com.br:apta_para_contato->em_cadencia" {
		t.Fatalf("unexpected audit calls: %v", aud.calls)
	}
}

func TestChangeCadenceStatus_RejectsUnknownValue(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	svc := NewService(fixtureRepo(now), nil)

	_, err := svc.ChangeCadenceStatus(context.Background(), "padaria.com.br", "status_que_nao_existe", "u1", "consultor")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestChangeCadenceStatus_MissingCompany(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	_, err := svc.ChangeCadenceStatus(context.Background(), "nada.com", status.CadenceEmCadencia, "u1", "consultor")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordAttempt_CounterIsMonotonic(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	repo := fixtureRepo(now)
	svc := NewService(repo, nil)

	for i := 0; i < 3; i++ {
		if err := svc.RecordAttempt(context.Background(), "padaria.com.br", nil); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	c, _ := repo.Get(context.Background(), "padaria.com.br")
	if c.TotalAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", c.TotalAttempts)
	}
}

func TestAddContact_Validation(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)

	if _, err := svc.AddContact(context.Background(), "c1", NewContact{CompanyDomain: "x.com", Type: "pombo-correio", Value: "v"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for unknown type, got %v", err)
	}
	if _, err := svc.AddContact(context.Background(), "c1", NewContact{CompanyDomain: "x.com", Type: ContactTypeWhatsApp, Value: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty value, got %v", err)
	}

	ct, err := svc.AddContact(context.Background(), "c1", NewContact{CompanyDomain: "x.com", Type: ContactTypeWhatsApp, Value: "+5511999999999"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ct.Status != status.ContactAtivo {
		t.Fatalf("new contacts should start ativo, got %s", ct.Status)
	}
}

func TestChangeContactStatus_RejectsUnknown(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Contacts["c1"] = Contact{ID: "c1", CompanyDomain: "x.com", Type: ContactTypeEmail, Value: "a@x.com", Status: status.ContactAtivo}
	svc := NewService(repo, nil)

	if err := svc.ChangeContactStatus(context.Background(), "c1", "banido"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := svc.ChangeContactStatus(context.Background(), "c1", status.ContactNaoUsar); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestList_FilterAndSearch(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	repo := fixtureRepo(now)
	repo.Companies["oficina.com.br"] = Company{
		Domain:        "oficina.com.br",
		Name:          "Oficina do Zé",
		CadenceStatus: status.CadenceEmCadencia,
		UpdatedAt:     now.Add(time.Hour),
	}
	svc := NewService(repo, nil)

	out, err := svc.List(context.Background(), ListFilter{CadenceStatus: "em_cadencia"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Domain != "oficina.com.br" {
		t.Fatalf("unexpected result: %+v", out)
	}

	out, err = svc.List(context.Background(), ListFilter{Search: "padaria"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Domain != "padaria.com.br" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
