package status

import "testing"

func TestLabelFor_KnownValues(t *testing.T) {
	if got := LabelFor(DomainCadence, "apta_para_contato"); got != "Apta para Contato" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := LabelFor(DomainFollowUp, "em_andamento"); got != "Em Andamento" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := LabelFor(DomainInteraction, "finalizada_com_sucesso_agendamento"); got != "Finalizada com Agendamento" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestLabelFor_UnknownValueFallsBack(t *testing.T) {
	for _, d := range []Domain{DomainCadence, DomainContact, DomainInteraction, DomainAppointment, DomainFollowUp} {
		got := LabelFor(d, "algum_status_novo")
		if got != "algum status novo" {
			t.Fatalf("domain %s: expected underscore fallback, got %q", d, got)
		}
	}
}

func TestColorClassFor_UnknownValueIsNeutral(t *testing.T) {
	for _, d := range []Domain{DomainCadence, DomainContact, DomainInteraction, DomainAppointment, DomainFollowUp} {
		got := ColorClassFor(d, "definitivamente_desconhecido")
		if got != fallbackColor {
			t.Fatalf("domain %s: expected neutral fallback, got %q", d, got)
		}
	}
}

func TestColorClassFor_KnownValue(t *testing.T) {
	if got := ColorClassFor(DomainCadence, string(CadenceNaoPerturbe)); got != colorRed {
		t.Fatalf("expected red for nao_perturbe, got %q", got)
	}
}

func TestKnown(t *testing.T) {
	if !Known(DomainContact, "nao_usar") {
		t.Fatal("nao_usar should be known")
	}
	if Known(DomainContact, "nao_usar_jamais") {
		t.Fatal("unexpected value should not be known")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"apta_para_contato", "em_cadencia", true},
		{"em_cadencia", "apta_para_contato", true}, // any-to-any between known values
		{"", "apta_para_contato", true},            // unset status can be initialized
		{"em_cadencia", "status_inventado", false},
		{"status_inventado", "em_cadencia", false},
	}
	for _, c := range cases {
		if got := CanTransition(DomainCadence, c.from, c.to); got != c.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValuesCoversTransientStates(t *testing.T) {
	vals := Values(DomainCadence)
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	for _, want := range []string{
		"cadencia_dia1_ativa", "cadencia_dia2_ativa", "cadencia_dia3_ativa",
		"aguardando_reforco1_dia1", "aguardando_reforco2_dia2",
		"dia1_concluido_aguardando_dia2", "dia2_concluido_aguardando_dia3",
		"falha_max_cadencias_atingida",
		"interagindo_wa", "atendimento_humano_solicitado_wa", "followup_manual_agendado_wa",
	} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing cadence value %q", want)
		}
	}
}
