package status

import "strings"

type entry struct {
	label string
	color string
}

// Color classes follow the dashboard's utility-class convention.
const (
	colorGreen  = "bg-green-100 text-green-800"
	colorBlue   = "bg-blue-100 text-blue-800"
	colorYellow = "bg-yellow-100 text-yellow-800"
	colorOrange = "bg-orange-100 text-orange-800"
	colorRed    = "bg-red-100 text-red-800"
	colorPurple = "bg-purple-100 text-purple-800"
	colorGray   = "bg-gray-100 text-gray-800"

	fallbackColor = colorGray
)

var registry = map[Domain]map[string]entry{
	DomainCadence: {
		string(CadenceAptaParaContato):      {"Apta para Contato", colorBlue},
		string(CadenceEmCadencia):           {"Em Cadência", colorYellow},
		string(CadenceAguardandoResposta):   {"Aguardando Resposta", colorOrange},
		string(CadenceSucesso):              {"Sucesso - Contato Realizado", colorGreen},
		string(CadenceNaoPerturbe):          {"Não Perturbe", colorRed},
		string(CadenceAptaParaNovaCadencia): {"Apta para Nova Cadência", colorBlue},
		string(CadenceFluxoConcluido):       {"Fluxo Concluído sem Resposta", colorGray},

		string(CadenceDia1Ativa):              {"Cadência Dia 1 Ativa", colorYellow},
		string(CadenceDia2Ativa):              {"Cadência Dia 2 Ativa", colorYellow},
		string(CadenceDia3Ativa):              {"Cadência Dia 3 Ativa", colorYellow},
		string(CadenceAguardandoReforco1Dia1): {"Aguardando Reforço 1 (Dia 1)", colorOrange},
		string(CadenceAguardandoReforco2Dia1): {"Aguardando Reforço 2 (Dia 1)", colorOrange},
		string(CadenceAguardandoReforco1Dia2): {"Aguardando Reforço 1 (Dia 2)", colorOrange},
		string(CadenceAguardandoReforco2Dia2): {"Aguardando Reforço 2 (Dia 2)", colorOrange},
		string(CadenceDia1Concluido):          {"Dia 1 Concluído - Aguardando Dia 2", colorBlue},
		string(CadenceDia2Concluido):          {"Dia 2 Concluído - Aguardando Dia 3", colorBlue},
		string(CadenceFalhaMaxCadencias):      {"Falha - Máximo de Cadências Atingido", colorRed},

		string(CadenceInteragindoWA):       {"Interagindo (WhatsApp)", colorPurple},
		string(CadenceAtendimentoHumanoWA): {"Atendimento Humano Solicitado", colorPurple},
		string(CadenceFollowupManualWA):    {"Follow-up Manual Agendado", colorPurple},
	},
	DomainContact: {
		string(ContactAtivo):       {"Ativo", colorGreen},
		string(ContactSemResposta): {"Sem Resposta", colorYellow},
		string(ContactRespondido):  {"Respondido", colorBlue},
		string(ContactNaoUsar):     {"Não Usar", colorRed},
	},
	DomainInteraction: {
		string(InteractionEnviada):           {"Enviada", colorBlue},
		string(InteractionEntregue):          {"Entregue", colorBlue},
		string(InteractionLida):              {"Lida", colorPurple},
		string(InteractionErro):              {"Erro", colorRed},
		string(InteractionFinalizadaAgendou): {"Finalizada com Agendamento", colorGreen},
		string(InteractionSemResposta):       {"Enviada sem Resposta", colorYellow},
		string(InteractionOptOut):            {"Opt-out", colorRed},
		string(InteractionFalhouEnvio):       {"Falhou no Envio", colorRed},
		string(InteractionAprovada):          {"Aprovada", colorGreen},
		string(InteractionRejeitada):         {"Rejeitada", colorRed},
	},
	DomainAppointment: {
		string(AppointmentSolicitado): {"Solicitado", colorYellow},
		string(AppointmentConfirmado): {"Confirmado", colorBlue},
		string(AppointmentAgendado):   {"Agendado", colorBlue},
		string(AppointmentRealizado):  {"Realizado", colorGreen},
		string(AppointmentCancelado):  {"Cancelado", colorRed},
		string(AppointmentLembrete24): {"Pendente Lembrete 24h", colorOrange},
	},
	DomainFollowUp: {
		string(FollowUpPendente):    {"Pendente", colorYellow},
		string(FollowUpEmProgresso): {"Em Progresso", colorBlue},
		string(FollowUpEmAndamento): {"Em Andamento", colorBlue},
		string(FollowUpConcluido):   {"Concluído", colorGreen},
		string(FollowUpReagendado):  {"Reagendado", colorOrange},
		string(FollowUpCancelado):   {"Cancelado", colorRed},
	},
}

// Known reports whether value is part of the domain's closed set.
func Known(d Domain, value string) bool {
	_, ok := registry[d][value]
	return ok
}

// Values returns the domain's enumerated values. Order is not guaranteed.
func Values(d Domain) []string {
	m := registry[d]
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	return out
}

// LabelFor resolves the human-readable label for a status value.
// Unknown values fall back to the raw value with underscores replaced by spaces.
func LabelFor(d Domain, value string) string {
	if e, ok := registry[d][value]; ok {
		return e.label
	}
	return strings.ReplaceAll(value, "_", " ")
}

// ColorClassFor resolves the display color class for a status value.
// Unknown values get a neutral gray.
func ColorClassFor(d Domain, value string) string {
	if e, ok := registry[d][value]; ok {
		return e.color
	}
	return fallbackColor
}

// CanTransition reports whether from→to is a permitted transition inside a domain.
//
// The automation that executes cadences is the real authority on ordering; the
// dashboard historically allowed any transition between known values and that
// behavior is preserved here. Values outside the closed set are rejected so they
// cannot be written through the UI.
func CanTransition(d Domain, from, to string) bool {
	// A record whose status was never set may move to any known value.
	if from == "" {
		return Known(d, to)
	}
	return Known(d, from) && Known(d, to)
}
