package status

// Status vocabulary for every lifecycle field in the CRM.
//
// Each domain is a closed set. Display code must go through LabelFor/ColorClassFor,
// which degrade gracefully for values outside the set (the store is written by an
// external automation we do not control, so unknown values must render, not error).

type Domain string

const (
	DomainCadence     Domain = "cadence"
	DomainContact     Domain = "contact"
	DomainInteraction Domain = "interaction"
	DomainAppointment Domain = "appointment"
	DomainFollowUp    Domain = "followup"
)

// CadenceStatus is the lifecycle state of a company's outreach cadence.
type CadenceStatus string

const (
	CadenceAptaParaContato      CadenceStatus = "apta_para_contato"
	CadenceEmCadencia           CadenceStatus = "em_cadencia"
	CadenceAguardandoResposta   CadenceStatus = "aguardando_resposta"
	CadenceSucesso              CadenceStatus = "sucesso_contato_realizado"
	CadenceNaoPerturbe          CadenceStatus = "nao_perturbe"
	CadenceAptaParaNovaCadencia CadenceStatus = "apta_para_nova_cadencia"
	CadenceFluxoConcluido       CadenceStatus = "fluxo_concluido_sem_resposta"

	// Transient per-day states, written by the automation while a cadence runs.
	CadenceDia1Ativa              CadenceStatus = "cadencia_dia1_ativa"
	CadenceDia2Ativa              CadenceStatus = "cadencia_dia2_ativa"
	CadenceDia3Ativa              CadenceStatus = "cadencia_dia3_ativa"
	CadenceAguardandoReforco1Dia1 CadenceStatus = "aguardando_reforco1_dia1"
	CadenceAguardandoReforco2Dia1 CadenceStatus = "aguardando_reforco2_dia1"
	CadenceAguardandoReforco1Dia2 CadenceStatus = "aguardando_reforco1_dia2"
	CadenceAguardandoReforco2Dia2 CadenceStatus = "aguardando_reforco2_dia2"
	CadenceDia1Concluido          CadenceStatus = "dia1_concluido_aguardando_dia2"
	CadenceDia2Concluido          CadenceStatus = "dia2_concluido_aguardando_dia3"
	CadenceFalhaMaxCadencias      CadenceStatus = "falha_max_cadencias_atingida"

	// Human-escalation states (WhatsApp conversations taken over by a person).
	CadenceInteragindoWA         CadenceStatus = "interagindo_wa"
	CadenceAtendimentoHumanoWA   CadenceStatus = "atendimento_humano_solicitado_wa"
	CadenceFollowupManualWA      CadenceStatus = "followup_manual_agendado_wa"
)

// ContactStatus is the usability state of a single contact point.
type ContactStatus string

const (
	ContactAtivo       ContactStatus = "ativo"
	ContactSemResposta ContactStatus = "sem_resposta"
	ContactRespondido  ContactStatus = "respondido"
	ContactNaoUsar     ContactStatus = "nao_usar"
)

// InteractionStatus is the delivery/outcome state of a message event.
type InteractionStatus string

const (
	InteractionEnviada           InteractionStatus = "enviada"
	InteractionEntregue          InteractionStatus = "entregue"
	InteractionLida              InteractionStatus = "lida"
	InteractionErro              InteractionStatus = "erro"
	InteractionFinalizadaAgendou InteractionStatus = "finalizada_com_sucesso_agendamento"
	InteractionSemResposta       InteractionStatus = "enviada_sem_resposta"
	InteractionOptOut            InteractionStatus = "opt_out"
	InteractionFalhouEnvio       InteractionStatus = "falhou_envio"
	InteractionAprovada          InteractionStatus = "aprovada"
	InteractionRejeitada         InteractionStatus = "rejeitada"
)

// AppointmentStatus is the booking state of a scheduled meeting.
type AppointmentStatus string

const (
	AppointmentSolicitado AppointmentStatus = "solicitado"
	AppointmentConfirmado AppointmentStatus = "confirmado"
	AppointmentAgendado   AppointmentStatus = "agendado"
	AppointmentRealizado  AppointmentStatus = "realizado"
	AppointmentCancelado  AppointmentStatus = "cancelado"
	AppointmentLembrete24 AppointmentStatus = "pendente_lembrete_24h"
)

// FollowUpStatus is the state of a manual follow-up task.
// em_progresso and em_andamento both appear in stored data; both are valid.
type FollowUpStatus string

const (
	FollowUpPendente    FollowUpStatus = "pendente"
	FollowUpEmProgresso FollowUpStatus = "em_progresso"
	FollowUpEmAndamento FollowUpStatus = "em_andamento"
	FollowUpConcluido   FollowUpStatus = "concluido"
	FollowUpReagendado  FollowUpStatus = "reagendado"
	FollowUpCancelado   FollowUpStatus = "cancelado"
)
