package analytics

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// FunnelStage is one step of the prospect-to-lead pipeline. Counts are over
// companies whose cadence status falls in the stage's qualifying set; the
// sets are nested, so counts never increase from one stage to the next.

type FunnelStage struct {
	Key   string `json:"chave"`
	Label string `json:"rotulo"`
	Count int    `json:"total"`

	// PctOfPrevious is relative to the preceding stage, PctOfTotal to the
	// first stage. Both are whole percentages, rounded half up.
	PctOfPrevious int `json:"pct_etapa_anterior"`
	PctOfTotal    int `json:"pct_total"`
}

type FunnelReport struct {
	Stages []FunnelStage `json:"etapas"`
}

// ChannelStats aggregates outbound performance for one channel.

type ChannelStats struct {
	Channel      string `json:"canal"`
	Total        int    `json:"total"`
	Sucesso      int    `json:"sucesso"`
	Agendamentos int    `json:"agendamentos"`

	TaxaSucesso     int `json:"taxa_sucesso"`
	TaxaAgendamento int `json:"taxa_agendamento"`
	Conversao       int `json:"conversao"`

	// TaxaGeral is this channel's share of all interactions.
	TaxaGeral int `json:"taxa_geral"`
}

type ChannelReport struct {
	Channels []ChannelStats `json:"canais"`
	Total    int            `json:"total_geral"`
}

// TemplateStats aggregates per-template outcomes.

type TemplateStats struct {
	TemplateID   string `json:"template_id"`
	Name         string `json:"nome"`
	Envios       int    `json:"envios"`
	Respostas    int    `json:"respostas"`
	Agendamentos int    `json:"agendamentos"`

	TaxaConversao int `json:"taxa_conversao"`
}

// Distribution is a group-by-status breakdown used identically for
// appointments, follow-up tasks, and error events.

type Distribution struct {
	Total       int            `json:"total"`
	Counts      map[string]int `json:"contagens"`
	Percentages map[string]int `json:"percentuais"`
}

// LinkEngagement summarizes click-through activity for one tracked link over
// the trailing 30-day window.

type DailyClicks struct {
	Date   string `json:"data"` // YYYY-MM-DD
	Clicks int    `json:"cliques"`
}

type LinkEngagement struct {
	LinkID      string        `json:"link_id"`
	Code        string        `json:"codigo"`
	Label       string        `json:"rotulo,omitempty"`
	TotalClicks int           `json:"total_cliques"`
	FirstClick  *time.Time    `json:"primeiro_clique,omitempty"`
	LastClick   *time.Time    `json:"ultimo_clique,omitempty"`
	Daily       []DailyClicks `json:"serie_diaria"`
}

// MonthlyBucket is one month of the trailing six-month rollup.

type MonthlyBucket struct {
	Month        string         `json:"mes"` // YYYY-MM
	Interactions int            `json:"interacoes"`
	ByChannel    map[string]int `json:"por_canal"`
	Appointments int            `json:"agendamentos"`
	Cost         float64        `json:"custo"`
}
