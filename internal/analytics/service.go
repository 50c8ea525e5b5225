package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"cadence-platform/internal/appointments"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/status"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"
)

var ErrInvalidRequest = errors.New("analytics: invalid request")

// Repository abstracts read access to the raw record collections. All
// aggregation happens in the service; implementations only list rows.

type Repository interface {
	ListCompanies(ctx context.Context) ([]companies.Company, error)
	ListInteractions(ctx context.Context, from, to time.Time) ([]interactions.Interaction, error)
	ListAppointments(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error)
	ListFollowUps(ctx context.Context) ([]followups.Task, error)
	ListErrorEvents(ctx context.Context) ([]events.ErrorEvent, error)
	ListTemplates(ctx context.Context) ([]templates.Template, error)
	ListLinks(ctx context.Context) ([]tracking.TrackedLink, error)
	ListClicks(ctx context.Context, from, to time.Time) ([]tracking.LinkClick, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// pct is n/d as a whole percentage, rounded half up. A zero denominator
// yields 0, never a division error.
func pct(n, d int) int {
	if d == 0 {
		return 0
	}
	return (200*n + d) / (2 * d)
}

// Funnel stage qualifying sets, outermost first. Each set is a superset of
// the next, so stage counts are non-increasing by construction.

var funnelStages = []struct {
	key, label string
	qualifies  func(status.CadenceStatus) bool
}{
	{"base", "Base de empresas", func(status.CadenceStatus) bool { return true }},
	{"em_pipeline", "No pipeline", func(cs status.CadenceStatus) bool { return cs != "" }},
	{"contatadas", "Contatadas", func(cs status.CadenceStatus) bool {
		switch cs {
		case "", status.CadenceAptaParaContato, status.CadenceAptaParaNovaCadencia:
			return false
		}
		return true
	}},
	{"respondendo", "Respondendo", func(cs status.CadenceStatus) bool {
		switch cs {
		case status.CadenceInteragindoWA, status.CadenceAtendimentoHumanoWA,
			status.CadenceFollowupManualWA, status.CadenceSucesso:
			return true
		}
		return false
	}},
	{"sucesso", "Contato realizado", func(cs status.CadenceStatus) bool {
		return cs == status.CadenceSucesso
	}},
}

func (s *Service) Funnel(ctx context.Context) (FunnelReport, error) {
	rows, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return FunnelReport{}, err
	}

	out := FunnelReport{Stages: make([]FunnelStage, 0, len(funnelStages))}
	prev, first := 0, 0
	for i, st := range funnelStages {
		n := 0
		for _, c := range rows {
			if st.qualifies(c.CadenceStatus) {
				n++
			}
		}
		stage := FunnelStage{Key: st.key, Label: st.label, Count: n}
		if i == 0 {
			first = n
			stage.PctOfPrevious = pct(n, n)
		} else {
			stage.PctOfPrevious = pct(n, prev)
		}
		stage.PctOfTotal = pct(n, first)
		out.Stages = append(out.Stages, stage)
		prev = n
	}
	return out, nil
}

func (s *Service) ChannelPerformance(ctx context.Context, rng TimeRange) (ChannelReport, error) {
	if err := validRange(rng); err != nil {
		return ChannelReport{}, err
	}
	ints, err := s.repo.ListInteractions(ctx, rng.From, rng.To)
	if err != nil {
		return ChannelReport{}, err
	}
	appts, err := s.repo.ListAppointments(ctx, rng.From, rng.To)
	if err != nil {
		return ChannelReport{}, err
	}

	channelOf := make(map[string]string, len(ints)) // interaction id -> channel
	type acc struct{ total, sucesso, agendamentos int }
	byChannel := map[string]*acc{}
	get := func(ch string) *acc {
		a, ok := byChannel[ch]
		if !ok {
			a = &acc{}
			byChannel[ch] = a
		}
		return a
	}

	grand := 0
	for _, it := range ints {
		ch := string(it.Channel)
		channelOf[it.ID] = ch
		a := get(ch)
		a.total++
		grand++
		if it.Status != status.InteractionSemResposta {
			a.sucesso++
		}
	}
	for _, ap := range appts {
		if ch, ok := channelOf[ap.InteractionID]; ok {
			get(ch).agendamentos++
		}
	}

	out := ChannelReport{Total: grand}
	for ch, a := range byChannel {
		out.Channels = append(out.Channels, ChannelStats{
			Channel:         ch,
			Total:           a.total,
			Sucesso:         a.sucesso,
			Agendamentos:    a.agendamentos,
			TaxaSucesso:     pct(a.sucesso, a.total),
			TaxaAgendamento: pct(a.agendamentos, a.total),
			Conversao:       pct(a.agendamentos, a.sucesso),
			TaxaGeral:       pct(a.total, grand),
		})
	}
	sort.Slice(out.Channels, func(i, j int) bool { return out.Channels[i].Channel < out.Channels[j].Channel })
	return out, nil
}

func (s *Service) TemplatePerformance(ctx context.Context, rng TimeRange) ([]TemplateStats, error) {
	if err := validRange(rng); err != nil {
		return nil, err
	}
	tpls, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	ints, err := s.repo.ListInteractions(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	appts, err := s.repo.ListAppointments(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	apptsByDomain := map[string]int{}
	for _, ap := range appts {
		apptsByDomain[ap.CompanyDomain]++
	}

	out := make([]TemplateStats, 0, len(tpls))
	for _, t := range tpls {
		st := TemplateStats{TemplateID: t.ID, Name: t.Name}
		domains := map[string]bool{}
		for _, it := range ints {
			if it.TemplateID != t.ID {
				continue
			}
			st.Envios++
			if it.Status != status.InteractionSemResposta {
				st.Respostas++
			}
			domains[it.CompanyDomain] = true
		}
		for d := range domains {
			st.Agendamentos += apptsByDomain[d]
		}
		st.TaxaConversao = pct(st.Agendamentos, st.Envios)
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Envios > out[j].Envios })
	return out, nil
}

func (s *Service) AppointmentDistribution(ctx context.Context) (Distribution, error) {
	rows, err := s.repo.ListAppointments(ctx, time.Time{}, farFuture())
	if err != nil {
		return Distribution{}, err
	}
	counts := map[string]int{}
	for _, a := range rows {
		counts[string(a.Status)]++
	}
	return distribution(counts), nil
}

func (s *Service) FollowUpDistribution(ctx context.Context) (Distribution, error) {
	rows, err := s.repo.ListFollowUps(ctx)
	if err != nil {
		return Distribution{}, err
	}
	counts := map[string]int{}
	for _, t := range rows {
		counts[string(t.Status)]++
	}
	return distribution(counts), nil
}

func (s *Service) ErrorEventDistribution(ctx context.Context) (Distribution, error) {
	rows, err := s.repo.ListErrorEvents(ctx)
	if err != nil {
		return Distribution{}, err
	}
	counts := map[string]int{}
	for _, e := range rows {
		counts[string(e.ProcessingStatus)]++
	}
	return distribution(counts), nil
}

func distribution(counts map[string]int) Distribution {
	out := Distribution{Counts: counts, Percentages: map[string]int{}}
	for _, n := range counts {
		out.Total += n
	}
	for k, n := range counts {
		out.Percentages[k] = pct(n, out.Total)
	}
	return out
}

// LinkEngagement builds the trailing 30-day click series for every tracked
// link. Days without clicks appear in the series with a zero count.
func (s *Service) LinkEngagement(ctx context.Context) ([]LinkEngagement, error) {
	links, err := s.repo.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -30)

	clicks, err := s.repo.ListClicks(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byLink := map[string][]tracking.LinkClick{}
	for _, c := range clicks {
		byLink[c.LinkID] = append(byLink[c.LinkID], c)
	}

	out := make([]LinkEngagement, 0, len(links))
	for _, l := range links {
		e := LinkEngagement{LinkID: l.ID, Code: l.Code, Label: l.Label}
		daily := map[string]int{}
		for _, c := range byLink[l.ID] {
			e.TotalClicks++
			t := c.ClickedAt
			if e.FirstClick == nil || t.Before(*e.FirstClick) {
				e.FirstClick = &t
			}
			if e.LastClick == nil || t.After(*e.LastClick) {
				e.LastClick = &t
			}
			daily[t.UTC().Format("2006-01-02")]++
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			e.Daily = append(e.Daily, DailyClicks{Date: key, Clicks: daily[key]})
		}
		out = append(out, e)
	}
	return out, nil
}

// MonthlyRollup aggregates the trailing six calendar months, current month
// included, for the month-over-month charts.
func (s *Service) MonthlyRollup(ctx context.Context) ([]MonthlyBucket, error) {
	now := s.clock().UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	start := end.AddDate(0, -6, 0)

	ints, err := s.repo.ListInteractions(ctx, start, end)
	if err != nil {
		return nil, err
	}
	appts, err := s.repo.ListAppointments(ctx, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make([]MonthlyBucket, 0, 6)
	index := map[string]int{}
	for m := start; m.Before(end); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		index[key] = len(buckets)
		buckets = append(buckets, MonthlyBucket{Month: key, ByChannel: map[string]int{}})
	}

	for _, it := range ints {
		i, ok := index[it.CreatedAt.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Interactions++
		buckets[i].ByChannel[string(it.Channel)]++
		buckets[i].Cost += it.CostEstimate
	}
	for _, ap := range appts {
		if i, ok := index[ap.CreatedAt.UTC().Format("2006-01")]; ok {
			buckets[i].Appointments++
		}
	}
	return buckets, nil
}

func validRange(rng TimeRange) error {
	if rng.From.IsZero() || rng.To.IsZero() || !rng.To.After(rng.From) {
		return ErrInvalidRequest
	}
	return nil
}

func farFuture() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}
