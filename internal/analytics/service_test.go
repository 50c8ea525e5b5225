package analytics

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"cadence-platform/internal/appointments"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/status"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MemoryRepo) *Service {
	svc := NewService(repo)
	svc.clock = func() time.Time { return testNow }
	return svc
}

func fullRange() TimeRange {
	return TimeRange{From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestPct(t *testing.T) {
	cases := []struct{ n, d, want int }{
		{0, 0, 0},   // zero denominator guard
		{5, 0, 0},   // zero denominator guard
		{40, 100, 40},
		{10, 100, 10},
		{10, 40, 25},
		{1, 8, 13},  // 12.5 rounds up
		{1, 3, 33},  // 33.33 rounds down
		{2, 3, 67},  // 66.67 rounds up
		{7, 10, 70},
		{100, 100, 100},
	}
	for _, c := range cases {
		if got := pct(c.n, c.d); got != c.want {
			t.Errorf("pct(%d, %d) = %d, want %d", c.n, c.d, got, c.want)
		}
	}
}

func TestFunnelCountsAreNonIncreasing(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Companies = []companies.Company{
		{Domain: "a.com"}, // no status yet
		{Domain: "b.com", CadenceStatus: status.CadenceAptaParaContato},
		{Domain: "c.com", CadenceStatus: status.CadenceEmCadencia},
		{Domain: "d.com", CadenceStatus: status.CadenceDia2Ativa},
		{Domain: "e.com", CadenceStatus: status.CadenceInteragindoWA},
		{Domain: "f.com", CadenceStatus: status.CadenceSucesso},
		{Domain: "g.com", CadenceStatus: status.CadenceFluxoConcluido},
	}
	svc := newTestService(repo)

	rep, err := svc.Funnel(context.Background())
	if err != nil {
		t.Fatalf("funnel: %v", err)
	}
	if len(rep.Stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(rep.Stages))
	}
	for i := 1; i < len(rep.Stages); i++ {
		if rep.Stages[i].Count > rep.Stages[i-1].Count {
			t.Fatalf("stage %q (%d) exceeds previous %q (%d)",
				rep.Stages[i].Key, rep.Stages[i].Count,
				rep.Stages[i-1].Key, rep.Stages[i-1].Count)
		}
	}

	if rep.Stages[0].Count != 7 || rep.Stages[0].PctOfTotal != 100 {
		t.Fatalf("unexpected base stage: %+v", rep.Stages[0])
	}
	// b..g have a status; c,d,e,f,g passed the apta_* gate; e,f are
	// responding; only f reached success.
	if rep.Stages[1].Count != 6 || rep.Stages[2].Count != 5 {
		t.Fatalf("unexpected mid stages: %+v", rep.Stages)
	}
	if rep.Stages[3].Count != 2 || rep.Stages[4].Count != 1 {
		t.Fatalf("unexpected tail stages: %+v", rep.Stages)
	}
	if rep.Stages[4].PctOfPrevious != 50 {
		t.Fatalf("expected 1/2 = 50%% of previous, got %d", rep.Stages[4].PctOfPrevious)
	}
}

func TestFunnelEmptyBase(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	rep, err := svc.Funnel(context.Background())
	if err != nil {
		t.Fatalf("funnel: %v", err)
	}
	for _, st := range rep.Stages {
		if st.Count != 0 || st.PctOfPrevious != 0 || st.PctOfTotal != 0 {
			t.Fatalf("expected all-zero stage, got %+v", st)
		}
	}
}

func TestChannelPerformanceScenario(t *testing.T) {
	// 100 whatsapp interactions, 40 with a non-"sem resposta" status,
	// 10 appointments linked: taxaSucesso 40%, taxaAgendamento 10%,
	// conversão (agendamentos/sucesso) 25%.
	repo := NewMemoryRepo()
	for i := 0; i < 100; i++ {
		st := status.InteractionSemResposta
		if i < 40 {
			st = status.InteractionEntregue
		}
		repo.Interactions = append(repo.Interactions, interactions.Interaction{
			ID:            fmt.Sprintf("i-%d", i),
			CompanyDomain: fmt.Sprintf("c%d.com", i),
			Channel:       interactions.ChannelWhatsApp,
			Status:        st,
			CreatedAt:     testNow,
		})
	}
	for i := 0; i < 10; i++ {
		repo.Appointments = append(repo.Appointments, appointments.Appointment{
			ID:            fmt.Sprintf("a-%d", i),
			CompanyDomain: fmt.Sprintf("c%d.com", i),
			InteractionID: fmt.Sprintf("i-%d", i),
			CreatedAt:     testNow,
		})
	}
	svc := newTestService(repo)

	rep, err := svc.ChannelPerformance(context.Background(), fullRange())
	if err != nil {
		t.Fatalf("channel performance: %v", err)
	}
	if len(rep.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(rep.Channels))
	}
	ch := rep.Channels[0]
	if ch.Channel != "whatsapp" || ch.Total != 100 || ch.Sucesso != 40 || ch.Agendamentos != 10 {
		t.Fatalf("unexpected counts: %+v", ch)
	}
	if ch.TaxaSucesso != 40 || ch.TaxaAgendamento != 10 || ch.Conversao != 25 {
		t.Fatalf("unexpected rates: %+v", ch)
	}
	if ch.TaxaGeral != 100 {
		t.Fatalf("single channel should hold 100%% share, got %d", ch.TaxaGeral)
	}
}

func TestChannelPerformanceZeroDenominators(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Interactions = []interactions.Interaction{{
		ID: "i-1", CompanyDomain: "a.com",
		Channel: interactions.ChannelEmail,
		Status:  status.InteractionSemResposta,
		CreatedAt: testNow,
	}}
	svc := newTestService(repo)

	rep, err := svc.ChannelPerformance(context.Background(), fullRange())
	if err != nil {
		t.Fatalf("channel performance: %v", err)
	}
	ch := rep.Channels[0]
	// sucesso is 0, so conversão divides by zero and must come back 0.
	if ch.Sucesso != 0 || ch.Conversao != 0 {
		t.Fatalf("expected zero conversão with zero sucesso, got %+v", ch)
	}
}

func TestChannelPerformanceRejectsBadRange(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	_, err := svc.ChannelPerformance(context.Background(), TimeRange{})
	if err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestTemplatePerformance(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Templates = []templates.Template{
		{ID: "t-1", Name: "Abertura SSL"},
		{ID: "t-2", Name: "Reforço dia 2"},
	}
	repo.Interactions = []interactions.Interaction{
		{ID: "i-1", CompanyDomain: "a.com", TemplateID: "t-1", Status: status.InteractionEntregue, CreatedAt: testNow},
		{ID: "i-2", CompanyDomain: "b.com", TemplateID: "t-1", Status: status.InteractionSemResposta, CreatedAt: testNow},
		{ID: "i-3", CompanyDomain: "c.com", TemplateID: "t-2", Status: status.InteractionLida, CreatedAt: testNow},
	}
	repo.Appointments = []appointments.Appointment{
		{ID: "a-1", CompanyDomain: "a.com", CreatedAt: testNow},
	}
	svc := newTestService(repo)

	stats, err := svc.TemplatePerformance(context.Background(), fullRange())
	if err != nil {
		t.Fatalf("template performance: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(stats))
	}
	// Sorted by envios descending, t-1 first.
	t1 := stats[0]
	if t1.TemplateID != "t-1" || t1.Envios != 2 || t1.Respostas != 1 || t1.Agendamentos != 1 {
		t.Fatalf("unexpected t-1 stats: %+v", t1)
	}
	if t1.TaxaConversao != 50 {
		t.Fatalf("expected 1/2 = 50%%, got %d", t1.TaxaConversao)
	}
	t2 := stats[1]
	if t2.Envios != 1 || t2.Agendamentos != 0 || t2.TaxaConversao != 0 {
		t.Fatalf("unexpected t-2 stats: %+v", t2)
	}
}

func TestFollowUpDistributionScenario(t *testing.T) {
	// {pendente: 3, concluido: 7} yields total 10, taxa de conclusão 70%.
	repo := NewMemoryRepo()
	for i := 0; i < 3; i++ {
		repo.FollowUps = append(repo.FollowUps, followups.Task{ID: fmt.Sprintf("p-%d", i), Status: status.FollowUpPendente})
	}
	for i := 0; i < 7; i++ {
		repo.FollowUps = append(repo.FollowUps, followups.Task{ID: fmt.Sprintf("c-%d", i), Status: status.FollowUpConcluido})
	}
	svc := newTestService(repo)

	dist, err := svc.FollowUpDistribution(context.Background())
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if dist.Total != 10 {
		t.Fatalf("expected total 10, got %d", dist.Total)
	}
	if dist.Counts["pendente"] != 3 || dist.Counts["concluido"] != 7 {
		t.Fatalf("unexpected counts: %+v", dist.Counts)
	}
	if dist.Percentages["concluido"] != 70 || dist.Percentages["pendente"] != 30 {
		t.Fatalf("unexpected percentages: %+v", dist.Percentages)
	}
}

func TestDistributionEmpty(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	dist, err := svc.AppointmentDistribution(context.Background())
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if dist.Total != 0 || len(dist.Counts) != 0 {
		t.Fatalf("expected empty distribution, got %+v", dist)
	}
}

func TestLinkEngagementTrailing30Days(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Links = []tracking.TrackedLink{{ID: "l-1", Code: "abc", Label: "Agendamento"}}
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 3, 15, hour, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	repo.Clicks = []tracking.LinkClick{
		{LinkID: "l-1", ClickedAt: day(0, 9)},
		{LinkID: "l-1", ClickedAt: day(0, 17)},
		{LinkID: "l-1", ClickedAt: day(-10, 12)},
		{LinkID: "l-1", ClickedAt: day(-40, 12)}, // outside the window
	}
	svc := newTestService(repo)

	out, err := svc.LinkEngagement(context.Background())
	if err != nil {
		t.Fatalf("link engagement: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 link, got %d", len(out))
	}
	e := out[0]
	if e.TotalClicks != 3 {
		t.Fatalf("expected 3 clicks in window, got %d", e.TotalClicks)
	}
	if len(e.Daily) != 30 {
		t.Fatalf("expected a 30-day series, got %d entries", len(e.Daily))
	}
	if e.FirstClick == nil || !e.FirstClick.Equal(day(-10, 12)) {
		t.Fatalf("unexpected first click: %v", e.FirstClick)
	}
	if e.LastClick == nil || !e.LastClick.Equal(day(0, 17)) {
		t.Fatalf("unexpected last click: %v", e.LastClick)
	}
	last := e.Daily[len(e.Daily)-1]
	if last.Date != "2025-03-15" || last.Clicks != 2 {
		t.Fatalf("unexpected last day bucket: %+v", last)
	}
	zeros := 0
	for _, d := range e.Daily {
		if d.Clicks == 0 {
			zeros++
		}
	}
	if zeros != 28 {
		t.Fatalf("expected 28 zero-click days, got %d", zeros)
	}
}

func TestMonthlyRollup(t *testing.T) {
	repo := NewMemoryRepo()
	mk := func(month time.Month, ch interactions.Channel, cost float64) interactions.Interaction {
		return interactions.Interaction{
			ID:        fmt.Sprintf("i-%d-%s-%f", month, ch, cost),
			Channel:   ch,
			CostEstimate: cost,
			CreatedAt: time.Date(2025, month, 5, 10, 0, 0, 0, time.UTC),
		}
	}
	repo.Interactions = []interactions.Interaction{
		mk(time.March, interactions.ChannelWhatsApp, 0.10),
		mk(time.March, interactions.ChannelEmail, 0.02),
		mk(time.February, interactions.ChannelWhatsApp, 0.10),
		// September 2024 falls outside the trailing six months.
		{ID: "old", Channel: interactions.ChannelWhatsApp, CreatedAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	repo.Appointments = []appointments.Appointment{
		{ID: "a-1", CreatedAt: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)},
	}
	svc := newTestService(repo)

	buckets, err := svc.MonthlyRollup(context.Background())
	if err != nil {
		t.Fatalf("monthly rollup: %v", err)
	}
	if len(buckets) != 6 {
		t.Fatalf("expected 6 months, got %d", len(buckets))
	}
	if buckets[0].Month != "2024-10" || buckets[5].Month != "2025-03" {
		t.Fatalf("unexpected month range: %s .. %s", buckets[0].Month, buckets[5].Month)
	}
	cur := buckets[5]
	if cur.Interactions != 2 || cur.ByChannel["whatsapp"] != 1 || cur.ByChannel["email"] != 1 {
		t.Fatalf("unexpected current month: %+v", cur)
	}
	if cur.Appointments != 1 {
		t.Fatalf("expected 1 appointment in current month, got %d", cur.Appointments)
	}
	if math.Abs(cur.Cost-0.12) > 1e-9 {
		t.Fatalf("expected cost sum 0.12, got %f", cur.Cost)
	}
	if buckets[4].Interactions != 1 {
		t.Fatalf("expected 1 interaction in february, got %d", buckets[4].Interactions)
	}
}
