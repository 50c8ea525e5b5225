package cadence

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestDefaultRulesAreValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	d := DefaultRules()
	if d.MaxMessagesDay1 != 3 || d.MaxMessagesDay2 != 3 || d.MaxMessagesDay3 != 1 {
		t.Fatalf("unexpected per-day caps: %+v", d)
	}
	if d.Reinforcement1Hours != 3 || d.Reinforcement2Hours != 5 {
		t.Fatalf("unexpected reinforcement intervals: %+v", d)
	}
	if d.MinIntervalSeconds != 60 || d.MaxIntervalSeconds != 180 {
		t.Fatalf("unexpected global spacing: %+v", d)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []func(*RuleConfig){
		func(c *RuleConfig) { c.BusinessHoursStart = "18:00"; c.BusinessHoursEnd = "09:00" },
		func(c *RuleConfig) { c.BusinessHoursStart = "meio-dia" },
		func(c *RuleConfig) { c.Weekdays = nil },
		func(c *RuleConfig) { c.Weekdays = []string{"seg", "seg"} },
		func(c *RuleConfig) { c.Weekdays = []string{"lunedi"} },
		func(c *RuleConfig) { c.MaxCadencesPerCompany = -1 },
		func(c *RuleConfig) { c.MinIntervalSeconds = 500; c.MaxIntervalSeconds = 100 },
	}
	for i, mutate := range cases {
		c := DefaultRules()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestSaveRules_InsertsThenUpdatesInPlace(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, 0)
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	saved, err := svc.SaveRules(context.Background(), DefaultRules())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if saved.ID == "" || saved.Name != DefaultConfigName {
		t.Fatalf("unexpected inserted config: %+v", saved)
	}

	later := now.Add(time.Hour)
	svc.clock = func() time.Time { return later }

	edit := saved
	edit.MaxMessagesDay1 = 5
	again, err := svc.SaveRules(context.Background(), edit)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("update must keep the same row, got %s vs %s", again.ID, saved.ID)
	}
	if !again.UpdatedAt.Equal(later) {
		t.Fatalf("updated_at not stamped: %v", again.UpdatedAt)
	}
	if len(repo.Rows) != 1 {
		t.Fatalf("expected a single row, got %d", len(repo.Rows))
	}
}

func TestSaveThenReloadReturnsIdenticalValues(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, 0)

	in := DefaultRules()
	in.MaxMessagesDay1 = 3
	in.Reinforcement1Hours = 3
	in.Reinforcement2Hours = 5

	saved, err := svc.SaveRules(context.Background(), in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, persisted, err := svc.ActiveRules(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !persisted {
		t.Fatalf("expected persisted config")
	}
	if !reflect.DeepEqual(got, saved) {
		t.Fatalf("reload mismatch:\nsaved: %+v\ngot:   %+v", saved, got)
	}
}

func TestActiveRules_NoRowFallsBackToDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, 0)
	got, persisted, err := svc.ActiveRules(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if persisted {
		t.Fatalf("no row saved, persisted should be false")
	}
	if got.DailyNewApproachLimit != 100 {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestUntilMidnight(t *testing.T) {
	at := time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC)
	if d := untilMidnight(at); d != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", d)
	}
}
