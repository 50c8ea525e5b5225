package cadence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cadence-platform/pkg/logger"
	"cadence-platform/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound      = errors.New("cadence: not found")
	ErrInvalidConfig = errors.New("cadence: invalid configuration")
)

type Repository interface {
	// FindActive returns the single active configuration, if any.
	FindActive(ctx context.Context) (RuleConfig, bool, error)
	Insert(ctx context.Context, c RuleConfig) error
	Update(ctx context.Context, c RuleConfig) error
}

// Service reads and writes the cadence rule configuration.
//
// The active configuration is cached in redis with a short TTL: the dashboard
// polls it on several screens and the row almost never changes. Cache failures
// fall through to Postgres; the cache is never authoritative.
type Service struct {
	repo     Repository
	rdb      *redis.Client
	cacheTTL time.Duration
	clock    func() time.Time
}

const (
	rulesCacheKey      = "cadence:rules:active"
	approachCounterKey = "cadence:approaches:"
)

func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{repo: repo, rdb: rdb, cacheTTL: cacheTTL, clock: time.Now}
}

// ActiveRules returns the active configuration, or the defaults when no row
// has been saved yet. The second return reports whether a persisted row exists.
func (s *Service) ActiveRules(ctx context.Context) (RuleConfig, bool, error) {
	if s.repo == nil {
		return RuleConfig{}, false, errors.New("cadence: repository not configured")
	}

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, rulesCacheKey).Bytes(); err == nil {
			var cached RuleConfig
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, true, nil
			}
		}
	}

	cfg, ok, err := s.repo.FindActive(ctx)
	if err != nil {
		return RuleConfig{}, false, err
	}
	if !ok {
		return DefaultRules(), false, nil
	}

	s.cache(ctx, cfg)
	return cfg, true, nil
}

// SaveRules upserts the configuration: the existing active row is updated in
// place with a fresh updated_at; otherwise a new row named "Configuração
// Principal" is inserted. There is no retry; the caller surfaces the error.
func (s *Service) SaveRules(ctx context.Context, in RuleConfig) (RuleConfig, error) {
	if s.repo == nil {
		return RuleConfig{}, errors.New("cadence: repository not configured")
	}
	if err := in.Validate(); err != nil {
		return RuleConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	now := s.clock().UTC()
	current, ok, err := s.repo.FindActive(ctx)
	if err != nil {
		return RuleConfig{}, err
	}

	if ok {
		in.ID = current.ID
		if in.Name == "" {
			in.Name = current.Name
		}
		in.CreatedAt = current.CreatedAt
		in.UpdatedAt = now
		in.Active = true
		if err := s.repo.Update(ctx, in); err != nil {
			return RuleConfig{}, err
		}
	} else {
		in.ID = uuid.NewString()
		if in.Name == "" {
			in.Name = DefaultConfigName
		}
		in.CreatedAt = now
		in.UpdatedAt = now
		in.Active = true
		if err := s.repo.Insert(ctx, in); err != nil {
			return RuleConfig{}, err
		}
	}

	s.cache(ctx, in)
	return in, nil
}

// ApproachesToday reports how many new approaches the automation has started
// today, alongside the configured daily ceiling.
func (s *Service) ApproachesToday(ctx context.Context) (used int64, limit int, err error) {
	cfg, _, err := s.ActiveRules(ctx)
	if err != nil {
		return 0, 0, err
	}
	if s.rdb == nil {
		return 0, cfg.DailyNewApproachLimit, nil
	}
	n, err := utils.GetDailyCounter(ctx, s.rdb, s.todayKey())
	if err != nil {
		return 0, cfg.DailyNewApproachLimit, err
	}
	return n, cfg.DailyNewApproachLimit, nil
}

// RegisterApproach counts one new approach against today's ceiling. The count
// is bookkeeping for the dashboard; nothing here blocks the automation.
func (s *Service) RegisterApproach(ctx context.Context) (int64, error) {
	if s.rdb == nil {
		return 0, nil
	}
	return utils.IncrDailyCounter(ctx, s.rdb, s.todayKey(), untilMidnight(s.clock().UTC()))
}

func (s *Service) todayKey() string {
	return approachCounterKey + s.clock().UTC().Format("2006-01-02")
}

func untilMidnight(now time.Time) time.Duration {
	next := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	d := next.Sub(now)
	if d <= 0 {
		d = time.Minute
	}
	return d
}

func (s *Service) cache(ctx context.Context, cfg RuleConfig) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, rulesCacheKey, raw, s.cacheTTL).Err(); err != nil {
		logger.From(ctx).Warn("rules cache write failed", "err", err)
	}
}
