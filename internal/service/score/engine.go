package score

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/observability/telemetry"
	"github.com/seu-repo/callguard/internal/ports"
)

const (
	cacheKeyPrefix = "spam_likelihood_"
	cacheTTL       = time.Hour
)

// Engine computes the spam-likelihood snapshot of a phone number from the
// report ledger. Snapshots are cached for an hour; a write to the ledger
// must call Invalidate so the reporter immediately sees their own report.
type Engine struct {
	reports ports.ReportRepository
	cache   ports.Cache
	ttl     time.Duration
	log     *zap.Logger
}

func NewEngine(reports ports.ReportRepository, cache ports.Cache, log *zap.Logger) ports.ScoreService {
	return NewEngineWithTTL(reports, cache, cacheTTL, log)
}

// NewEngineWithTTL overrides the snapshot lifetime, for deployments that tune
// it via config.
func NewEngineWithTTL(reports ports.ReportRepository, cache ports.Cache, ttl time.Duration, log *zap.Logger) ports.ScoreService {
	if ttl <= 0 {
		ttl = cacheTTL
	}
	return &Engine{
		reports: reports,
		cache:   cache,
		ttl:     ttl,
		log:     log,
	}
}

func (e *Engine) Score(ctx context.Context, normalizedNumber string) (*domain.ScoreSnapshot, error) {
	key := cacheKeyPrefix + normalizedNumber

	if cached, err := e.cache.Get(ctx, key); err == nil && cached != "" {
		var snap domain.ScoreSnapshot
		if err := json.Unmarshal([]byte(cached), &snap); err == nil {
			telemetry.CacheHitsTotal.WithLabelValues("score").Inc()
			return &snap, nil
		}
	}
	telemetry.CacheMissesTotal.WithLabelValues("score").Inc()

	count, rows, err := e.reports.CountAndAggregate(ctx, normalizedNumber)
	if err != nil {
		// Never degrade an unreachable ledger into a zero score.
		return nil, fmt.Errorf("%w: aggregating reports for %s: %v", domain.ErrDataUnavailable, normalizedNumber, err)
	}

	snap := e.compute(normalizedNumber, count, rows)

	if data, err := json.Marshal(snap); err == nil {
		if err := e.cache.Set(ctx, key, string(data), e.ttl); err != nil {
			e.log.Warn("Failed to cache score snapshot",
				zap.String("number", normalizedNumber),
				zap.Error(err),
			)
		}
	}

	return snap, nil
}

// compute weights each report by recency: a report filed just now counts as
// severity*2, one from long ago approaches severity*1. The weighted average
// is normalized against the maximum severity and clamped to [0,1].
func (e *Engine) compute(number string, count int, rows []domain.ReportAggregate) *domain.ScoreSnapshot {
	snap := &domain.ScoreSnapshot{PhoneNumber: number}
	if count == 0 {
		return snap
	}

	now := time.Now()
	var sum float64
	for _, row := range rows {
		age := now.Sub(row.Timestamp)
		if age < 0 {
			age = 0
		}
		ageDays := age.Hours() / 24
		sum += float64(row.Severity) * (1 + 1/(1+ageDays))
	}

	snap.ReportCount = count
	snap.Likelihood = math.Min(sum/float64(count)/10, 1.0)
	return snap
}

func (e *Engine) Invalidate(ctx context.Context, normalizedNumber string) error {
	telemetry.CacheInvalidationsTotal.WithLabelValues("score").Inc()
	return e.cache.Delete(ctx, cacheKeyPrefix+normalizedNumber)
}
