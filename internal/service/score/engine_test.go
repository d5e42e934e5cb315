package score

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestScore_NoReports(t *testing.T) {
	// Arrange
	ctx := context.Background()
	number := "+15550001111"

	mockRepo := &mocks.MockReportRepository{
		CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
			return 0, nil, nil
		},
	}
	mockCache := mocks.NewMockCache()

	engine := NewEngine(mockRepo, mockCache, newTestLogger())

	// Act
	snap, err := engine.Score(ctx, number)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Likelihood != 0.0 {
		t.Errorf("expected likelihood 0.0, got %f", snap.Likelihood)
	}
	if snap.ReportCount != 0 {
		t.Errorf("expected report count 0, got %d", snap.ReportCount)
	}

	// Zero-report snapshots are cached too
	if !mockCache.Has("spam_likelihood_" + number) {
		t.Error("expected snapshot to be cached")
	}
}

func TestScore_CacheHit_SkipsLedger(t *testing.T) {
	// Arrange
	ctx := context.Background()
	number := "+15550001111"

	cached := domain.ScoreSnapshot{PhoneNumber: number, Likelihood: 0.7, ReportCount: 4}
	cachedJSON, _ := json.Marshal(cached)

	mockRepo := &mocks.MockReportRepository{
		CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
			t.Error("ledger should not be queried on cache hit")
			return 0, nil, nil
		},
	}
	mockCache := mocks.NewMockCache()
	mockCache.Set(ctx, "spam_likelihood_"+number, string(cachedJSON), time.Hour)

	engine := NewEngine(mockRepo, mockCache, newTestLogger())

	// Act
	snap, err := engine.Score(ctx, number)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Likelihood != 0.7 {
		t.Errorf("expected cached likelihood 0.7, got %f", snap.Likelihood)
	}
	if snap.ReportCount != 4 {
		t.Errorf("expected cached report count 4, got %d", snap.ReportCount)
	}
}

func TestScore_LikelihoodBounded(t *testing.T) {
	// Arrange
	ctx := context.Background()
	number := "+15550001111"

	// Many fresh maximum-severity reports would push the raw weighted
	// average to ~2.0; the score must clamp at 1.0.
	var rows []domain.ReportAggregate
	for i := 0; i < 50; i++ {
		rows = append(rows, domain.ReportAggregate{Severity: 10, Timestamp: time.Now()})
	}

	mockRepo := &mocks.MockReportRepository{
		CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
			return len(rows), rows, nil
		},
	}

	engine := NewEngine(mockRepo, mocks.NewMockCache(), newTestLogger())

	// Act
	snap, err := engine.Score(ctx, number)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Likelihood < 0.0 || snap.Likelihood > 1.0 {
		t.Errorf("likelihood out of bounds: %f", snap.Likelihood)
	}
	if snap.Likelihood != 1.0 {
		t.Errorf("expected clamped likelihood 1.0, got %f", snap.Likelihood)
	}
	if snap.ReportCount != 50 {
		t.Errorf("expected report count 50, got %d", snap.ReportCount)
	}
}

func TestScore_MonotonicInSeverity(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()

	scoreFor := func(severities ...int) float64 {
		var rows []domain.ReportAggregate
		for _, s := range severities {
			rows = append(rows, domain.ReportAggregate{Severity: s, Timestamp: now.Add(-48 * time.Hour)})
		}
		mockRepo := &mocks.MockReportRepository{
			CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
				return len(rows), rows, nil
			},
		}
		engine := NewEngine(mockRepo, mocks.NewMockCache(), newTestLogger())
		snap, err := engine.Score(ctx, "+15550001111")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return snap.Likelihood
	}

	// Act / Assert: higher severity for a fixed count never lowers the score
	low := scoreFor(2, 2, 2)
	high := scoreFor(5, 5, 5)
	if high < low {
		t.Errorf("expected monotonic in severity: %f < %f", high, low)
	}

	// Adding a report at or above the running average never lowers the score
	base := scoreFor(4, 4)
	more := scoreFor(4, 4, 6)
	if more < base {
		t.Errorf("expected monotonic in count: %f < %f", more, base)
	}
}

func TestScore_RecentReportsWeighHeavier(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()

	scoreAt := func(age time.Duration) float64 {
		rows := []domain.ReportAggregate{{Severity: 8, Timestamp: now.Add(-age)}}
		mockRepo := &mocks.MockReportRepository{
			CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
				return 1, rows, nil
			},
		}
		engine := NewEngine(mockRepo, mocks.NewMockCache(), newTestLogger())
		snap, err := engine.Score(ctx, "+15550001111")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return snap.Likelihood
	}

	// Act
	fresh := scoreAt(time.Hour)
	stale := scoreAt(365 * 24 * time.Hour)

	// Assert
	if fresh <= stale {
		t.Errorf("expected recent report to score higher: fresh=%f stale=%f", fresh, stale)
	}
	// A fresh severity-8 report weighs ~2x: 8*2/10 = 1.6, clamped to 1.0
	if fresh < 0.99 {
		t.Errorf("expected fresh severity-8 report near clamp, got %f", fresh)
	}
	// A year-old report approaches severity*1 -> 0.8
	if stale < 0.79 || stale > 0.85 {
		t.Errorf("expected stale severity-8 report near 0.8, got %f", stale)
	}
}

func TestScore_LedgerUnavailable(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReportRepository{
		CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
			return 0, nil, errors.New("connection refused")
		},
	}

	engine := NewEngine(mockRepo, mocks.NewMockCache(), newTestLogger())

	// Act
	snap, err := engine.Score(ctx, "+15550001111")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
	if snap != nil {
		t.Error("expected nil snapshot on ledger failure")
	}
}

func TestInvalidate_DropsCachedSnapshot(t *testing.T) {
	// Arrange
	ctx := context.Background()
	number := "+15550001111"

	calls := 0
	mockRepo := &mocks.MockReportRepository{
		CountAndAggregateFunc: func(ctx context.Context, n string) (int, []domain.ReportAggregate, error) {
			calls++
			if calls == 1 {
				return 0, nil, nil
			}
			return 1, []domain.ReportAggregate{{Severity: 8, Timestamp: time.Now()}}, nil
		},
	}
	mockCache := mocks.NewMockCache()
	engine := NewEngine(mockRepo, mockCache, newTestLogger())

	// Act: score, invalidate, score again
	first, err := engine.Score(ctx, number)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := engine.Invalidate(ctx, number); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := engine.Score(ctx, number)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Assert
	if first.ReportCount != 0 {
		t.Errorf("expected first snapshot with 0 reports, got %d", first.ReportCount)
	}
	if second.ReportCount != 1 {
		t.Errorf("expected fresh snapshot after invalidation, got count %d", second.ReportCount)
	}
	if calls != 2 {
		t.Errorf("expected 2 ledger reads, got %d", calls)
	}
}
