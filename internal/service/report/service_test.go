package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/adapter/queue"
	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func reporter() *domain.User {
	return &domain.User{ID: "user-a", PhoneNumber: "+15550001111", FirstName: "Alice"}
}

func fixedScore(likelihood float64, count int) *mocks.MockScoreService {
	return &mocks.MockScoreService{
		ScoreFunc: func(ctx context.Context, n string) (*domain.ScoreSnapshot, error) {
			return &domain.ScoreSnapshot{PhoneNumber: n, Likelihood: likelihood, ReportCount: count}, nil
		},
	}
}

func TestReport_PersistsAndReturnsFreshScore(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var inserted *domain.SpamReport
	mockReports := &mocks.MockReportRepository{
		InsertFunc: func(ctx context.Context, r *domain.SpamReport) error {
			inserted = r
			return nil
		},
	}
	mq := mocks.NewMockMessageQueue()
	service := NewService(mockReports, &mocks.MockUserRepository{}, fixedScore(0.4, 3), mocks.NewMockCache(), mq, &mocks.MockEmailService{}, newTestLogger())

	// Act
	snap, err := service.Report(ctx, reporter(), "+1 (555) 000-2222", domain.ReportTypeScam, 8, "fake bank call", "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inserted == nil {
		t.Fatal("expected report to be persisted")
	}
	if inserted.ReportedNumber != "+15550002222" {
		t.Errorf("expected normalized number, got %s", inserted.ReportedNumber)
	}
	if inserted.ID == "" {
		t.Error("expected generated report ID")
	}
	if inserted.ReporterID != "user-a" {
		t.Errorf("expected reporter id, got %s", inserted.ReporterID)
	}
	if snap.Likelihood != 0.4 || snap.ReportCount != 3 {
		t.Errorf("expected fresh snapshot (0.4, 3), got (%f, %d)", snap.Likelihood, snap.ReportCount)
	}
}

func TestReport_InvalidatesCachesBeforeReturning(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := mocks.NewMockCache()
	_ = cache.Set(ctx, "search_results_phone_+15550002222", "stale", time.Minute)
	_ = cache.Set(ctx, "search_results_name_bob", "stale", time.Minute)
	_ = cache.Set(ctx, "unrelated_key", "keep", time.Minute)

	invalidated := false
	mockScores := fixedScore(0.2, 1)
	mockScores.InvalidateFunc = func(ctx context.Context, n string) error {
		if n != "+15550002222" {
			t.Errorf("expected score invalidation for reported number, got %s", n)
		}
		invalidated = true
		return nil
	}

	service := NewService(&mocks.MockReportRepository{}, &mocks.MockUserRepository{}, mockScores, cache, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	// Act
	_, err := service.Report(ctx, reporter(), "+15550002222", domain.ReportTypeSpam, 5, "", "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !invalidated {
		t.Error("expected score cache invalidation")
	}
	if cache.Has("search_results_phone_+15550002222") || cache.Has("search_results_name_bob") {
		t.Error("expected all search result keys dropped")
	}
	if !cache.Has("unrelated_key") {
		t.Error("expected unrelated keys untouched")
	}
}

func TestReport_DuplicateSameDay(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockReports := &mocks.MockReportRepository{
		InsertFunc: func(ctx context.Context, r *domain.SpamReport) error {
			return domain.ErrDuplicateReport
		},
	}
	invalidations := 0
	mockScores := fixedScore(0, 0)
	mockScores.InvalidateFunc = func(ctx context.Context, n string) error {
		invalidations++
		return nil
	}
	service := NewService(mockReports, &mocks.MockUserRepository{}, mockScores, mocks.NewMockCache(), mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	// Act
	_, err := service.Report(ctx, reporter(), "+15550002222", domain.ReportTypeSpam, 5, "", "")

	// Assert
	if !errors.Is(err, domain.ErrDuplicateReport) {
		t.Fatalf("expected ErrDuplicateReport, got %v", err)
	}
	if invalidations != 0 {
		t.Error("a rejected report must not invalidate caches")
	}
}

func TestReport_ValidatesInput(t *testing.T) {
	// Arrange
	service := NewService(&mocks.MockReportRepository{}, &mocks.MockUserRepository{}, fixedScore(0, 0), mocks.NewMockCache(), mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())
	ctx := context.Background()

	cases := []struct {
		name       string
		phone      string
		reportType domain.ReportType
		severity   int
	}{
		{"bad phone", "not-a-number", domain.ReportTypeSpam, 5},
		{"bad type", "+15550002222", domain.ReportType("gossip"), 5},
		{"severity too low", "+15550002222", domain.ReportTypeSpam, 0},
		{"severity too high", "+15550002222", domain.ReportTypeSpam, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := service.Report(ctx, reporter(), tc.phone, tc.reportType, tc.severity, "", "")

			// Assert
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestReport_PublishesCreatedEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mq := mocks.NewMockMessageQueue()
	service := NewService(&mocks.MockReportRepository{}, &mocks.MockUserRepository{}, fixedScore(0.5, 4), mocks.NewMockCache(), mq, &mocks.MockEmailService{}, newTestLogger())

	// Act
	_, err := service.Report(ctx, reporter(), "+15550002222", domain.ReportTypeRobocall, 6, "", "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	msgs := mq.GetPublishedMessages(queue.SubjectReportCreated)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(msgs))
	}
	var event map[string]interface{}
	if err := json.Unmarshal(msgs[0], &event); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if event["reported_number"] != "+15550002222" {
		t.Errorf("unexpected event payload: %v", event)
	}
	if event["report_type"] != "robocall" {
		t.Errorf("expected report_type robocall, got %v", event["report_type"])
	}
}

func TestReport_AlertsOwnerAboveThreshold(t *testing.T) {
	// Arrange
	ctx := context.Background()
	owner := &domain.User{ID: "user-b", PhoneNumber: "+15550002222", FirstName: "Bianca", Email: "bianca@example.com"}
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			if n == owner.PhoneNumber {
				return owner, nil
			}
			return nil, nil
		},
	}

	alerted := false
	mockEmail := &mocks.MockEmailService{
		SendNumberReportedFunc: func(ctx context.Context, user *domain.User, snap *domain.ScoreSnapshot) error {
			if user.ID != owner.ID {
				t.Errorf("expected alert to go to the number's owner, got %s", user.ID)
			}
			alerted = true
			return nil
		},
	}

	service := NewService(&mocks.MockReportRepository{}, mockUsers, fixedScore(0.85, 12), mocks.NewMockCache(), mocks.NewMockMessageQueue(), mockEmail, newTestLogger())

	// Act
	_, err := service.Report(ctx, reporter(), owner.PhoneNumber, domain.ReportTypeScam, 9, "", "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !alerted {
		t.Error("expected owner alert above threshold")
	}
}

func TestReport_NoAlertBelowThreshold(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockEmail := &mocks.MockEmailService{
		SendNumberReportedFunc: func(ctx context.Context, user *domain.User, snap *domain.ScoreSnapshot) error {
			t.Error("no alert expected below threshold")
			return nil
		},
	}
	service := NewService(&mocks.MockReportRepository{}, &mocks.MockUserRepository{}, fixedScore(0.3, 2), mocks.NewMockCache(), mocks.NewMockMessageQueue(), mockEmail, newTestLogger())

	// Act
	if _, err := service.Report(ctx, reporter(), "+15550002222", domain.ReportTypeSpam, 3, "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckNumber_IncludesRecentReports(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now().UTC()
	mockReports := &mocks.MockReportRepository{
		ListRecentByNumberFunc: func(ctx context.Context, n string, since time.Time, limit int) ([]domain.SpamReport, error) {
			if limit != recentReportLimit {
				t.Errorf("expected limit %d, got %d", recentReportLimit, limit)
			}
			return []domain.SpamReport{
				{ReporterID: "user-a", ReportType: domain.ReportTypeScam, Severity: 8, Timestamp: now},
				{ReporterID: "gone", ReportType: domain.ReportTypeSpam, Severity: 4, Timestamp: now.Add(-time.Hour)},
			}, nil
		},
	}
	mockUsers := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "user-a" {
				return &domain.User{ID: "user-a", FirstName: "Alice"}, nil
			}
			return nil, nil
		},
	}
	service := NewService(mockReports, mockUsers, fixedScore(0.6, 2), mocks.NewMockCache(), mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	// Act
	check, err := service.CheckNumber(ctx, "+15550002222")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if check.Likelihood != 0.6 {
		t.Errorf("expected likelihood 0.6, got %f", check.Likelihood)
	}
	if len(check.RecentReports) != 2 {
		t.Fatalf("expected 2 recent reports, got %d", len(check.RecentReports))
	}
	if check.RecentReports[0].ReporterName != "Alice" {
		t.Errorf("expected reporter name Alice, got %s", check.RecentReports[0].ReporterName)
	}
	if check.RecentReports[1].ReporterName != "anonymous" {
		t.Errorf("expected deleted reporter shown as anonymous, got %s", check.RecentReports[1].ReporterName)
	}
}

func TestCheckNumber_InvalidPhone(t *testing.T) {
	// Arrange
	service := NewService(&mocks.MockReportRepository{}, &mocks.MockUserRepository{}, fixedScore(0, 0), mocks.NewMockCache(), mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	// Act
	_, err := service.CheckNumber(context.Background(), "abc")

	// Assert
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
