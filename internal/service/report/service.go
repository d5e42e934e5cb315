package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/adapter/queue"
	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/observability/telemetry"
	"github.com/seu-repo/callguard/internal/ports"
)

const (
	// alertThreshold is the likelihood above which a registered owner of a
	// reported number is warned by email.
	alertThreshold = 0.7

	recentReportWindow = 90 * 24 * time.Hour
	recentReportLimit  = 10
)

// Service runs the report pipeline: validate, persist, invalidate every
// cache the new report makes stale, then publish and rescore.
type Service struct {
	reports   ports.ReportRepository
	users     ports.UserRepository
	scores    ports.ScoreService
	cache     ports.Cache
	mq        queue.MessageQueue
	email     ports.EmailService
	threshold float64
	log       *zap.Logger
}

func NewService(reports ports.ReportRepository, users ports.UserRepository, scores ports.ScoreService, cache ports.Cache, mq queue.MessageQueue, email ports.EmailService, log *zap.Logger) ports.ReportService {
	return NewServiceWithThreshold(reports, users, scores, cache, mq, email, alertThreshold, log)
}

// NewServiceWithThreshold overrides the owner-alert likelihood threshold, for
// deployments that tune it via config.
func NewServiceWithThreshold(reports ports.ReportRepository, users ports.UserRepository, scores ports.ScoreService, cache ports.Cache, mq queue.MessageQueue, email ports.EmailService, threshold float64, log *zap.Logger) ports.ReportService {
	if threshold <= 0 {
		threshold = alertThreshold
	}
	return &Service{
		reports:   reports,
		users:     users,
		scores:    scores,
		cache:     cache,
		mq:        mq,
		email:     email,
		threshold: threshold,
		log:       log,
	}
}

// reportCreatedEvent is the payload published on queue.SubjectReportCreated.
type reportCreatedEvent struct {
	ReportID       string            `json:"report_id"`
	ReportedNumber string            `json:"reported_number"`
	ReportType     domain.ReportType `json:"report_type"`
	Severity       int               `json:"severity"`
	Likelihood     float64           `json:"likelihood"`
	ReportCount    int               `json:"report_count"`
	Timestamp      time.Time         `json:"timestamp"`
}

func (s *Service) Report(ctx context.Context, reporter *domain.User, phoneNumber string, reportType domain.ReportType, severity int, details, evidence string) (*domain.ScoreSnapshot, error) {
	if reporter == nil {
		return nil, fmt.Errorf("%w: reporter is required", domain.ErrInvalidInput)
	}
	if !domain.ValidPhone(phoneNumber) {
		return nil, fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	if _, ok := domain.ParseReportType(string(reportType)); !ok {
		return nil, fmt.Errorf("%w: unknown report type %q", domain.ErrInvalidInput, reportType)
	}
	if severity < 1 || severity > 10 {
		return nil, fmt.Errorf("%w: severity must be between 1 and 10", domain.ErrInvalidInput)
	}

	number := domain.NormalizePhone(phoneNumber)
	rec := &domain.SpamReport{
		ID:             uuid.New().String(),
		ReporterID:     reporter.ID,
		ReportedNumber: number,
		ReportType:     reportType,
		Details:        details,
		Severity:       severity,
		Evidence:       evidence,
		Timestamp:      time.Now().UTC(),
	}

	if err := s.reports.Insert(ctx, rec); err != nil {
		return nil, err
	}
	telemetry.SpamReportsTotal.WithLabelValues(string(reportType)).Inc()

	// Invalidate before returning so no reader can observe the new report
	// alongside a stale score or search result.
	if err := s.scores.Invalidate(ctx, number); err != nil {
		s.log.Warn("Failed to invalidate score cache", zap.String("number", number), zap.Error(err))
	}
	if err := s.cache.DeletePattern(ctx, "search_results_*"); err != nil {
		s.log.Warn("Failed to invalidate search result cache", zap.Error(err))
	} else {
		telemetry.CacheInvalidationsTotal.WithLabelValues("search").Inc()
	}

	snap, err := s.scores.Score(ctx, number)
	if err != nil {
		return nil, err
	}

	s.publishCreated(rec, snap)
	s.maybeAlertOwner(ctx, number, snap)

	return snap, nil
}

func (s *Service) CheckNumber(ctx context.Context, phoneNumber string) (*ports.SpamCheck, error) {
	if !domain.ValidPhone(phoneNumber) {
		return nil, fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	number := domain.NormalizePhone(phoneNumber)

	snap, err := s.scores.Score(ctx, number)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-recentReportWindow)
	recent, err := s.reports.ListRecentByNumber(ctx, number, since, recentReportLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recent reports for %s: %v", domain.ErrDataUnavailable, number, err)
	}

	check := &ports.SpamCheck{
		ScoreSnapshot: *snap,
		RecentReports: make([]domain.ReportSummary, 0, len(recent)),
	}
	for _, r := range recent {
		check.RecentReports = append(check.RecentReports, domain.ReportSummary{
			ReporterName: s.reporterName(ctx, r.ReporterID),
			ReportType:   r.ReportType,
			Severity:     r.Severity,
			Timestamp:    r.Timestamp,
		})
	}
	return check, nil
}

func (s *Service) ListByNumber(ctx context.Context, phoneNumber string) ([]domain.SpamReport, error) {
	if !domain.ValidPhone(phoneNumber) {
		return nil, fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	number := domain.NormalizePhone(phoneNumber)

	reports, err := s.reports.ListByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: listing reports for %s: %v", domain.ErrDataUnavailable, number, err)
	}
	return reports, nil
}

// reporterName resolves a reporter ID for display, falling back to
// "anonymous" when the account is gone. Reports outlive their reporters.
func (s *Service) reporterName(ctx context.Context, reporterID string) string {
	user, err := s.users.FindByID(ctx, reporterID)
	if err != nil || user == nil {
		return "anonymous"
	}
	return user.FirstName
}

func (s *Service) publishCreated(rec *domain.SpamReport, snap *domain.ScoreSnapshot) {
	if s.mq == nil {
		return
	}
	event := reportCreatedEvent{
		ReportID:       rec.ID,
		ReportedNumber: rec.ReportedNumber,
		ReportType:     rec.ReportType,
		Severity:       rec.Severity,
		Likelihood:     snap.Likelihood,
		ReportCount:    snap.ReportCount,
		Timestamp:      rec.Timestamp,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.mq.Publish(queue.SubjectReportCreated, data); err != nil {
		s.log.Warn("Failed to publish report event", zap.String("report_id", rec.ID), zap.Error(err))
	}
}

// maybeAlertOwner warns a registered user when their own number crosses the
// likelihood threshold. Best effort; an unreachable mailer never fails the
// report.
func (s *Service) maybeAlertOwner(ctx context.Context, number string, snap *domain.ScoreSnapshot) {
	if s.email == nil || snap.Likelihood < s.threshold {
		return
	}
	owner, err := s.users.FindByPhone(ctx, number)
	if err != nil || owner == nil || owner.Email == "" {
		return
	}
	if err := s.email.SendNumberReported(ctx, owner, snap); err != nil {
		s.log.Warn("Failed to send threshold alert", zap.String("number", number), zap.Error(err))
		return
	}
	if s.mq != nil {
		if data, err := json.Marshal(snap); err == nil {
			_ = s.mq.Publish(queue.SubjectScoreThreshold, data)
		}
	}
}
