package ports

import (
	"context"

	"github.com/seu-repo/callguard/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, phoneNumber, password string) (string, string, error) // token, refresh, err
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, token string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type ScoreService interface {
	// Score computes (or serves from cache) the spam-likelihood snapshot
	// of a normalized phone number.
	Score(ctx context.Context, normalizedNumber string) (*domain.ScoreSnapshot, error)
	// Invalidate drops the cached snapshot so the next Score call reads
	// the ledger again.
	Invalidate(ctx context.Context, normalizedNumber string) error
}

type SearchService interface {
	Search(ctx context.Context, kind domain.SearchKind, query string, requester *domain.User, page, pageSize int) (*domain.SearchPage, error)
}

// SpamCheck is a score snapshot plus the most recent reporter summaries.
type SpamCheck struct {
	domain.ScoreSnapshot
	RecentReports []domain.ReportSummary `json:"recent_reports"`
}

type ReportService interface {
	Report(ctx context.Context, reporter *domain.User, phoneNumber string, reportType domain.ReportType, severity int, details, evidence string) (*domain.ScoreSnapshot, error)
	CheckNumber(ctx context.Context, phoneNumber string) (*SpamCheck, error)
	ListByNumber(ctx context.Context, phoneNumber string) ([]domain.SpamReport, error)
}

type ContactService interface {
	Create(ctx context.Context, ownerID string, contact *domain.Contact) error
	Update(ctx context.Context, ownerID string, contact *domain.Contact) error
	Delete(ctx context.Context, ownerID, contactID string) error
	Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error)
	List(ctx context.Context, ownerID string, filter ContactFilter) ([]domain.Contact, error)
}

// EmailService sends user-facing notifications.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error
	// SendWelcome sends a welcome email to a newly registered user.
	SendWelcome(ctx context.Context, user *domain.User) error
	// SendNumberReported warns a registered user that their own number has
	// been accumulating spam reports.
	SendNumberReported(ctx context.Context, user *domain.User, snapshot *domain.ScoreSnapshot) error
}
