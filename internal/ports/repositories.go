package ports

import (
	"context"
	"time"

	"github.com/seu-repo/callguard/internal/domain"
)

// RankedUser is a user lookup hit with its relevance rank.
type RankedUser struct {
	User domain.User
	Rank float64
}

// RankedContact is a contact lookup hit with its relevance rank.
type RankedContact struct {
	Contact domain.Contact
	Rank    float64
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhone(ctx context.Context, normalizedNumber string) (*domain.User, error)
	// FindByNameRank returns users matching query by first name, most
	// relevant first (exact > prefix > substring).
	FindByNameRank(ctx context.Context, query string) ([]RankedUser, error)
}

type ContactRepository interface {
	Save(ctx context.Context, contact *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, filter ContactFilter) ([]domain.Contact, error)
	ListByPhone(ctx context.Context, normalizedNumber string) ([]domain.Contact, error)
	// FindByNameRank matches over (name, notes), most relevant first.
	FindByNameRank(ctx context.Context, query string) ([]RankedContact, error)
	// Exists is the privacy gate probe: does owner's contact list hold
	// this phone number?
	Exists(ctx context.Context, ownerID, normalizedNumber string) (bool, error)
}

// ContactFilter narrows an owner's contact listing.
type ContactFilter struct {
	Name  string
	Phone string
	Tags  []string
}

type ReportRepository interface {
	// Insert writes one report atomically. Returns
	// domain.ErrDuplicateReport when the same reporter already reported
	// the number on the same calendar day.
	Insert(ctx context.Context, report *domain.SpamReport) error
	// CountAndAggregate returns the report count for a number together
	// with the (severity, timestamp) pairs the score engine consumes.
	CountAndAggregate(ctx context.Context, normalizedNumber string) (int, []domain.ReportAggregate, error)
	ListByNumber(ctx context.Context, normalizedNumber string) ([]domain.SpamReport, error)
	ListRecentByNumber(ctx context.Context, normalizedNumber string, since time.Time, limit int) ([]domain.SpamReport, error)
}
