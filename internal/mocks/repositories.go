package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc           func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	FindByPhoneFunc    func(ctx context.Context, normalizedNumber string) (*domain.User, error)
	FindByNameRankFunc func(ctx context.Context, query string) ([]ports.RankedUser, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, normalizedNumber string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, normalizedNumber)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByNameRank(ctx context.Context, query string) ([]ports.RankedUser, error) {
	if m.FindByNameRankFunc != nil {
		return m.FindByNameRankFunc(ctx, query)
	}
	return nil, nil
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	SaveFunc           func(ctx context.Context, contact *domain.Contact) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Contact, error)
	DeleteFunc         func(ctx context.Context, id string) error
	ListByOwnerFunc    func(ctx context.Context, ownerID string, filter ports.ContactFilter) ([]domain.Contact, error)
	ListByPhoneFunc    func(ctx context.Context, normalizedNumber string) ([]domain.Contact, error)
	FindByNameRankFunc func(ctx context.Context, query string) ([]ports.RankedContact, error)
	ExistsFunc         func(ctx context.Context, ownerID, normalizedNumber string) (bool, error)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *domain.Contact) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockContactRepository) ListByOwner(ctx context.Context, ownerID string, filter ports.ContactFilter) ([]domain.Contact, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, filter)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactRepository) ListByPhone(ctx context.Context, normalizedNumber string) ([]domain.Contact, error) {
	if m.ListByPhoneFunc != nil {
		return m.ListByPhoneFunc(ctx, normalizedNumber)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactRepository) FindByNameRank(ctx context.Context, query string) ([]ports.RankedContact, error) {
	if m.FindByNameRankFunc != nil {
		return m.FindByNameRankFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockContactRepository) Exists(ctx context.Context, ownerID, normalizedNumber string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, ownerID, normalizedNumber)
	}
	return false, nil
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	InsertFunc             func(ctx context.Context, report *domain.SpamReport) error
	CountAndAggregateFunc  func(ctx context.Context, normalizedNumber string) (int, []domain.ReportAggregate, error)
	ListByNumberFunc       func(ctx context.Context, normalizedNumber string) ([]domain.SpamReport, error)
	ListRecentByNumberFunc func(ctx context.Context, normalizedNumber string, since time.Time, limit int) ([]domain.SpamReport, error)
}

func (m *MockReportRepository) Insert(ctx context.Context, report *domain.SpamReport) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, report)
	}
	return nil
}

func (m *MockReportRepository) CountAndAggregate(ctx context.Context, normalizedNumber string) (int, []domain.ReportAggregate, error) {
	if m.CountAndAggregateFunc != nil {
		return m.CountAndAggregateFunc(ctx, normalizedNumber)
	}
	return 0, nil, nil
}

func (m *MockReportRepository) ListByNumber(ctx context.Context, normalizedNumber string) ([]domain.SpamReport, error) {
	if m.ListByNumberFunc != nil {
		return m.ListByNumberFunc(ctx, normalizedNumber)
	}
	return []domain.SpamReport{}, nil
}

func (m *MockReportRepository) ListRecentByNumber(ctx context.Context, normalizedNumber string, since time.Time, limit int) ([]domain.SpamReport, error) {
	if m.ListRecentByNumberFunc != nil {
		return m.ListRecentByNumberFunc(ctx, normalizedNumber, since, limit)
	}
	return []domain.SpamReport{}, nil
}
