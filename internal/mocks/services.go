package mocks

import (
	"context"

	"github.com/seu-repo/callguard/internal/domain"
)

// MockScoreService is a mock implementation of ScoreService
type MockScoreService struct {
	ScoreFunc      func(ctx context.Context, normalizedNumber string) (*domain.ScoreSnapshot, error)
	InvalidateFunc func(ctx context.Context, normalizedNumber string) error
}

func (m *MockScoreService) Score(ctx context.Context, normalizedNumber string) (*domain.ScoreSnapshot, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, normalizedNumber)
	}
	return &domain.ScoreSnapshot{PhoneNumber: normalizedNumber}, nil
}

func (m *MockScoreService) Invalidate(ctx context.Context, normalizedNumber string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, normalizedNumber)
	}
	return nil
}

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	SendFunc               func(ctx context.Context, to, subject, body string) error
	SendHTMLFunc           func(ctx context.Context, to, subject, htmlBody string) error
	SendTemplateFunc       func(ctx context.Context, to, templateName string, data map[string]interface{}) error
	SendWelcomeFunc        func(ctx context.Context, user *domain.User) error
	SendNumberReportedFunc func(ctx context.Context, user *domain.User, snapshot *domain.ScoreSnapshot) error
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

func (m *MockEmailService) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	if m.SendTemplateFunc != nil {
		return m.SendTemplateFunc(ctx, to, templateName, data)
	}
	return nil
}

func (m *MockEmailService) SendWelcome(ctx context.Context, user *domain.User) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(ctx, user)
	}
	return nil
}

func (m *MockEmailService) SendNumberReported(ctx context.Context, user *domain.User, snapshot *domain.ScoreSnapshot) error {
	if m.SendNumberReportedFunc != nil {
		return m.SendNumberReportedFunc(ctx, user, snapshot)
	}
	return nil
}
