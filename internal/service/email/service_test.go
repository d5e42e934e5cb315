package email

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
)

// MockProvider is a mock email provider for testing
type MockProvider struct {
	SentEmails []MockEmail
	ShouldFail bool
}

type MockEmail struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

func (m *MockProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if m.ShouldFail {
		return errors.New("mock send failed")
	}
	m.SentEmails = append(m.SentEmails, MockEmail{To: to, Subject: subject, Body: body, IsHTML: isHTML})
	return nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(provider *MockProvider) *Service {
	s := &Service{
		config: &Config{
			Provider:  "mock",
			FromEmail: "test@callguard.io",
			FromName:  "CallGuard Test",
			BaseURL:   "http://localhost:3000",
		},
		provider: provider,
		log:      newTestLogger(),
	}
	s.templates = make(map[string]*template.Template)
	s.loadTemplates()
	return s
}

func TestService_Send_Success(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)

	// Act
	err := service.Send(context.Background(), "user@example.com", "Test Subject", "Test Body")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mockProvider.SentEmails) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mockProvider.SentEmails))
	}
	if mockProvider.SentEmails[0].IsHTML {
		t.Error("expected plain-text email")
	}
}

func TestService_Send_ProviderFailure(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{ShouldFail: true}
	service := newTestService(mockProvider)

	// Act
	err := service.Send(context.Background(), "user@example.com", "Subject", "Body")

	// Assert
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestService_SendTemplate_UnknownTemplate(t *testing.T) {
	// Arrange
	service := newTestService(&MockProvider{})

	// Act
	err := service.SendTemplate(context.Background(), "user@example.com", "does_not_exist", nil)

	// Assert
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestService_SendWelcome(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)
	user := &domain.User{FirstName: "Alice", PhoneNumber: "+15550001111", Email: "alice@example.com"}

	// Act
	err := service.SendWelcome(context.Background(), user)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mockProvider.SentEmails) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mockProvider.SentEmails))
	}
	sent := mockProvider.SentEmails[0]
	if sent.To != user.Email {
		t.Errorf("expected recipient %s, got %s", user.Email, sent.To)
	}
	if !sent.IsHTML {
		t.Error("expected HTML email")
	}
	if !strings.Contains(sent.Body, "Alice") {
		t.Error("expected body to contain the user's name")
	}
}

func TestService_SendNumberReported(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)
	user := &domain.User{FirstName: "Bianca", PhoneNumber: "+15550002222", Email: "bianca@example.com"}
	snap := &domain.ScoreSnapshot{PhoneNumber: "+15550002222", Likelihood: 0.85, ReportCount: 12}

	// Act
	err := service.SendNumberReported(context.Background(), user, snap)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	sent := mockProvider.SentEmails[0]
	if !strings.Contains(sent.Body, "+15550002222") {
		t.Error("expected body to contain the reported number")
	}
	if !strings.Contains(sent.Body, "85%") {
		t.Error("expected body to contain the likelihood percentage")
	}
	if !strings.Contains(sent.Body, "12") {
		t.Error("expected body to contain the report count")
	}
}
