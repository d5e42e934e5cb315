package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(users *mocks.MockUserRepository, email *mocks.MockEmailService) *Service {
	return NewService(users, email, "test-secret", 15*time.Minute, 7*24*time.Hour, newTestLogger()).(*Service)
}

func hashedUser(password string) *domain.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:          "user-a",
		PhoneNumber: "+15550001111",
		FirstName:   "Alice",
		Email:       "alice@example.com",
		Password:    string(hashed),
		IsActive:    true,
	}
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := hashedUser("s3cretpass")
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			if n == user.PhoneNumber {
				return user, nil
			}
			return nil, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})

	// Act: raw formatting is accepted, lookup is by normalized number
	access, refresh, err := service.Login(ctx, "+1 (555) 000-1111", "s3cretpass")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}
	validated, err := service.ValidateToken(ctx, access)
	if err != nil {
		t.Fatalf("expected access token to validate, got %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, validated.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	user := hashedUser("s3cretpass")
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			return user, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})

	// Act
	_, _, err := service.Login(context.Background(), user.PhoneNumber, "nope")

	// Assert
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownNumber(t *testing.T) {
	// Arrange
	service := newTestService(&mocks.MockUserRepository{}, &mocks.MockEmailService{})

	// Act
	_, _, err := service.Login(context.Background(), "+15550009999", "whatever")

	// Assert
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_HashesAndNormalizes(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var saved *domain.User
	mockUsers := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, u *domain.User) error {
			saved = u
			return nil
		},
	}
	welcomed := false
	mockEmail := &mocks.MockEmailService{
		SendWelcomeFunc: func(ctx context.Context, u *domain.User) error {
			welcomed = true
			return nil
		},
	}
	service := newTestService(mockUsers, mockEmail)

	// Act
	err := service.Register(ctx, &domain.User{
		PhoneNumber: "+1 (555) 000-1111",
		FirstName:   "Alice",
		Email:       "alice@example.com",
		Password:    "s3cretpass",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved == nil {
		t.Fatal("expected user to be saved")
	}
	if saved.PhoneNumber != "+15550001111" {
		t.Errorf("expected normalized number, got %s", saved.PhoneNumber)
	}
	if saved.Password == "s3cretpass" {
		t.Error("expected password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("s3cretpass")) != nil {
		t.Error("expected hash to verify against the original password")
	}
	if !saved.IsActive {
		t.Error("expected new user to be active")
	}
	if !welcomed {
		t.Error("expected welcome email")
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	// Arrange
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			return &domain.User{ID: "existing"}, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})

	// Act
	err := service.Register(context.Background(), &domain.User{
		PhoneNumber: "+15550001111",
		FirstName:   "Alice",
		Password:    "s3cretpass",
	})

	// Assert
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	// Arrange
	service := newTestService(&mocks.MockUserRepository{}, &mocks.MockEmailService{})

	// Act
	err := service.Register(context.Background(), &domain.User{
		PhoneNumber: "+15550001111",
		FirstName:   "Alice",
		Password:    "short",
	})

	// Assert
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRefreshToken_IssuesNewAccessToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := hashedUser("s3cretpass")
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})
	_, refresh, err := service.Login(ctx, user.PhoneNumber, "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	access, err := service.RefreshToken(ctx, refresh)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.ValidateToken(ctx, access); err != nil {
		t.Fatalf("expected refreshed token to validate, got %v", err)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	// Arrange: an access token must not pass as a refresh token
	ctx := context.Background()
	user := hashedUser("s3cretpass")
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})
	access, _, err := service.Login(ctx, user.PhoneNumber, "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	_, err = service.RefreshToken(ctx, access)

	// Assert
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateToken_InactiveUser(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := hashedUser("s3cretpass")
	mockUsers := &mocks.MockUserRepository{
		FindByPhoneFunc: func(ctx context.Context, n string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			inactive := *user
			inactive.IsActive = false
			return &inactive, nil
		},
	}
	service := newTestService(mockUsers, &mocks.MockEmailService{})
	access, _, err := service.Login(ctx, user.PhoneNumber, "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	_, err = service.ValidateToken(ctx, access)

	// Assert
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	// Arrange
	service := newTestService(&mocks.MockUserRepository{}, &mocks.MockEmailService{})

	// Act
	_, err := service.ValidateToken(context.Background(), "not.a.token")

	// Assert
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
