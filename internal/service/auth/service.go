package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims are the JWT claims issued by this service.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"type"` // "access" or "refresh"
}

// Service authenticates users by phone number and issues HS256 token pairs.
type Service struct {
	users           ports.UserRepository
	email           ports.EmailService
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	log             *zap.Logger
}

func NewService(users ports.UserRepository, email ports.EmailService, jwtSecret string, accessDuration, refreshDuration time.Duration, log *zap.Logger) ports.AuthService {
	return &Service{
		users:           users,
		email:           email,
		secret:          []byte(jwtSecret),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		log:             log,
	}
}

func (s *Service) Login(ctx context.Context, phoneNumber, password string) (string, string, error) {
	user, err := s.users.FindByPhone(ctx, domain.NormalizePhone(phoneNumber))
	if err != nil || user == nil {
		return "", "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.Save(ctx, user); err != nil {
		s.log.Warn("Failed to record login time", zap.String("user_id", user.ID), zap.Error(err))
	}

	access, err := s.sign(user, "access", s.accessDuration)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.sign(user, "refresh", s.refreshDuration)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Service) Register(ctx context.Context, user *domain.User) error {
	if !domain.ValidPhone(user.PhoneNumber) {
		return fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	if user.FirstName == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len(user.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	normalized := domain.NormalizePhone(user.PhoneNumber)
	existing, err := s.users.FindByPhone(ctx, normalized)
	if err != nil {
		return fmt.Errorf("%w: checking phone uniqueness: %v", domain.ErrDataUnavailable, err)
	}
	if existing != nil {
		return fmt.Errorf("%w: phone number already registered", domain.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.PhoneNumber = normalized
	user.Password = string(hashed)
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("%w: saving user: %v", domain.ErrDataUnavailable, err)
	}

	if s.email != nil && user.Email != "" {
		if err := s.email.SendWelcome(ctx, user); err != nil {
			s.log.Warn("Failed to send welcome email", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil || user == nil || !user.IsActive {
		return "", ErrInvalidCredentials
	}

	return s.sign(user, "access", s.accessDuration)
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.parse(tokenStr)
	if err != nil || claims.Type != "access" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: loading user: %v", domain.ErrDataUnavailable, err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Type: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
