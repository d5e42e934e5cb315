package postgres

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserRepository(db *gorm.DB, log *zap.Logger) ports.UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, normalizedNumber string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "phone_number = ?", normalizedNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type rankedUserRow struct {
	domain.User `gorm:"embedded"`
	Relevance   float64
}

// FindByNameRank buckets matches by strength: exact name > prefix > substring.
func (r *UserRepository) FindByNameRank(ctx context.Context, query string) ([]ports.RankedUser, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var rows []rankedUserRow
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select(`users.*,
			CASE
				WHEN LOWER(first_name) = ? THEN 3.0
				WHEN LOWER(first_name) LIKE ? THEN 2.0
				ELSE 1.0
			END AS relevance`, q, q+"%").
		Where("LOWER(first_name) LIKE ?", "%"+q+"%").
		Order("relevance DESC, first_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]ports.RankedUser, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, ports.RankedUser{User: row.User, Rank: row.Relevance})
	}
	return ranked, nil
}
