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

type ContactRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewContactRepository(db *gorm.DB, log *zap.Logger) ports.ContactRepository {
	return &ContactRepository{
		db:  db,
		log: log,
	}
}

func (r *ContactRepository) Save(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id).Error
}

func (r *ContactRepository) ListByOwner(ctx context.Context, ownerID string, filter ports.ContactFilter) ([]domain.Contact, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Phone != "" {
		tx = tx.Where("phone_number LIKE ?", "%"+filter.Phone+"%")
	}
	for _, tag := range filter.Tags {
		tx = tx.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(tag))+"%")
	}

	var contacts []domain.Contact
	if err := tx.Order("updated_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) ListByPhone(ctx context.Context, normalizedNumber string) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", normalizedNumber).
		Order("name ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

type rankedContactRow struct {
	domain.Contact `gorm:"embedded"`
	Relevance      float64
}

// FindByNameRank matches over name and notes. Name matches outrank notes
// matches; within names, exact > prefix > substring.
func (r *ContactRepository) FindByNameRank(ctx context.Context, query string) ([]ports.RankedContact, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	like := "%" + q + "%"

	var rows []rankedContactRow
	err := r.db.WithContext(ctx).
		Model(&domain.Contact{}).
		Select(`contacts.*,
			CASE
				WHEN LOWER(name) = ? THEN 3.0
				WHEN LOWER(name) LIKE ? THEN 2.0
				WHEN LOWER(name) LIKE ? THEN 1.0
				ELSE 0.5
			END AS relevance`, q, q+"%", like).
		Where("LOWER(name) LIKE ? OR LOWER(notes) LIKE ?", like, like).
		Order("relevance DESC, name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]ports.RankedContact, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, ports.RankedContact{Contact: row.Contact, Rank: row.Relevance})
	}
	return ranked, nil
}

func (r *ContactRepository) Exists(ctx context.Context, ownerID, normalizedNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("user_id = ? AND phone_number = ?", ownerID, normalizedNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
