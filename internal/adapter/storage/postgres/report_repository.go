package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

type ReportRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReportRepository(db *gorm.DB, log *zap.Logger) ports.ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log,
	}
}

// Insert commits one report or none. The duplicate check and the write run
// in a single transaction so the one-report-per-reporter-per-day rule holds
// under concurrent submissions.
func (r *ReportRepository) Insert(ctx context.Context, report *domain.SpamReport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dayStart := time.Date(
			report.Timestamp.Year(), report.Timestamp.Month(), report.Timestamp.Day(),
			0, 0, 0, 0, report.Timestamp.Location(),
		)
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		err := tx.Model(&domain.SpamReport{}).
			Where("reporter_id = ? AND reported_number = ? AND timestamp >= ? AND timestamp < ?",
				report.ReporterID, report.ReportedNumber, dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateReport
		}

		return tx.Create(report).Error
	})
}

func (r *ReportRepository) CountAndAggregate(ctx context.Context, normalizedNumber string) (int, []domain.ReportAggregate, error) {
	var rows []domain.ReportAggregate
	err := r.db.WithContext(ctx).
		Model(&domain.SpamReport{}).
		Select("severity, timestamp").
		Where("reported_number = ?", normalizedNumber).
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}
	return len(rows), rows, nil
}

func (r *ReportRepository) ListByNumber(ctx context.Context, normalizedNumber string) ([]domain.SpamReport, error) {
	var reports []domain.SpamReport
	err := r.db.WithContext(ctx).
		Where("reported_number = ?", normalizedNumber).
		Order("timestamp DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepository) ListRecentByNumber(ctx context.Context, normalizedNumber string, since time.Time, limit int) ([]domain.SpamReport, error) {
	var reports []domain.SpamReport
	err := r.db.WithContext(ctx).
		Where("reported_number = ? AND timestamp >= ?", normalizedNumber, since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
