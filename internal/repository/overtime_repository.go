package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-service/internal/domain"
)

// OvertimeRepository defines the interface for per-day overtime records
type OvertimeRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, seconds int64) error
	SumByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int64, error)
	SumForDate(ctx context.Context, date time.Time) (int64, error)
}

// overtimeRepositoryImpl is the GORM implementation of OvertimeRepository
type overtimeRepositoryImpl struct {
	db *gorm.DB
}

// NewOvertimeRepository creates a new instance of OvertimeRepository
func NewOvertimeRepository(db *gorm.DB) OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

// Upsert stores the overtime for the calendar date of date, replacing any earlier value
func (r *overtimeRepositoryImpl) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, seconds int64) error {
	record := &domain.OvertimeRecord{
		UserID:          userID,
		Date:            domain.CalendarDate(date),
		OvertimeSeconds: seconds,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "ot_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"overtime_seconds", "updated_at"}),
		}).
		Create(record).Error
}

// SumByUser totals a user's overtime. The date range applies only when both bounds are given.
func (r *overtimeRepositoryImpl) SumByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.OvertimeRecord{}).
		Select("COALESCE(SUM(overtime_seconds), 0)").
		Where("user_id = ?", userID)
	if from != nil && to != nil {
		q = q.Where("ot_date BETWEEN ? AND ?", domain.CalendarDate(*from), domain.CalendarDate(*to))
	}

	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumForDate totals everyone's overtime on one calendar date
func (r *overtimeRepositoryImpl) SumForDate(ctx context.Context, date time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.OvertimeRecord{}).
		Select("COALESCE(SUM(overtime_seconds), 0)").
		Where("ot_date = ?", domain.CalendarDate(date)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
