package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-service/internal/domain"
)

// ErrDayHasEvents is returned by RecordAbsence when the user already has an event in the window
var ErrDayHasEvents = errors.New("user already has an event in the window")

// EventRepository defines the interface for the activity event ledger
type EventRepository interface {
	RecordTransition(ctx context.Context, userID uuid.UUID, status domain.Status, activeDuration *int64, at time.Time) (uuid.UUID, error)
	RecordAbsence(ctx context.Context, userID uuid.UUID, from, to, at time.Time) (uuid.UUID, error)
	ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error)
	MarkNotified(ctx context.Context, eventID uuid.UUID) error
	SumDurations(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (int64, error)
	HasEventBetween(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (bool, error)
	History(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]*domain.ActivityEvent, error)
}

// eventRepositoryImpl is the GORM implementation of EventRepository
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

// RecordTransition sets the user's status and appends the matching event atomically.
// A break_end is followed by a second status write to active at the same instant.
// Returns gorm.ErrRecordNotFound when the user does not exist.
func (r *eventRepositoryImpl) RecordTransition(ctx context.Context, userID uuid.UUID, status domain.Status, activeDuration *int64, at time.Time) (uuid.UUID, error) {
	at = at.UTC().Truncate(time.Second)
	event := &domain.ActivityEvent{
		UserID:                userID,
		EventType:             status,
		OccurredAt:            at,
		ActiveDurationSeconds: activeDuration,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setStatus(tx, userID, status, at); err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if status == domain.StatusBreakEnd {
			return setStatus(tx, userID, domain.StatusActive, at)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return event.ID, nil
}

// RecordAbsence appends an absent event at `at` unless the user has any event in [from, to].
// The user row is locked for the check and the write, so concurrent callers append at most once.
func (r *eventRepositoryImpl) RecordAbsence(ctx context.Context, userID uuid.UUID, from, to, at time.Time) (uuid.UUID, error) {
	at = at.UTC().Truncate(time.Second)
	event := &domain.ActivityEvent{
		UserID:     userID,
		EventType:  domain.StatusAbsent,
		OccurredAt: at,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked domain.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", userID).
			First(&locked).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.ActivityEvent{}).
			Where("user_id = ? AND occurred_at BETWEEN ? AND ?", userID, from.UTC(), to.UTC()).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDayHasEvents
		}

		if err := setStatus(tx, userID, domain.StatusAbsent, at); err != nil {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return event.ID, nil
}

func setStatus(tx *gorm.DB, userID uuid.UUID, status domain.Status, at time.Time) error {
	res := tx.Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"status":             status,
			"last_status_change": at,
			"updated_at":         at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUnnotified returns alert-worthy events not yet delivered, newest first
func (r *eventRepositoryImpl) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	var events []domain.UnnotifiedEvent
	err := r.db.WithContext(ctx).
		Table("user_activity_events AS e").
		Select("e.id, e.user_id, e.event_type, e.occurred_at, e.active_duration_seconds, u.username, u.name, u.email, u.department").
		Joins("JOIN users u ON u.id = e.user_id").
		Where("e.event_type IN ? AND e.notified = ?", domain.AlertWorthyStatuses(), false).
		Order("e.occurred_at DESC, e.id").
		Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkNotified flags the event as delivered. Marking twice is a no-op.
func (r *eventRepositoryImpl) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Where("id = ? AND notified = ?", eventID, false).
		Update("notified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.ActivityEvent{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumDurations totals active_duration_seconds of the given event types with occurred_at in [from, to].
// Events without a duration contribute nothing.
func (r *eventRepositoryImpl) SumDurations(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (int64, error) {
	if len(types) == 0 {
		return 0, nil
	}
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Select("COALESCE(SUM(active_duration_seconds), 0)").
		Where("user_id = ? AND event_type IN ? AND occurred_at BETWEEN ? AND ?", userID, types, from.UTC(), to.UTC()).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// HasEventBetween reports whether the user has an event in [from, to]. A nil types slice matches any type.
func (r *eventRepositoryImpl) HasEventBetween(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.ActivityEvent{}).
		Where("user_id = ? AND occurred_at BETWEEN ? AND ?", userID, from.UTC(), to.UTC())
	if types != nil {
		q = q.Where("event_type IN ?", types)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// History returns the user's events newest first, excluding shift_start.
// The date filter applies only when both bounds are given.
func (r *eventRepositoryImpl) History(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]*domain.ActivityEvent, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND event_type <> ?", userID, domain.StatusShiftStart)
	if from != nil && to != nil {
		q = q.Where("occurred_at BETWEEN ? AND ?", from.UTC(), to.UTC())
	}

	var events []*domain.ActivityEvent
	if err := q.Order("occurred_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
