package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendance-service/internal/domain"
	"attendance-service/internal/metrics"
	"attendance-service/internal/repository"
	"attendance-service/internal/response"
)

// LedgerService records status transitions and tracks alert delivery
type LedgerService interface {
	RecordStatus(ctx context.Context, userID uuid.UUID, status string, activeDuration *int64) (uuid.UUID, error)
	ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error)
	MarkNotified(ctx context.Context, eventID uuid.UUID) error
}

type ledgerServiceImpl struct {
	eventRepo repository.EventRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	opts      options
}

// NewLedgerService creates a new instance of LedgerService
func NewLedgerService(eventRepo repository.EventRepository, m *metrics.Metrics, logger *zap.Logger, opts ...Option) LedgerService {
	return &ledgerServiceImpl{
		eventRepo: eventRepo,
		metrics:   m,
		logger:    logger,
		opts:      applyOptions(opts),
	}
}

// RecordStatus validates the status and appends it to the ledger at the current instant
func (s *ledgerServiceImpl) RecordStatus(ctx context.Context, userID uuid.UUID, status string, activeDuration *int64) (uuid.UUID, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeInvalidStatus, "Invalid status", status)
	}
	if activeDuration != nil && *activeDuration < 0 {
		return uuid.Nil, response.NewValidationError("activeDurationSeconds must not be negative", "")
	}

	eventID, err := s.eventRepo.RecordTransition(ctx, userID, st, activeDuration, s.opts.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, response.NewNotFoundError("User not found", userID.String())
		}
		s.logger.Error("Failed to record status transition",
			zap.String("user_id", userID.String()),
			zap.String("status", string(st)),
			zap.Error(err),
		)
		return uuid.Nil, response.NewStoreError("Failed to record status", err)
	}

	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.String("status", string(st)),
		zap.String("event_id", eventID.String()),
	}
	if activeDuration != nil {
		fields = append(fields, zap.Int64("active_duration_seconds", *activeDuration))
	}
	s.logger.Info("user.status_set", fields...)

	if s.metrics != nil {
		s.metrics.IncrementStatusTransition(string(st))
	}
	return eventID, nil
}

func (s *ledgerServiceImpl) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	events, err := s.eventRepo.ListUnnotified(ctx)
	if err != nil {
		return nil, response.NewStoreError("Failed to list unnotified events", err)
	}
	if events == nil {
		events = []domain.UnnotifiedEvent{}
	}
	return events, nil
}

// MarkNotified acknowledges delivery of an event. Repeated calls succeed.
func (s *ledgerServiceImpl) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	if err := s.eventRepo.MarkNotified(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Event not found", eventID.String())
		}
		return response.NewStoreError("Failed to mark event notified", err)
	}

	s.logger.Info("event.mark_notified", zap.String("event_id", eventID.String()))
	return nil
}
