package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendance-service/internal/domain"
	"attendance-service/internal/repository"
	"attendance-service/internal/response"
	"attendance-service/internal/timeutil"
)

// Event types whose stored duration is credited to each bucket.
// The stored duration belongs to the segment the event closes, so it lands in the
// bucket opposite to the event type. Reported totals depend on this mapping.
var (
	activeBucketTypes   = []domain.Status{domain.StatusInactive, domain.StatusBreakStart}
	inactiveBucketTypes = []domain.Status{domain.StatusActive}
	breakBucketTypes    = []domain.Status{domain.StatusBreakEnd}
)

// MetricsService aggregates ledger totals for reporting
type MetricsService interface {
	GetMetrics(ctx context.Context, userID uuid.UUID, start, end string, includeRunning bool) (*domain.MetricsResult, error)
	SumOvertime(ctx context.Context, userID uuid.UUID, start, end string) (int64, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type metricsServiceImpl struct {
	userRepo     repository.UserRepository
	eventRepo    repository.EventRepository
	overtimeRepo repository.OvertimeRepository
	logger       *zap.Logger
	opts         options
}

// NewMetricsService creates a new instance of MetricsService
func NewMetricsService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	overtimeRepo repository.OvertimeRepository,
	logger *zap.Logger,
	opts ...Option,
) MetricsService {
	return &metricsServiceImpl{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		overtimeRepo: overtimeRepo,
		logger:       logger,
		opts:         applyOptions(opts),
	}
}

// GetMetrics returns the user's active, inactive, break, worked and overtime seconds
// between start 00:00:00 and end 23:59:59. With includeRunning, the segment still open
// since the last status change is credited to the bucket of the current status.
func (s *metricsServiceImpl) GetMetrics(ctx context.Context, userID uuid.UUID, start, end string, includeRunning bool) (*domain.MetricsResult, error) {
	if start == "" || end == "" {
		return nil, response.NewAppError(response.ErrCodeMissingRange, "Both start and end dates are required", "")
	}
	rangeStart, rangeEnd, err := s.parseRange(start, end)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", userID.String())
		}
		return nil, response.NewStoreError("Failed to load user", err)
	}

	active, err := s.eventRepo.SumDurations(ctx, userID, activeBucketTypes, rangeStart, rangeEnd)
	if err != nil {
		return nil, response.NewStoreError("Failed to sum active time", err)
	}
	inactive, err := s.eventRepo.SumDurations(ctx, userID, inactiveBucketTypes, rangeStart, rangeEnd)
	if err != nil {
		return nil, response.NewStoreError("Failed to sum inactive time", err)
	}
	brk, err := s.eventRepo.SumDurations(ctx, userID, breakBucketTypes, rangeStart, rangeEnd)
	if err != nil {
		return nil, response.NewStoreError("Failed to sum break time", err)
	}

	now := s.opts.now()
	if includeRunning && user.LastStatusChange != nil {
		live := timeutil.OverlapSeconds(*user.LastStatusChange, now, rangeStart, rangeEnd)
		if live > 0 {
			switch user.Status {
			case domain.StatusActive:
				active += live
			case domain.StatusInactive:
				inactive += live
			case domain.StatusBreakStart:
				brk += live
			}
		}
	}

	overtime, err := s.overtimeRepo.SumByUser(ctx, userID, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, response.NewStoreError("Failed to sum overtime", err)
	}

	return &domain.MetricsResult{
		ActiveSeconds:    active,
		InactiveSeconds:  inactive,
		BreakSeconds:     brk,
		WorkedSeconds:    active,
		OvertimeSeconds:  overtime,
		Status:           user.Status,
		LastStatusChange: user.LastStatusChange,
		AsOf:             now.UTC().Truncate(time.Second),
	}, nil
}

// SumOvertime totals the user's overtime between two dates, or over all time unless both are given
func (s *metricsServiceImpl) SumOvertime(ctx context.Context, userID uuid.UUID, start, end string) (int64, error) {
	var from, to *time.Time
	if start != "" && end != "" {
		rangeStart, rangeEnd, err := s.parseRange(start, end)
		if err != nil {
			return 0, err
		}
		from, to = &rangeStart, &rangeEnd
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, response.NewNotFoundError("User not found", userID.String())
		}
		return 0, response.NewStoreError("Failed to load user", err)
	}

	total, err := s.overtimeRepo.SumByUser(ctx, userID, from, to)
	if err != nil {
		return 0, response.NewStoreError("Failed to sum overtime", err)
	}
	return total, nil
}

// DashboardStats counts active and inactive users and today's overtime
func (s *metricsServiceImpl) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.userRepo.CountByStatus(ctx)
	if err != nil {
		return nil, response.NewStoreError("Failed to count users", err)
	}

	today := s.opts.now().In(s.opts.loc)
	overtime, err := s.overtimeRepo.SumForDate(ctx, today)
	if err != nil {
		return nil, response.NewStoreError("Failed to sum today's overtime", err)
	}

	return &domain.DashboardStats{
		ActiveUsers:           counts[domain.StatusActive],
		InactiveUsers:         counts[domain.StatusInactive],
		OvertimeTodaySeconds:  overtime,
		OvertimeTodayReadable: timeutil.SecondsToHMS(overtime),
	}, nil
}

// parseRange resolves two YYYY-MM-DD dates to the first and last second of the span
func (s *metricsServiceImpl) parseRange(start, end string) (time.Time, time.Time, error) {
	rangeStart, _, err := timeutil.DayBounds(start, s.opts.loc)
	if err != nil {
		return time.Time{}, time.Time{}, response.NewValidationError("Invalid start date, expected YYYY-MM-DD", start)
	}
	_, rangeEnd, err := timeutil.DayBounds(end, s.opts.loc)
	if err != nil {
		return time.Time{}, time.Time{}, response.NewValidationError("Invalid end date, expected YYYY-MM-DD", end)
	}
	return rangeStart, rangeEnd, nil
}
