package job

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"attendance-service/internal/domain"
	"attendance-service/internal/metrics"
	"attendance-service/internal/repository"
	"attendance-service/internal/timeutil"
)

const AbsenceJobName = "absence"

// AbsenceJob marks users absent once their shift has started and the grace period
// has passed without any event recorded today
type AbsenceJob struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	lock      Locker
	metrics   *metrics.Metrics
	logger    *zap.Logger
	loc       *time.Location
	grace     time.Duration
	timeout   time.Duration
	lockTTL   time.Duration
	now       func() time.Time
}

// AbsenceJobConfig holds the tick settings for AbsenceJob
type AbsenceJobConfig struct {
	Grace    time.Duration
	Timeout  time.Duration
	LockTTL  time.Duration
	Location *time.Location
}

// NewAbsenceJob creates a new AbsenceJob instance
func NewAbsenceJob(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	lock Locker,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg AbsenceJobConfig,
) *AbsenceJob {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AbsenceJob{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		lock:      lock,
		metrics:   m,
		logger:    logger,
		loc:       loc,
		grace:     cfg.Grace,
		timeout:   cfg.Timeout,
		lockTTL:   cfg.LockTTL,
		now:       time.Now,
	}
}

// Run executes one reconciliation tick. It is the cron entry point.
func (j *AbsenceJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	release, ok, err := j.lock.Acquire(ctx, AbsenceJobName, j.lockTTL)
	if err != nil {
		j.logger.Error("Failed to acquire absence tick lock", zap.Error(err))
		j.recordRun(metrics.JobResultError, start)
		return
	}
	if !ok {
		j.logger.Debug("Absence tick held by another replica")
		j.recordRun(metrics.JobResultSkipped, start)
		return
	}
	defer release()

	if _, err := j.RunTick(ctx, j.now(), j.grace); err != nil {
		j.recordRun(metrics.JobResultError, start)
		return
	}
	j.recordRun(metrics.JobResultSuccess, start)
}

// RunTick evaluates every tracked user at now. A failure for one user is logged and the
// scan continues; only a failure to list users is returned.
func (j *AbsenceJob) RunTick(ctx context.Context, now time.Time, grace time.Duration) (int, error) {
	users, err := j.userRepo.ListTracked(ctx)
	if err != nil {
		j.logger.Error("Failed to list tracked users", zap.Error(err))
		return 0, err
	}

	dayStart := timeutil.StartOfDay(now, j.loc)
	dayEnd := timeutil.EndOfDay(now, j.loc)

	marked := 0
	failed := 0
	for _, u := range users {
		shiftStart := timeutil.ClockOn(now, u.ShiftStartTime, j.loc)
		if now.Before(shiftStart.Add(grace)) {
			continue
		}

		absent, err := j.evaluate(ctx, u, now, dayStart, dayEnd)
		if err != nil {
			failed++
			j.logger.Error("Failed to evaluate absence",
				zap.String("user_id", u.ID.String()),
				zap.String("username", u.Username),
				zap.Error(err),
			)
			continue
		}
		if absent {
			marked++
			j.logger.Info("user.marked_absent",
				zap.String("user_id", u.ID.String()),
				zap.String("username", u.Username),
				zap.Time("shift_start", shiftStart),
			)
		}
	}

	if marked > 0 {
		j.logger.Info("Absence tick completed",
			zap.Int("marked", marked),
			zap.Int("failed", failed),
			zap.Int("users", len(users)),
		)
		if j.metrics != nil {
			j.metrics.AddAbsencesMarked(marked)
		}
	}
	return marked, nil
}

// evaluate marks one user absent unless they already have an event today.
// The repository repeats the check under a row lock, so overlapping ticks mark once.
func (j *AbsenceJob) evaluate(ctx context.Context, u *domain.User, now, dayStart, dayEnd time.Time) (bool, error) {
	seen, err := j.eventRepo.HasEventBetween(ctx, u.ID, nil, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}

	if _, err := j.eventRepo.RecordAbsence(ctx, u.ID, dayStart, dayEnd, now); err != nil {
		if errors.Is(err, repository.ErrDayHasEvents) {
			return false, nil
		}
		return false, err
	}
	if j.metrics != nil {
		j.metrics.IncrementStatusTransition(string(domain.StatusAbsent))
	}
	return true, nil
}

func (j *AbsenceJob) recordRun(result string, start time.Time) {
	if j.metrics != nil {
		j.metrics.RecordJobRun(AbsenceJobName, result, time.Since(start))
	}
}
