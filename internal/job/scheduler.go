package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs registered jobs on fixed intervals. A tick that is still running
// when the next one is due is skipped, and a panicking tick is recovered.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	names  map[cron.EntryID]string
}

// NewScheduler creates a Scheduler evaluating schedules in loc
func NewScheduler(loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	cl := &cronLogger{logger: logger.Named("cron")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		names:  make(map[cron.EntryID]string),
	}
}

// Register schedules fn every interval
func (s *Scheduler) Register(name string, every time.Duration, fn func()) error {
	if every < time.Second {
		return fmt.Errorf("job %s: interval %s is below one second", name, every)
	}
	id := s.cron.Schedule(cron.Every(every), cron.FuncJob(fn))
	s.names[id] = name
	s.logger.Info("Job registered", zap.String("job", name), zap.Duration("every", every))
	return nil
}

// Jobs returns the names of the registered jobs
func (s *Scheduler) Jobs() []string {
	out := make([]string, 0, len(s.names))
	for _, e := range s.cron.Entries() {
		out = append(out, s.names[e.ID])
	}
	return out
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.names)))
}

// Stop prevents new ticks and waits for running ones until ctx is done.
// Running ticks are never cancelled.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with ticks still running")
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
