package metrics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"attendance-service/internal/domain"
)

// StatusCounter reports how many tracked users currently hold each status
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

// knownStatuses are always exported so a drained status reads 0 rather than its last value
var knownStatuses = []string{
	string(domain.StatusOff),
	string(domain.StatusShiftStart),
	string(domain.StatusActive),
	string(domain.StatusInactive),
	string(domain.StatusBreakStart),
	string(domain.StatusBreakEnd),
	string(domain.StatusAbsent),
}

// BusinessMetricsCollector refreshes the users_by_status gauge periodically
type BusinessMetricsCollector struct {
	counter  StatusCounter
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(counter StatusCounter, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &BusinessMetricsCollector{
		counter:  counter,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector; calling it more than once is safe
func (c *BusinessMetricsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.counter.CountByStatus(ctx)
	if err != nil {
		c.logger.Error("Failed to count users by status", zap.Error(err))
		return
	}

	byStatus := make(map[string]int64, len(counts))
	for status, n := range counts {
		byStatus[string(status)] = n
	}
	c.metrics.SetUsersByStatus(byStatus, knownStatuses)
}
