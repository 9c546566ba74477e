package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"attendance-service/internal/client"
	"attendance-service/internal/domain"
	"attendance-service/internal/metrics"
	"attendance-service/internal/service"
	"attendance-service/internal/timeutil"
)

const NotificationJobName = "notify"

// Message is a rendered alert
type Message struct {
	Subject string
	Body    string
}

// NotificationJob mails inactive and absent events to the configured recipients.
// An event is marked notified only after a successful send.
type NotificationJob struct {
	ledger        service.LedgerService
	mailer        client.MailClient
	lock          Locker
	metrics       *metrics.Metrics
	logger        *zap.Logger
	recipients    []string
	subjectPrefix string
	loc           *time.Location
	timeout       time.Duration
	lockTTL       time.Duration
}

// NotificationJobConfig holds the tick settings for NotificationJob
type NotificationJobConfig struct {
	Recipients    []string
	SubjectPrefix string
	Timeout       time.Duration
	LockTTL       time.Duration
	Location      *time.Location
}

// NewNotificationJob creates a new NotificationJob instance
func NewNotificationJob(
	ledger service.LedgerService,
	mailer client.MailClient,
	lock Locker,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg NotificationJobConfig,
) *NotificationJob {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationJob{
		ledger:        ledger,
		mailer:        mailer,
		lock:          lock,
		metrics:       m,
		logger:        logger,
		recipients:    cfg.Recipients,
		subjectPrefix: cfg.SubjectPrefix,
		loc:           loc,
		timeout:       cfg.Timeout,
		lockTTL:       cfg.LockTTL,
	}
}

// Enabled reports whether there is a configured channel and someone to notify
func (j *NotificationJob) Enabled() bool {
	return j.mailer != nil && j.mailer.IsConfigured() && len(j.recipients) > 0
}

// Run executes one dispatch tick. It is the cron entry point.
func (j *NotificationJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	release, ok, err := j.lock.Acquire(ctx, NotificationJobName, j.lockTTL)
	if err != nil {
		j.logger.Error("Failed to acquire notification tick lock", zap.Error(err))
		j.recordRun(metrics.JobResultError, start)
		return
	}
	if !ok {
		j.recordRun(metrics.JobResultSkipped, start)
		return
	}
	defer release()

	if _, _, err := j.RunTick(ctx); err != nil {
		j.recordRun(metrics.JobResultError, start)
		return
	}
	j.recordRun(metrics.JobResultSuccess, start)
}

// RunTick sends every pending alert once. Failed sends stay pending for the next tick.
func (j *NotificationJob) RunTick(ctx context.Context) (sent, failed int, err error) {
	if !j.Enabled() {
		return 0, 0, nil
	}

	events, err := j.ledger.ListUnnotified(ctx)
	if err != nil {
		j.logger.Error("Failed to list unnotified events", zap.Error(err))
		return 0, 0, err
	}

	for _, e := range events {
		if ctx.Err() != nil {
			break
		}

		msg := j.Render(e)
		if err := j.mailer.Send(ctx, j.recipients, msg.Subject, msg.Body); err != nil {
			failed++
			j.logger.Warn("Failed to send alert, will retry",
				zap.String("event_id", e.ID.String()),
				zap.String("username", e.Username),
				zap.Error(err),
			)
			continue
		}

		sent++
		if err := j.ledger.MarkNotified(ctx, e.ID); err != nil {
			j.logger.Error("Failed to mark event notified",
				zap.String("event_id", e.ID.String()),
				zap.Error(err),
			)
		}
	}

	if sent > 0 || failed > 0 {
		j.logger.Info("Notification tick completed",
			zap.Int("pending", len(events)),
			zap.Int("sent", sent),
			zap.Int("failed", failed),
		)
	}
	if j.metrics != nil {
		j.metrics.AddNotifications(sent, failed)
	}
	return sent, failed, nil
}

// Render builds the subject and body for one event
func (j *NotificationJob) Render(e domain.UnnotifiedEvent) Message {
	kind := "INACTIVE"
	if e.EventType == domain.StatusAbsent {
		kind = "ABSENT"
	}

	subject := fmt.Sprintf("%s %s %s", j.subjectPrefix, e.Username, kind)
	subject = strings.TrimSpace(subject)

	tail := "."
	if e.ActiveDurationSeconds != nil {
		tail = fmt.Sprintf(" (active streak: %s).", timeutil.SecondsToHMS(*e.ActiveDurationSeconds))
	}

	body := fmt.Sprintf("%s (@%s, %s, %s) is %s at %s%s",
		e.Name, e.Username, e.Email, e.Department, kind,
		e.OccurredAt.In(j.loc).Format(time.RFC3339), tail)

	return Message{Subject: subject, Body: body}
}

func (j *NotificationJob) recordRun(result string, start time.Time) {
	if j.metrics != nil {
		j.metrics.RecordJobRun(NotificationJobName, result, time.Since(start))
	}
}
