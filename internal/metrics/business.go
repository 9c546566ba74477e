package metrics

import "time"

// Job results
const (
	JobResultSuccess = "success"
	JobResultError   = "error"
	JobResultSkipped = "skipped"
)

// IncrementStatusTransition counts one recorded transition
func (m *Metrics) IncrementStatusTransition(status string) {
	m.safeExecute("IncrementStatusTransition", func() {
		m.StatusTransitionsTotal.WithLabelValues(status).Inc()
	})
}

// AddAbsencesMarked adds the users marked absent in one reconciler tick
func (m *Metrics) AddAbsencesMarked(count int) {
	if count <= 0 {
		return
	}
	m.safeExecute("AddAbsencesMarked", func() {
		m.AbsencesMarkedTotal.Add(float64(count))
	})
}

// AddNotifications adds the delivered and failed counts of one dispatcher tick
func (m *Metrics) AddNotifications(sent, failed int) {
	m.safeExecute("AddNotifications", func() {
		if sent > 0 {
			m.NotificationsSentTotal.Add(float64(sent))
		}
		if failed > 0 {
			m.NotificationsFailedTotal.Add(float64(failed))
		}
	})
}

// RecordJobRun records one periodic tick
func (m *Metrics) RecordJobRun(job, result string, duration time.Duration) {
	m.safeExecute("RecordJobRun", func() {
		m.JobRunsTotal.WithLabelValues(job, result).Inc()
		if result != JobResultSkipped {
			m.JobDuration.WithLabelValues(job).Observe(duration.Seconds())
		}
	})
}

// SetUsersByStatus replaces the per-status gauge values.
// Statuses missing from counts are reset to zero.
func (m *Metrics) SetUsersByStatus(counts map[string]int64, known []string) {
	m.safeExecute("SetUsersByStatus", func() {
		for _, status := range known {
			m.UsersByStatus.WithLabelValues(status).Set(float64(counts[status]))
		}
		for status, n := range counts {
			m.UsersByStatus.WithLabelValues(status).Set(float64(n))
		}
	})
}
