package metrics

import (
	"context"
	"errors"
	"strings"
	"time"
)

// RecordExternalCall records one outbound delivery attempt, e.g. target "smtp", operation "send"
func (m *Metrics) RecordExternalCall(target, operation string, duration time.Duration, err error) {
	m.safeExecute("RecordExternalCall", func() {
		status := "success"
		if err != nil {
			status = "error"
		}

		m.ExternalRequestsTotal.WithLabelValues(target, operation, status).Inc()
		m.ExternalRequestDuration.WithLabelValues(target, status).Observe(duration.Seconds())

		if err != nil {
			m.ExternalErrors.WithLabelValues(target, getErrorType(err)).Inc()
		}
	})
}

// getErrorType categorizes delivery errors by their message
func getErrorType(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "eof") || strings.Contains(msg, "connection reset"):
		return "connection_reset"
	case strings.Contains(msg, "tls") || strings.Contains(msg, "certificate"):
		return "tls_error"
	case strings.Contains(msg, "auth") || strings.Contains(msg, "535"):
		return "auth_error"
	case strings.Contains(msg, "recipient") || strings.Contains(msg, "550"):
		return "rejected"
	default:
		return "network_error"
	}
}
