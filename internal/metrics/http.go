package metrics

import (
	"strconv"
	"strings"
	"time"
)

// unmatchedRoute labels requests that hit no registered route, keeping 404 scans out of the label set
const unmatchedRoute = "unmatched"

// RecordHTTPRequest records one request against its route pattern
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		if route == "" {
			route = unmatchedRoute
		}
		m.HTTPRequestsTotal.WithLabelValues(method, route, categorizeStatus(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

// categorizeStatus buckets a status code as 1xx..5xx
func categorizeStatus(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

var probeNames = map[string]struct{}{
	"health":  {},
	"ready":   {},
	"metrics": {},
}

// ShouldSkipEndpoint reports whether route is a probe or scrape endpoint, at the root or under a base path.
// Parameterized routes such as /users/:id/metrics are never probes.
func ShouldSkipEndpoint(route string) bool {
	if route == "" || strings.Contains(route, ":") {
		return false
	}
	last := route[strings.LastIndex(route, "/")+1:]
	_, ok := probeNames[last]
	return ok
}
