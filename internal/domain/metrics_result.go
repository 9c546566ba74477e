package domain

import "time"

// MetricsResult is the per-user time attribution over a date range, in whole seconds
type MetricsResult struct {
	ActiveSeconds    int64      `json:"activeSeconds"`
	InactiveSeconds  int64      `json:"inactiveSeconds"`
	BreakSeconds     int64      `json:"breakSeconds"`
	WorkedSeconds    int64      `json:"workedSeconds"`
	OvertimeSeconds  int64      `json:"overtimeSeconds"`
	Status           Status     `json:"status"`
	LastStatusChange *time.Time `json:"lastStatusChange"`
	AsOf             time.Time  `json:"asOf"`
}

// DashboardStats summarizes the current workforce state
type DashboardStats struct {
	ActiveUsers           int64  `json:"activeUsers"`
	InactiveUsers         int64  `json:"inactiveUsers"`
	OvertimeTodaySeconds  int64  `json:"overtimeTodaySeconds"`
	OvertimeTodayReadable string `json:"overtimeTodayReadable"`
}
