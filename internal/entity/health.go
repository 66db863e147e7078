package entity

// HealthSummary aggregates the dashboard counters shown on the system health
// page. Recent windows cover the last 24 hours.
type HealthSummary struct {
	ActiveUsers   int64 `json:"active_users"`
	ActiveAlerts  int64 `json:"active_alerts"`
	RecentBackups int64 `json:"recent_backups"`
	RecentErrors  int64 `json:"recent_errors"`
}
