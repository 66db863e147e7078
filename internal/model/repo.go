package model

import (
	"context"
	"micromon/internal/entity"
	"time"
)

// Repository defines the storage operations behind the console. Every
// implementation must use parameterized queries only; user input is never
// interpolated into SQL.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*entity.DbUser, error)
	ListUsers(ctx context.Context) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// Alerts
	CreateAlert(ctx context.Context, alert *entity.DbAlert) error
	UpdateAlert(ctx context.Context, id uint, updates map[string]interface{}) error
	SetAlertEnabled(ctx context.Context, id uint, enabled bool) error
	GetAlertByID(ctx context.Context, id uint) (*entity.DbAlert, error)
	ListAlerts(ctx context.Context) ([]entity.DbAlert, error)
	DeleteAlert(ctx context.Context, id uint) error

	// Metrics (read-only, written by the external collector)
	LatestMetric(ctx context.Context, metricType string) (*entity.DbSystemMetric, error)
	MetricHistory(ctx context.Context, metricType string, since time.Time) ([]entity.DbSystemMetric, error)

	// Logs (read-only, written externally)
	QueryLogs(ctx context.Context, query entity.LogQuery) ([]entity.DbSystemLog, error)

	// Backups
	CreateBackup(ctx context.Context, backup *entity.DbBackup) error
	GetBackupByID(ctx context.Context, id uint) (*entity.DbBackup, error)
	ListBackups(ctx context.Context) ([]entity.DbBackup, error)
	TransitionBackup(ctx context.Context, id uint, from, to string) error

	// System settings (singleton row)
	GetSystemSettings(ctx context.Context) (*entity.DbSystemSettings, error)
	SaveSystemSettings(ctx context.Context, settings *entity.DbSystemSettings) error

	// Notification settings (one row per user)
	GetNotificationSettings(ctx context.Context, userID uint) (*entity.DbNotificationSettings, error)
	SaveNotificationSettings(ctx context.Context, settings *entity.DbNotificationSettings) error

	// Dashboard aggregation
	HealthSummary(ctx context.Context, since time.Time) (*entity.HealthSummary, error)
}
