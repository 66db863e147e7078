package api

import (
	"context"
	"micromon/internal/entity"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// stubRepo is an in-memory Repository used by the handler tests.
type stubRepo struct {
	users         map[uint]*entity.DbUser
	alerts        map[uint]*entity.DbAlert
	metrics       []entity.DbSystemMetric
	logs          []entity.DbSystemLog
	backups       map[uint]*entity.DbBackup
	settings      *entity.DbSystemSettings
	notifications map[uint]*entity.DbNotificationSettings
	nextID        uint

	failAll error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:         make(map[uint]*entity.DbUser),
		alerts:        make(map[uint]*entity.DbAlert),
		backups:       make(map[uint]*entity.DbBackup),
		notifications: make(map[uint]*entity.DbNotificationSettings),
	}
}

func (r *stubRepo) allocID() uint {
	r.nextID++
	return r.nextID
}

func (r *stubRepo) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r.failAll != nil {
		return r.failAll
	}
	for _, existing := range r.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.allocID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubRepo) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r.failAll != nil {
		return r.failAll
	}
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "email":
			user.Email = value.(string)
		case "role":
			user.Role = value.(string)
		case "status":
			user.Status = value.(string)
		case "password_hash":
			user.PasswordHash = value.(string)
		}
	}
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubRepo) GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubRepo) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*entity.DbUser, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, user := range r.users {
		if user.Username == username || strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) ListUsers(ctx context.Context) ([]entity.DbUser, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	users := make([]entity.DbUser, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (r *stubRepo) CountUsers(ctx context.Context) (int64, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	return int64(len(r.users)), nil
}

func (r *stubRepo) CreateAlert(ctx context.Context, alert *entity.DbAlert) error {
	if r.failAll != nil {
		return r.failAll
	}
	alert.ID = r.allocID()
	alert.CreatedAt = time.Now().UTC()
	alert.UpdatedAt = alert.CreatedAt
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *stubRepo) UpdateAlert(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r.failAll != nil {
		return r.failAll
	}
	alert, ok := r.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			alert.Name = value.(string)
		case "condition":
			alert.Condition = value.(string)
		case "severity":
			alert.Severity = value.(string)
		case "description":
			alert.Description = value.(string)
		case "status":
			alert.Status = value.(string)
		}
	}
	return nil
}

func (r *stubRepo) SetAlertEnabled(ctx context.Context, id uint, enabled bool) error {
	if r.failAll != nil {
		return r.failAll
	}
	alert, ok := r.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	alert.Enabled = enabled
	return nil
}

func (r *stubRepo) GetAlertByID(ctx context.Context, id uint) (*entity.DbAlert, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	alert, ok := r.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *stubRepo) ListAlerts(ctx context.Context) ([]entity.DbAlert, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	alerts := make([]entity.DbAlert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		alerts = append(alerts, *alert)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].ID > alerts[j].ID })
	return alerts, nil
}

func (r *stubRepo) DeleteAlert(ctx context.Context, id uint) error {
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.alerts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r *stubRepo) LatestMetric(ctx context.Context, metricType string) (*entity.DbSystemMetric, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	var latest *entity.DbSystemMetric
	for idx := range r.metrics {
		metric := &r.metrics[idx]
		if metric.MetricType != metricType {
			continue
		}
		if latest == nil || metric.Timestamp.After(latest.Timestamp) {
			latest = metric
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *stubRepo) MetricHistory(ctx context.Context, metricType string, since time.Time) ([]entity.DbSystemMetric, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	var metrics []entity.DbSystemMetric
	for _, metric := range r.metrics {
		if metric.MetricType == metricType && !metric.Timestamp.Before(since) {
			metrics = append(metrics, metric)
		}
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Timestamp.Before(metrics[j].Timestamp) })
	return metrics, nil
}

func (r *stubRepo) QueryLogs(ctx context.Context, query entity.LogQuery) ([]entity.DbSystemLog, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	var logs []entity.DbSystemLog
	for _, logRow := range r.logs {
		if query.Level != "" && logRow.Level != query.Level {
			continue
		}
		if query.Start != nil && query.End != nil {
			if logRow.Timestamp.Before(*query.Start) || logRow.Timestamp.After(*query.End) {
				continue
			}
		}
		logs = append(logs, logRow)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (r *stubRepo) CreateBackup(ctx context.Context, backup *entity.DbBackup) error {
	if r.failAll != nil {
		return r.failAll
	}
	backup.ID = r.allocID()
	backup.CreatedAt = time.Now().UTC()
	backup.UpdatedAt = backup.CreatedAt
	copied := *backup
	r.backups[backup.ID] = &copied
	return nil
}

func (r *stubRepo) GetBackupByID(ctx context.Context, id uint) (*entity.DbBackup, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	backup, ok := r.backups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *backup
	return &copied, nil
}

func (r *stubRepo) ListBackups(ctx context.Context) ([]entity.DbBackup, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	backups := make([]entity.DbBackup, 0, len(r.backups))
	for _, backup := range r.backups {
		backups = append(backups, *backup)
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].ID > backups[j].ID })
	return backups, nil
}

func (r *stubRepo) TransitionBackup(ctx context.Context, id uint, from, to string) error {
	if r.failAll != nil {
		return r.failAll
	}
	backup, ok := r.backups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if backup.Status != from {
		return entity.ErrBackupTransition
	}
	backup.Status = to
	return nil
}

func (r *stubRepo) GetSystemSettings(ctx context.Context) (*entity.DbSystemSettings, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	if r.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.settings
	return &copied, nil
}

func (r *stubRepo) SaveSystemSettings(ctx context.Context, settings *entity.DbSystemSettings) error {
	if r.failAll != nil {
		return r.failAll
	}
	copied := *settings
	if copied.ID == 0 {
		copied.ID = 1
	}
	r.settings = &copied
	return nil
}

func (r *stubRepo) GetNotificationSettings(ctx context.Context, userID uint) (*entity.DbNotificationSettings, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	settings, ok := r.notifications[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *settings
	return &copied, nil
}

func (r *stubRepo) SaveNotificationSettings(ctx context.Context, settings *entity.DbNotificationSettings) error {
	if r.failAll != nil {
		return r.failAll
	}
	copied := *settings
	r.notifications[settings.UserID] = &copied
	return nil
}

func (r *stubRepo) HealthSummary(ctx context.Context, since time.Time) (*entity.HealthSummary, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	var summary entity.HealthSummary
	for _, user := range r.users {
		if user.Status == entity.UserStatusActive {
			summary.ActiveUsers++
		}
	}
	for _, alert := range r.alerts {
		if alert.Status == entity.AlertStatusActive {
			summary.ActiveAlerts++
		}
	}
	for _, backup := range r.backups {
		if backup.Status == entity.BackupStatusCompleted && !backup.CreatedAt.Before(since) {
			summary.RecentBackups++
		}
	}
	for _, logRow := range r.logs {
		if logRow.Level == entity.LogLevelError && !logRow.Timestamp.Before(since) {
			summary.RecentErrors++
		}
	}
	return &summary, nil
}
