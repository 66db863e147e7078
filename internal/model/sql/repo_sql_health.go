package sql

import (
	"context"
	"fmt"
	"micromon/internal/entity"
	"time"
)

// HealthSummary aggregates the dashboard counters in four scalar queries.
func (r *GormRepository) HealthSummary(ctx context.Context, since time.Time) (*entity.HealthSummary, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var summary entity.HealthSummary

	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).
		Where("status = ?", entity.UserStatusActive).
		Count(&summary.ActiveUsers).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.DbAlert{}).
		Where("status = ?", entity.AlertStatusActive).
		Count(&summary.ActiveAlerts).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.DbBackup{}).
		Where("status = ? AND created_at >= ?", entity.BackupStatusCompleted, since).
		Count(&summary.RecentBackups).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.DbSystemLog{}).
		Where("level = ? AND timestamp >= ?", entity.LogLevelError, since).
		Count(&summary.RecentErrors).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}
