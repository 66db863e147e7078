package sql

import (
	"context"
	"fmt"
	"micromon/internal/entity"
	"time"
)

// LatestMetric returns the most recent reading for a metric type, or
// gorm.ErrRecordNotFound when the type has no rows at all.
func (r *GormRepository) LatestMetric(ctx context.Context, metricType string) (*entity.DbSystemMetric, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var metric entity.DbSystemMetric
	err := r.db.WithContext(ctx).
		Where("metric_type = ?", metricType).
		Order("timestamp DESC").
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

// MetricHistory returns all readings for a type since the given instant,
// ascending by timestamp.
func (r *GormRepository) MetricHistory(ctx context.Context, metricType string, since time.Time) ([]entity.DbSystemMetric, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var metrics []entity.DbSystemMetric
	err := r.db.WithContext(ctx).
		Where("metric_type = ? AND timestamp >= ?", metricType, since).
		Order("timestamp ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
