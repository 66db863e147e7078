package sql

import (
	"context"
	"fmt"
	"micromon/internal/entity"
	"strings"
)

// QueryLogs returns log records matching the validated filter set, newest
// first. The caller is responsible for bounding Limit.
func (r *GormRepository) QueryLogs(ctx context.Context, query entity.LogQuery) ([]entity.DbSystemLog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	tx := r.db.WithContext(ctx).Model(&entity.DbSystemLog{})

	if level := strings.TrimSpace(query.Level); level != "" {
		tx = tx.Where("level = ?", level)
	}
	if query.Start != nil && query.End != nil {
		tx = tx.Where("timestamp BETWEEN ? AND ?", *query.Start, *query.End)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	var logs []entity.DbSystemLog
	if err := tx.Order("timestamp DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
