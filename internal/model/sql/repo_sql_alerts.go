package sql

import (
	"context"
	"fmt"
	"micromon/internal/entity"

	"gorm.io/gorm"
)

// CreateAlert persists a new alert rule.
func (r *GormRepository) CreateAlert(ctx context.Context, alert *entity.DbAlert) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if alert == nil {
		return fmt.Errorf("alert is nil")
	}
	return r.db.WithContext(ctx).Create(alert).Error
}

// UpdateAlert applies a partial column update to an alert.
func (r *GormRepository) UpdateAlert(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid alert id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbAlert{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAlertEnabled flips the enabled flag only. A single-column UPDATE, so a
// concurrent full update can never be clobbered by a toggle.
func (r *GormRepository) SetAlertEnabled(ctx context.Context, id uint, enabled bool) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid alert id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbAlert{}).Where("id = ?", id).Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetAlertByID loads an alert by ID.
func (r *GormRepository) GetAlertByID(ctx context.Context, id uint) (*entity.DbAlert, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid alert id")
	}
	var alert entity.DbAlert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// ListAlerts returns all alerts, newest first.
func (r *GormRepository) ListAlerts(ctx context.Context) ([]entity.DbAlert, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var alerts []entity.DbAlert
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// DeleteAlert removes an alert by ID.
func (r *GormRepository) DeleteAlert(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid alert id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbAlert{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
