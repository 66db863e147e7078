package sql

import (
	"context"
	"errors"
	"fmt"
	"micromon/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSystemSettings loads the singleton settings row.
func (r *GormRepository) GetSystemSettings(ctx context.Context) (*entity.DbSystemSettings, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var settings entity.DbSystemSettings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSystemSettings upserts the singleton row in place. No history is kept.
// The write is an INSERT .. ON CONFLICT UPDATE rather than gorm's Save: when
// an UPDATE changes nothing MySQL reports zero rows affected and Save falls
// back to an insert on the existing primary key.
func (r *GormRepository) SaveSystemSettings(ctx context.Context, settings *entity.DbSystemSettings) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if settings == nil {
		return fmt.Errorf("settings is nil")
	}

	if settings.ID == 0 {
		var existing entity.DbSystemSettings
		err := r.db.WithContext(ctx).Select("id").First(&existing).Error
		switch {
		case err == nil:
			settings.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error
}

// GetNotificationSettings loads one user's delivery preferences.
func (r *GormRepository) GetNotificationSettings(ctx context.Context, userID uint) (*entity.DbNotificationSettings, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var settings entity.DbNotificationSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveNotificationSettings upserts the caller's row keyed by user id. Same
// ON CONFLICT write as SaveSystemSettings, for the same reason.
func (r *GormRepository) SaveNotificationSettings(ctx context.Context, settings *entity.DbNotificationSettings) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if settings == nil || settings.UserID == 0 {
		return fmt.Errorf("invalid notification settings")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error
}
