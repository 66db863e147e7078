package sql

import (
	"context"
	"fmt"
	"micromon/internal/entity"

	"gorm.io/gorm"
)

// CreateBackup inserts a scheduled backup row.
func (r *GormRepository) CreateBackup(ctx context.Context, backup *entity.DbBackup) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if backup == nil {
		return fmt.Errorf("backup is nil")
	}
	return r.db.WithContext(ctx).Create(backup).Error
}

// GetBackupByID loads a backup by ID.
func (r *GormRepository) GetBackupByID(ctx context.Context, id uint) (*entity.DbBackup, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid backup id")
	}
	var backup entity.DbBackup
	if err := r.db.WithContext(ctx).First(&backup, id).Error; err != nil {
		return nil, err
	}
	return &backup, nil
}

// ListBackups returns all backups, newest first.
func (r *GormRepository) ListBackups(ctx context.Context) ([]entity.DbBackup, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var backups []entity.DbBackup
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&backups).Error; err != nil {
		return nil, err
	}
	return backups, nil
}

// TransitionBackup moves a backup from one status to another. The UPDATE is
// conditional on the current status so a concurrent worker transition cannot
// be overwritten; a zero row count distinguishes a missing row from a
// precondition failure.
func (r *GormRepository) TransitionBackup(ctx context.Context, id uint, from, to string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid backup id")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbBackup{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.DbBackup{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return entity.ErrBackupTransition
	}
	return nil
}
