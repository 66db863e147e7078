package entity

import (
	"errors"
	"time"
)

const (
	BackupStatusPending    = "pending"
	BackupStatusInProgress = "in_progress"
	BackupStatusCompleted  = "completed"
	BackupStatusFailed     = "failed"
)

// ErrBackupTransition is returned by repository implementations when a status
// transition's precondition does not hold: the row exists but is not in the
// expected state.
var ErrBackupTransition = errors.New("backup is not in the expected status")

// DbBackup records a scheduled backup. The console inserts pending rows and
// reports status; an external worker performs the actual backup and advances
// the status. Transitions only move forward, except failed -> pending on retry.
type DbBackup struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Status      string     `gorm:"column:status;type:varchar(50);index;not null;default:pending" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

// TableName overrides default pluralised name.
func (DbBackup) TableName() string {
	return "backups"
}

type BackupCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
