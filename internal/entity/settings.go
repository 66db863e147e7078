package entity

import "time"

const (
	BackupFrequencyHourly  = "hourly"
	BackupFrequencyDaily   = "daily"
	BackupFrequencyWeekly  = "weekly"
	BackupFrequencyMonthly = "monthly"
)

// ValidBackupFrequency reports whether freq is a known schedule.
func ValidBackupFrequency(freq string) bool {
	switch freq {
	case BackupFrequencyHourly, BackupFrequencyDaily, BackupFrequencyWeekly, BackupFrequencyMonthly:
		return true
	default:
		return false
	}
}

// DbSystemSettings is the singleton settings row. Updates overwrite in place,
// no history is kept.
type DbSystemSettings struct {
	ID                  uint      `gorm:"primarykey" json:"-"`
	UpdatedAt           time.Time `json:"updated_at"`
	BackupEnabled       bool      `gorm:"column:backup_enabled;not null;default:false" json:"backup_enabled"`
	NotificationEnabled bool      `gorm:"column:notification_enabled;not null;default:false" json:"notification_enabled"`
	BackupFrequency     string    `gorm:"column:backup_frequency;type:varchar(50);not null;default:daily" json:"backup_frequency"`
}

// TableName overrides default pluralised name.
func (DbSystemSettings) TableName() string {
	return "system_settings"
}

// SettingsUpdateRequest uses pointer booleans so that absent flags are
// distinguishable from explicit false.
type SettingsUpdateRequest struct {
	BackupEnabled       *bool  `json:"backup_enabled"`
	NotificationEnabled *bool  `json:"notification_enabled"`
	BackupFrequency     string `json:"backup_frequency"`
}
