package entity

import "time"

const (
	LogLevelError = "error"
	LogLevelWarn  = "warn"
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
)

// ValidLogLevel reports whether level is one of error/warn/info/debug.
func ValidLogLevel(level string) bool {
	switch level {
	case LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug:
		return true
	default:
		return false
	}
}

// DbSystemLog is an append-only log record written by external components.
type DbSystemLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Level     string    `gorm:"column:level;type:varchar(50);index;not null" json:"level"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Source    string    `gorm:"column:source;type:varchar(255)" json:"source"`
	Timestamp time.Time `gorm:"column:timestamp;index;not null" json:"timestamp"`
}

// TableName overrides default pluralised name.
func (DbSystemLog) TableName() string {
	return "system_logs"
}

// LogQuery is the validated filter set for querying logs. Start and End are
// either both set or both nil.
type LogQuery struct {
	Level string
	Start *time.Time
	End   *time.Time
	Limit int
}
