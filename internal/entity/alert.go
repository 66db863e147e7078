package entity

import "time"

const (
	AlertSeverityLow    = "low"
	AlertSeverityMedium = "medium"
	AlertSeverityHigh   = "high"

	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// ValidAlertSeverity reports whether severity is one of low/medium/high.
func ValidAlertSeverity(severity string) bool {
	switch severity {
	case AlertSeverityLow, AlertSeverityMedium, AlertSeverityHigh:
		return true
	default:
		return false
	}
}

// DbAlert represents a persisted alert rule.
type DbAlert struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Condition   string    `gorm:"column:condition;type:varchar(255);not null" json:"condition"`
	Severity    string    `gorm:"column:severity;type:varchar(50);not null" json:"severity"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Enabled     bool      `gorm:"column:enabled;not null;default:true" json:"enabled"`
	Status      string    `gorm:"column:status;type:varchar(50);not null;default:active" json:"status"`
}

// TableName overrides default pluralised name.
func (DbAlert) TableName() string {
	return "alerts"
}

type AlertCreateRequest struct {
	Name        string `json:"name"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type AlertUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Condition   *string `json:"condition,omitempty"`
	Severity    *string `json:"severity,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}
