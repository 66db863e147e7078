package entity

import "time"

// DbNotificationSettings holds one user's delivery preferences. Each channel
// carries an enabled flag and a target; the target must be non-empty whenever
// its flag is set.
type DbNotificationSettings struct {
	UserID         uint      `gorm:"column:user_id;primarykey" json:"user_id"`
	UpdatedAt      time.Time `json:"updated_at"`
	EmailEnabled   bool      `gorm:"column:email_enabled;not null;default:false" json:"email_enabled"`
	SlackEnabled   bool      `gorm:"column:slack_enabled;not null;default:false" json:"slack_enabled"`
	WebhookEnabled bool      `gorm:"column:webhook_enabled;not null;default:false" json:"webhook_enabled"`
	Email          string    `gorm:"column:email;type:varchar(255)" json:"email"`
	SlackWebhook   string    `gorm:"column:slack_webhook;type:varchar(512)" json:"slack_webhook"`
	WebhookURL     string    `gorm:"column:webhook_url;type:varchar(512)" json:"webhook_url"`
}

// TableName overrides default pluralised name.
func (DbNotificationSettings) TableName() string {
	return "notification_settings"
}

type NotificationUpdateRequest struct {
	EmailEnabled   *bool  `json:"email_enabled"`
	SlackEnabled   *bool  `json:"slack_enabled"`
	WebhookEnabled *bool  `json:"webhook_enabled"`
	Email          string `json:"email"`
	SlackWebhook   string `json:"slack_webhook"`
	WebhookURL     string `json:"webhook_url"`
}
