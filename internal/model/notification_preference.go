package model

type NudgeCadence string

const (
	CadenceOff    NudgeCadence = "off"
	CadenceDaily  NudgeCadence = "daily"
	CadenceWeekly NudgeCadence = "weekly"
)

// NotificationPreference holds a user's nudge cadence and optional
// quiet-hours window. Quiet hours are local times of day ("HH:MM");
// a start later than the end means the window wraps midnight.
// swagger:model NotificationPreference
type NotificationPreference struct {
	BaseModel
	UserID          uint         `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	Cadence         NudgeCadence `gorm:"type:enum('off','daily','weekly');default:'off'" json:"cadence"`
	QuietHoursStart string       `gorm:"size:5" json:"quietHoursStart"`
	QuietHoursEnd   string       `gorm:"size:5" json:"quietHoursEnd"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}
