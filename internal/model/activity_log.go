package model

import "time"

// ActivityLog is an append-only record of one qualifying activity.
// Multiple rows per user per day are allowed; streak math only cares
// about date transitions.
type ActivityLog struct {
	BaseModel
	UserID       uint      `gorm:"index:idx_activity_user_date;type:bigint unsigned;not null" json:"userId"`
	GroupID      uint      `gorm:"index;type:bigint unsigned;not null" json:"groupId"`
	ActivityDate time.Time `gorm:"type:date;not null;index:idx_activity_user_date" json:"activityDate"`
	ActivityType string    `gorm:"size:50;not null" json:"activityType"` // free-form tag, e.g. "testimony", "prayer"
	Count        int       `gorm:"default:1" json:"count"`
	Points       int       `gorm:"default:0" json:"points"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
