package model

import "time"

// Badge is a catalog entry; UserBadge records one user earning it.
// swagger:model Badge
type Badge struct {
	BaseModel
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Badge) TableName() string {
	return "badges"
}

// swagger:model UserBadge
type UserBadge struct {
	BaseModel
	UserID    uint      `gorm:"index:idx_user_badge,unique;type:bigint unsigned;not null" json:"userId"`
	BadgeCode string    `gorm:"size:50;index:idx_user_badge,unique;not null" json:"badgeCode"`
	GroupID   uint      `gorm:"type:bigint unsigned" json:"groupId"` // group that triggered the award, 0 when global
	EarnedAt  time.Time `gorm:"autoCreateTime" json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
