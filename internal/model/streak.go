package model

import "time"

// FlameIntensity is the display tier derived from the current streak
// length. It is recomputed on every streak write, never edited on its own.
type FlameIntensity string

const (
	FlameOut     FlameIntensity = "out"
	FlameEmber   FlameIntensity = "ember"
	FlameGlow    FlameIntensity = "glow"
	FlameBurning FlameIntensity = "burning"
	FlameOnFire  FlameIntensity = "on-fire"
)

// StreakRecord tracks consecutive qualifying days of activity for one
// user within one fellowship group. One row per (user, group); reset to a
// current streak of 1 after a gap, never deleted.
// swagger:model StreakRecord
type StreakRecord struct {
	BaseModel
	UserID           uint           `gorm:"index:idx_user_group_streak,unique;type:bigint unsigned;not null" json:"userId"`
	GroupID          uint           `gorm:"index:idx_user_group_streak,unique;type:bigint unsigned;not null" json:"groupId"`
	CurrentStreak    int            `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int            `gorm:"default:0" json:"longestStreak"`
	LastActivityDate time.Time      `gorm:"type:date" json:"lastActivityDate"`
	Intensity        FlameIntensity `gorm:"size:20;default:'out'" json:"intensity"`
}

func (StreakRecord) TableName() string {
	return "streak_records"
}
