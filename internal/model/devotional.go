package model

import (
	"time"

	"gorm.io/gorm"
)

// Devotional is a daily reading surfaced on the home screen. Exactly one
// enabled devotional carries the is_currently_used flag at a time.
type Devotional struct {
	gorm.Model
	ID              uint      `gorm:"primarykey" json:"id"`
	Title           string    `gorm:"size:150;not null" json:"title"`
	Passage         string    `gorm:"size:100" json:"passage"` // scripture reference, e.g. "Psalm 23:1-4"
	Body            string    `gorm:"type:text;not null" json:"body"`
	Author          string    `gorm:"size:100" json:"author"`
	AudioURL        string    `gorm:"size:255" json:"audioUrl"`
	AudioDuration   float64   `gorm:"default:0" json:"audioDuration"` // seconds
	IsEnabled       bool      `gorm:"default:true" json:"is_enabled"`
	IsCurrentlyUsed bool      `gorm:"default:false" json:"is_currently_used"`
	LastUsedAt      time.Time `gorm:"autoCreateTime" json:"last_used_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Devotional) TableName() string {
	return "devotionals"
}
