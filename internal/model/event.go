package model

import "time"

// swagger:model Event
type Event struct {
	BaseModel
	GroupID     uint      `gorm:"index;type:bigint unsigned;not null" json:"groupId"`
	CreatorID   uint      `gorm:"index;type:bigint unsigned;not null" json:"creatorId"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	StartsAt    time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	ViewCount   int       `gorm:"default:0" json:"viewCount"`
}

func (Event) TableName() string {
	return "events"
}

type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPDeclined RSVPStatus = "declined"
)

// EventRSVP holds at most one reply per (event, user); replies are
// upserted, never appended.
// swagger:model EventRSVP
type EventRSVP struct {
	BaseModel
	EventID uint       `gorm:"index:idx_event_user,unique;type:bigint unsigned;not null" json:"eventId"`
	UserID  uint       `gorm:"index:idx_event_user,unique;type:bigint unsigned;not null" json:"userId"`
	Status  RSVPStatus `gorm:"type:enum('going','maybe','declined');not null" json:"status"`
}

func (EventRSVP) TableName() string {
	return "event_rsvps"
}
