package model

import (
	"time"
)

type UserRole string

const (
	Member    UserRole = "member"
	Shepherd  UserRole = "shepherd"
	AdminRole UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"type:enum('member','shepherd','admin');default:'member'" json:"role"`
	UnityPoints int       `gorm:"default:0" json:"unityPoints"` // lifetime gamification points
	Avatar      string    `gorm:"size:255" json:"avatar"`
	Bio         string    `gorm:"size:500" json:"bio"`
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
