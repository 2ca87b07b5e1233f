package model

// ChatChannel is the listing entry for a group's chat room. One channel
// per fellowship group, created lazily on first message.
// swagger:model ChatChannel
type ChatChannel struct {
	BaseModel
	GroupID      uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"groupId"`
	Name         string `gorm:"size:100;not null" json:"name"`
	LastMessage  string `gorm:"size:255" json:"lastMessage"`
	MessageCount int    `gorm:"default:0" json:"messageCount"`
}

func (ChatChannel) TableName() string {
	return "chat_channels"
}

// swagger:model ChatMessage
type ChatMessage struct {
	BaseModel
	MessageID string `gorm:"size:36;uniqueIndex" json:"messageId"` // client-visible UUID
	ChannelID uint   `gorm:"index;type:bigint unsigned;not null" json:"channelId"`
	SenderID  uint   `gorm:"index;type:bigint unsigned;not null" json:"senderId"`
	Body      string `gorm:"type:text;not null" json:"body"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
