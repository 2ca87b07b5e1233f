package repository

import (
	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

// FindOrCreateChannel makes the channel row lazily on first use.
func (r *ChatRepository) FindOrCreateChannel(groupID uint, name string) (*model.ChatChannel, error) {
	var channel model.ChatChannel
	err := r.DB.Where("group_id = ?", groupID).First(&channel).Error
	if err == gorm.ErrRecordNotFound {
		channel = model.ChatChannel{GroupID: groupID, Name: name}
		if err := r.DB.Create(&channel).Error; err != nil {
			return nil, err
		}
		return &channel, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChatRepository) FindChannelByGroup(groupID uint) (*model.ChatChannel, error) {
	var channel model.ChatChannel
	err := r.DB.Where("group_id = ?", groupID).First(&channel).Error
	return &channel, err
}

func (r *ChatRepository) ListChannels(groupIDs []uint) ([]model.ChatChannel, error) {
	var channels []model.ChatChannel
	if len(groupIDs) == 0 {
		return channels, nil
	}
	err := r.DB.Where("group_id IN ?", groupIDs).Order("updated_at DESC").Find(&channels).Error
	return channels, err
}

func (r *ChatRepository) SaveMessage(msg *model.ChatMessage) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		preview := msg.Body
		if len(preview) > 255 {
			preview = preview[:255]
		}
		return tx.Model(&model.ChatChannel{}).
			Where("id = ?", msg.ChannelID).
			Updates(map[string]interface{}{
				"last_message":  preview,
				"message_count": gorm.Expr("message_count + 1"),
			}).Error
	})
}

func (r *ChatRepository) ListMessages(channelID uint, limit int, beforeID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	query := r.DB.Where("channel_id = ?", channelID)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}
	err := query.Order("id DESC").Limit(limit).Find(&messages).Error
	return messages, err
}
