package service

import (
	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/util"

	"gorm.io/gorm"
)

type ChatService struct {
	ChatRepo  *repository.ChatRepository
	GroupRepo *repository.GroupRepository
}

func NewChatService(chatRepo *repository.ChatRepository, groupRepo *repository.GroupRepository) *ChatService {
	return &ChatService{
		ChatRepo:  chatRepo,
		GroupRepo: groupRepo,
	}
}

// ListChannels returns the chat listing for every group the user belongs
// to, most recently active first.
func (s *ChatService) ListChannels(userID uint) ([]model.ChatChannel, error) {
	groups, err := s.GroupRepo.FindByMember(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return s.ChatRepo.ListChannels(ids)
}

// GetHistory pages backwards through a group's messages. Only members
// may read.
func (s *ChatService) GetHistory(groupID, userID uint, limit int, beforeID uint) ([]model.ChatMessage, error) {
	if _, err := s.GroupRepo.FindMembership(groupID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNotMember
		}
		return nil, err
	}

	channel, err := s.ChatRepo.FindChannelByGroup(groupID)
	if err == gorm.ErrRecordNotFound {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ChatRepo.ListMessages(channel.ID, limit, beforeID)
}
