package service

import (
	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/util"

	"gorm.io/gorm"
)

type GroupService struct {
	GroupRepo *repository.GroupRepository
	UserRepo  *repository.UserRepository
}

func NewGroupService(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupService {
	return &GroupService{
		GroupRepo: groupRepo,
		UserRepo:  userRepo,
	}
}

// CreateGroup makes the group and enrolls the creator as its shepherd.
func (s *GroupService) CreateGroup(creatorID uint, group *model.Group) error {
	group.CreatorID = creatorID
	group.MemberCount = 1
	if err := s.GroupRepo.Create(group); err != nil {
		return err
	}
	return s.GroupRepo.CreateMembership(&model.GroupMembership{
		GroupID: group.ID,
		UserID:  creatorID,
		Role:    model.GroupShepherd,
	})
}

func (s *GroupService) GetGroup(id uint) (*model.Group, error) {
	group, err := s.GroupRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrGroupNotFound
	}
	return group, err
}

func (s *GroupService) ListGroups(page, limit int, focus string) ([]model.Group, int64, error) {
	return s.GroupRepo.List(page, limit, focus)
}

func (s *GroupService) ListUserGroups(userID uint) ([]model.Group, error) {
	return s.GroupRepo.FindByMember(userID)
}

func (s *GroupService) Join(groupID, userID uint) error {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrGroupNotFound
		}
		return err
	}

	_, err := s.GroupRepo.FindMembership(groupID, userID)
	if err == nil {
		return util.ErrAlreadyMember
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := s.GroupRepo.CreateMembership(&model.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
		Role:    model.GroupMember,
	}); err != nil {
		return err
	}
	return s.GroupRepo.UpdateMemberCount(groupID)
}

func (s *GroupService) Leave(groupID, userID uint) error {
	_, err := s.GroupRepo.FindMembership(groupID, userID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrNotMember
	}
	if err != nil {
		return err
	}

	if err := s.GroupRepo.DeleteMembership(groupID, userID); err != nil {
		return err
	}
	return s.GroupRepo.UpdateMemberCount(groupID)
}

// IsMember is used by the chat and event layers to gate group-scoped
// reads.
func (s *GroupService) IsMember(groupID, userID uint) (bool, error) {
	_, err := s.GroupRepo.FindMembership(groupID, userID)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *GroupService) ListMembers(groupID uint) ([]model.GroupMembership, error) {
	return s.GroupRepo.ListMembers(groupID)
}
