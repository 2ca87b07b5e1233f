package repository

import (
	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Create(group).Error
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	err := r.DB.First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) Update(group *model.Group) error {
	return r.DB.Save(group).Error
}

// List returns public groups, newest first.
func (r *GroupRepository) List(page, limit int, focus string) ([]model.Group, int64, error) {
	var groups []model.Group
	var total int64

	query := r.DB.Model(&model.Group{}).Where("is_private = ?", false)
	if focus != "" {
		query = query.Where("focus = ?", focus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&groups).Error
	return groups, total, err
}

func (r *GroupRepository) FindByMember(userID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ? AND group_memberships.deleted_at IS NULL", userID).
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) FindMembership(groupID, userID uint) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&m).Error
	return &m, err
}

func (r *GroupRepository) CreateMembership(m *model.GroupMembership) error {
	return r.DB.Create(m).Error
}

func (r *GroupRepository) DeleteMembership(groupID, userID uint) error {
	return r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMembership{}).Error
}

func (r *GroupRepository) CountMembers(groupID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GroupMembership{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// UpdateMemberCount refreshes the denormalized counter on the group row.
func (r *GroupRepository) UpdateMemberCount(groupID uint) error {
	return r.DB.Model(&model.Group{}).
		Where("id = ?", groupID).
		Update("member_count", r.DB.Model(&model.GroupMembership{}).
			Select("COUNT(*)").
			Where("group_id = ? AND deleted_at IS NULL", groupID)).
		Error
}

func (r *GroupRepository) ListMembers(groupID uint) ([]model.GroupMembership, error) {
	var members []model.GroupMembership
	err := r.DB.Where("group_id = ?", groupID).Find(&members).Error
	return members, err
}
