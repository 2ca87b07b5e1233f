package repository

import (
	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListCatalog() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("enabled = ?", true).Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByCode(code string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("code = ?", code).First(&badge).Error
	return &badge, err
}

func (r *BadgeRepository) ListByUser(userID uint) ([]model.UserBadge, error) {
	var earned []model.UserBadge
	err := r.DB.Where("user_id = ?", userID).Order("earned_at DESC").Find(&earned).Error
	return earned, err
}

func (r *BadgeRepository) HasBadge(userID uint, code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_code = ?", userID, code).
		Count(&count).Error
	return count > 0, err
}

func (r *BadgeRepository) Award(award *model.UserBadge) error {
	return r.DB.Create(award).Error
}
