package repository

import (
	"time"

	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type DevotionalRepository struct {
	DB *gorm.DB
}

func NewDevotionalRepository(db *gorm.DB) *DevotionalRepository {
	return &DevotionalRepository{DB: db}
}

func (r *DevotionalRepository) GetAll() ([]*model.Devotional, error) {
	var devotionals []*model.Devotional
	err := r.DB.Find(&devotionals).Error
	return devotionals, err
}

func (r *DevotionalRepository) GetEnabled() ([]*model.Devotional, error) {
	var devotionals []*model.Devotional
	err := r.DB.Where("is_enabled = ?", true).Find(&devotionals).Error
	return devotionals, err
}

// GetCurrent returns the devotional flagged for today's display.
func (r *DevotionalRepository) GetCurrent() (*model.Devotional, error) {
	var devotional model.Devotional
	err := r.DB.Where("is_currently_used = ?", true).First(&devotional).Error
	return &devotional, err
}

func (r *DevotionalRepository) Create(devotional *model.Devotional) error {
	return r.DB.Create(devotional).Error
}

func (r *DevotionalRepository) Update(devotional *model.Devotional) error {
	return r.DB.Save(devotional).Error
}

func (r *DevotionalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Devotional{}, id).Error
}

// SetCurrent moves the is_currently_used flag in one transaction.
func (r *DevotionalRepository) SetCurrent(id uint) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(&model.Devotional{}).Where("is_currently_used = ?", true).Update("is_currently_used", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&model.Devotional{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_currently_used": true,
		"last_used_at":      time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
