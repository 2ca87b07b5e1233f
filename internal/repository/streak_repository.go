package repository

import (
	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// Find returns the streak record for one (user, group) pair. Absence
// surfaces as gorm.ErrRecordNotFound; callers decide whether that is an
// error.
func (r *StreakRepository) Find(userID, groupID uint) (*model.StreakRecord, error) {
	var record model.StreakRecord
	err := r.DB.Where("user_id = ? AND group_id = ?", userID, groupID).First(&record).Error
	return &record, err
}

// Upsert creates the record on first activity, updates it afterwards.
func (r *StreakRepository) Upsert(record *model.StreakRecord) error {
	if record.ID == 0 {
		return r.DB.Create(record).Error
	}
	return r.DB.Save(record).Error
}

func (r *StreakRepository) FindByUser(userID uint) ([]model.StreakRecord, error) {
	var records []model.StreakRecord
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *StreakRepository) MaxCurrentStreak(userID uint) (int, error) {
	var best int
	err := r.DB.Model(&model.StreakRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(current_streak), 0)").
		Scan(&best).Error
	return best, err
}
