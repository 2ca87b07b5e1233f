package repository

import (
	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type NotificationPreferenceRepository struct {
	DB *gorm.DB
}

func NewNotificationPreferenceRepository(db *gorm.DB) *NotificationPreferenceRepository {
	return &NotificationPreferenceRepository{DB: db}
}

func (r *NotificationPreferenceRepository) FindByUser(userID uint) (*model.NotificationPreference, error) {
	var pref model.NotificationPreference
	err := r.DB.Where("user_id = ?", userID).First(&pref).Error
	return &pref, err
}

// Upsert keeps one preference row per user.
func (r *NotificationPreferenceRepository) Upsert(pref *model.NotificationPreference) error {
	var existing model.NotificationPreference
	err := r.DB.Where("user_id = ?", pref.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(pref).Error
	}
	if err != nil {
		return err
	}
	existing.Cadence = pref.Cadence
	existing.QuietHoursStart = pref.QuietHoursStart
	existing.QuietHoursEnd = pref.QuietHoursEnd
	*pref = existing
	return r.DB.Save(&existing).Error
}
