package repository

import (
	"time"

	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// Append writes one log row. Rows are never updated or deleted.
func (r *ActivityLogRepository) Append(entry *model.ActivityLog) error {
	return r.DB.Create(entry).Error
}

func (r *ActivityLogRepository) ListByUserAndGroup(userID, groupID uint, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.DB.Where("user_id = ? AND group_id = ?", userID, groupID).
		Order("activity_date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *ActivityLogRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityLog{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SumPointsSince totals points a user earned from a given date on.
func (r *ActivityLogRepository) SumPointsSince(userID uint, since time.Time) (int, error) {
	var total int
	err := r.DB.Model(&model.ActivityLog{}).
		Where("user_id = ? AND activity_date >= ?", userID, since).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}
