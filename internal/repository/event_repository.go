package repository

import (
	"time"

	"gathered_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	return &event, err
}

func (r *EventRepository) Update(event *model.Event) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) ListByGroup(groupID uint, upcomingOnly bool) ([]model.Event, error) {
	var events []model.Event
	query := r.DB.Where("group_id = ?", groupID)
	if upcomingOnly {
		query = query.Where("starts_at >= ?", time.Now())
	}
	err := query.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *EventRepository) IncrementViewCount(eventID uint) error {
	return r.DB.Model(&model.Event{}).
		Where("id = ?", eventID).
		Update("view_count", gorm.Expr("view_count + 1")).
		Error
}

func (r *EventRepository) FindRSVP(eventID, userID uint) (*model.EventRSVP, error) {
	var rsvp model.EventRSVP
	err := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	return &rsvp, err
}

// UpsertRSVP keeps at most one reply per (event, user).
func (r *EventRepository) UpsertRSVP(rsvp *model.EventRSVP) error {
	var existing model.EventRSVP
	err := r.DB.Where("event_id = ? AND user_id = ?", rsvp.EventID, rsvp.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(rsvp).Error
	}
	if err != nil {
		return err
	}
	existing.Status = rsvp.Status
	return r.DB.Save(&existing).Error
}

func (r *EventRepository) CountRSVPs(eventID uint, status model.RSVPStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EventRSVP{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

func (r *EventRepository) ListRSVPs(eventID uint) ([]model.EventRSVP, error) {
	var rsvps []model.EventRSVP
	err := r.DB.Where("event_id = ?", eventID).Find(&rsvps).Error
	return rsvps, err
}
