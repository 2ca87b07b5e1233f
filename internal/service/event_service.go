package service

import (
	"context"
	"fmt"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type EventService struct {
	EventRepo *repository.EventRepository
	GroupRepo *repository.GroupRepository
	Redis     *redis.Client
}

func NewEventService(eventRepo *repository.EventRepository, groupRepo *repository.GroupRepository, rdb *redis.Client) *EventService {
	return &EventService{
		EventRepo: eventRepo,
		GroupRepo: groupRepo,
		Redis:     rdb,
	}
}

func (s *EventService) CreateEvent(creatorID uint, event *model.Event) error {
	if event.StartsAt.Before(time.Now()) {
		return util.ErrEventInPast
	}
	if _, err := s.GroupRepo.FindByID(event.GroupID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrGroupNotFound
		}
		return err
	}
	event.CreatorID = creatorID
	return s.EventRepo.Create(event)
}

func (s *EventService) ListGroupEvents(groupID uint, upcomingOnly bool) ([]model.Event, error) {
	return s.EventRepo.ListByGroup(groupID, upcomingOnly)
}

// EventDetail is an event plus its RSVP tallies.
type EventDetail struct {
	model.Event
	Going    int64            `json:"going"`
	Maybe    int64            `json:"maybe"`
	Declined int64            `json:"declined"`
	MyRSVP   model.RSVPStatus `json:"myRsvp,omitempty"`
}

// GetEventDetail returns the event with attendance counts. Views are
// counted once per viewer per 10 minutes, deduplicated through redis.
func (s *EventService) GetEventDetail(ctx context.Context, eventID, viewerID uint) (*EventDetail, error) {
	event, err := s.EventRepo.FindByID(eventID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && viewerID > 0 {
		viewKey := fmt.Sprintf("event_view:%d:%d", eventID, viewerID)
		isNewView, _ := s.Redis.SetNX(ctx, viewKey, "1", 10*time.Minute).Result()
		if isNewView {
			s.EventRepo.IncrementViewCount(eventID)
			event.ViewCount++
		}
	}

	detail := &EventDetail{Event: *event}
	if detail.Going, err = s.EventRepo.CountRSVPs(eventID, model.RSVPGoing); err != nil {
		return nil, err
	}
	if detail.Maybe, err = s.EventRepo.CountRSVPs(eventID, model.RSVPMaybe); err != nil {
		return nil, err
	}
	if detail.Declined, err = s.EventRepo.CountRSVPs(eventID, model.RSVPDeclined); err != nil {
		return nil, err
	}

	if viewerID > 0 {
		if rsvp, err := s.EventRepo.FindRSVP(eventID, viewerID); err == nil {
			detail.MyRSVP = rsvp.Status
		}
	}

	return detail, nil
}

// RSVP records or replaces the user's reply for an event.
func (s *EventService) RSVP(eventID, userID uint, status model.RSVPStatus) error {
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrEventNotFound
		}
		return err
	}
	return s.EventRepo.UpsertRSVP(&model.EventRSVP{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	})
}
