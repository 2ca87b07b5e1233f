package service

import (
	"context"
	"testing"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newEventTestService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Event{}, &model.Group{}))

	// event_rsvps carries a MySQL enum column; plain DDL stands in for
	// AutoMigrate on sqlite.
	require.NoError(t, db.Exec(`CREATE TABLE event_rsvps (
		id integer primary key autoincrement,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime,
		event_id integer not null,
		user_id integer not null,
		status text not null,
		unique (event_id, user_id)
	)`).Error)

	require.NoError(t, db.Create(&model.Group{Name: "Morning Prayer", CreatorID: 1, MemberCount: 1}).Error)

	svc := NewEventService(repository.NewEventRepository(db), repository.NewGroupRepository(db), nil)
	return svc, db
}

func futureEvent(groupID uint) *model.Event {
	return &model.Event{
		GroupID:  groupID,
		Title:    "Prayer Night",
		Location: "Main Hall",
		StartsAt: time.Now().Add(48 * time.Hour),
	}
}

func TestCreateEventInPastRejected(t *testing.T) {
	svc, _ := newEventTestService(t)

	err := svc.CreateEvent(1, &model.Event{
		GroupID:  1,
		Title:    "Yesterday",
		StartsAt: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, util.ErrEventInPast)
}

func TestCreateEventUnknownGroup(t *testing.T) {
	svc, _ := newEventTestService(t)

	err := svc.CreateEvent(1, futureEvent(99))

	assert.ErrorIs(t, err, util.ErrGroupNotFound)
}

func TestCreateEventSetsCreator(t *testing.T) {
	svc, db := newEventTestService(t)

	event := futureEvent(1)
	require.NoError(t, svc.CreateEvent(7, event))

	var stored model.Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, uint(7), stored.CreatorID)
}

func TestRSVPUpsertKeepsOneRowPerUser(t *testing.T) {
	svc, db := newEventTestService(t)

	event := futureEvent(1)
	require.NoError(t, svc.CreateEvent(1, event))

	require.NoError(t, svc.RSVP(event.ID, 5, model.RSVPGoing))
	require.NoError(t, svc.RSVP(event.ID, 5, model.RSVPMaybe))

	var count int64
	db.Model(&model.EventRSVP{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var rsvp model.EventRSVP
	require.NoError(t, db.Where("event_id = ? AND user_id = ?", event.ID, 5).First(&rsvp).Error)
	assert.Equal(t, model.RSVPMaybe, rsvp.Status)
}

func TestRSVPUnknownEvent(t *testing.T) {
	svc, _ := newEventTestService(t)

	err := svc.RSVP(42, 5, model.RSVPGoing)

	assert.ErrorIs(t, err, util.ErrEventNotFound)
}

func TestGetEventDetailCountsAndOwnReply(t *testing.T) {
	svc, _ := newEventTestService(t)

	event := futureEvent(1)
	require.NoError(t, svc.CreateEvent(1, event))

	require.NoError(t, svc.RSVP(event.ID, 2, model.RSVPGoing))
	require.NoError(t, svc.RSVP(event.ID, 3, model.RSVPGoing))
	require.NoError(t, svc.RSVP(event.ID, 4, model.RSVPMaybe))
	require.NoError(t, svc.RSVP(event.ID, 5, model.RSVPDeclined))

	detail, err := svc.GetEventDetail(context.Background(), event.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(2), detail.Going)
	assert.Equal(t, int64(1), detail.Maybe)
	assert.Equal(t, int64(1), detail.Declined)
	assert.Equal(t, model.RSVPMaybe, detail.MyRSVP)
}

func TestGetEventDetailUnknownEvent(t *testing.T) {
	svc, _ := newEventTestService(t)

	_, err := svc.GetEventDetail(context.Background(), 42, 1)

	assert.ErrorIs(t, err, util.ErrEventNotFound)
}

func TestListGroupEventsUpcomingOnly(t *testing.T) {
	svc, db := newEventTestService(t)

	require.NoError(t, svc.CreateEvent(1, futureEvent(1)))

	// A past event has to be seeded directly since CreateEvent rejects it.
	require.NoError(t, db.Create(&model.Event{
		GroupID:   1,
		CreatorID: 1,
		Title:     "Last Month",
		StartsAt:  time.Now().AddDate(0, -1, 0),
	}).Error)

	upcoming, err := svc.ListGroupEvents(1, true)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	all, err := svc.ListGroupEvents(1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
