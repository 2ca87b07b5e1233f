package service

import (
	"testing"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newUserTestService(t *testing.T) (*UserService, *NudgePlanner, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Both tables carry MySQL enum columns; plain DDL stands in for
	// AutoMigrate on sqlite.
	require.NoError(t, db.Exec(`CREATE TABLE users (
		id integer primary key autoincrement,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime,
		name text,
		email text,
		password text,
		role text default 'member',
		unity_points integer default 0,
		avatar text,
		bio text,
		disabled boolean default false,
		last_login datetime,
		last_seen datetime
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE notification_preferences (
		id integer primary key autoincrement,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime,
		user_id integer not null unique,
		cadence text default 'off',
		quiet_hours_start text,
		quiet_hours_end text
	)`).Error)

	planner := NewNudgePlanner(9, nil)
	t.Cleanup(planner.Stop)

	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewNotificationPreferenceRepository(db),
		planner,
	)
	return svc, planner, db
}

func TestGetNotificationPreferenceDefaultsToOff(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	pref, err := svc.GetNotificationPreference(1)
	require.NoError(t, err)

	assert.Equal(t, model.CadenceOff, pref.Cadence)
	assert.Equal(t, uint(1), pref.UserID)
}

func TestUpdateNotificationPreferenceArmsPlanner(t *testing.T) {
	svc, planner, db := newUserTestService(t)

	err := svc.UpdateNotificationPreference(1, &model.NotificationPreference{
		Cadence:         model.CadenceDaily,
		QuietHoursStart: "22:00",
		QuietHoursEnd:   "07:00",
	})
	require.NoError(t, err)

	assert.True(t, planner.Armed(1))

	var count int64
	db.Model(&model.NotificationPreference{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateNotificationPreferenceOffDisarms(t *testing.T) {
	svc, planner, db := newUserTestService(t)

	require.NoError(t, svc.UpdateNotificationPreference(1, &model.NotificationPreference{Cadence: model.CadenceWeekly}))
	require.True(t, planner.Armed(1))

	require.NoError(t, svc.UpdateNotificationPreference(1, &model.NotificationPreference{Cadence: model.CadenceOff}))
	assert.False(t, planner.Armed(1))

	// Still one row per user after repeated updates.
	var count int64
	db.Model(&model.NotificationPreference{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestArmNudgeOnLogin(t *testing.T) {
	svc, planner, _ := newUserTestService(t)

	// No stored preference: the planner stays idle.
	svc.ArmNudgeOnLogin(1)
	assert.False(t, planner.Armed(1))

	require.NoError(t, svc.UpdateNotificationPreference(1, &model.NotificationPreference{Cadence: model.CadenceDaily}))
	planner.Cancel(1)

	svc.ArmNudgeOnLogin(1)
	assert.True(t, planner.Armed(1))
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	require.NoError(t, svc.UserRepo.Create(&model.User{Name: "Ruth", Email: "ruth@example.com", Password: "x"}))

	user, err := svc.UpdateProfile(1, "Ruth N.", "Psalm 23")
	require.NoError(t, err)

	assert.Equal(t, "Ruth N.", user.Name)
	assert.Equal(t, "Psalm 23", user.Bio)

	// An empty name keeps the old one; the bio is replaced as given.
	user, err = svc.UpdateProfile(1, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Ruth N.", user.Name)
	assert.Equal(t, "", user.Bio)
}
