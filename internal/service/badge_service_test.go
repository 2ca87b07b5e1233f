package service

import (
	"testing"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBadgeTestService(t *testing.T) (*BadgeService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Badge{}, &model.UserBadge{}))

	for _, code := range []string{"first_steps", "week_of_fire", "month_of_fire", "unity_100"} {
		require.NoError(t, db.Create(&model.Badge{Code: code, Name: code, Enabled: true}).Error)
	}
	require.NoError(t, db.Create(&model.User{Name: "Ruth", Email: "ruth@example.com", Password: "x"}).Error)

	svc := NewBadgeService(
		repository.NewBadgeRepository(db),
		repository.NewStreakRepository(db),
		repository.NewActivityLogRepository(db),
		repository.NewUserRepository(db),
	)
	return svc, db
}

func seedActivity(t *testing.T, db *gorm.DB, userID, groupID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.ActivityLog{
		UserID:       userID,
		GroupID:      groupID,
		ActivityDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ActivityType: "prayer",
		Count:        1,
		Points:       1,
	}).Error)
}

func TestEvaluateFirstActivityBadge(t *testing.T) {
	svc, db := newBadgeTestService(t)
	seedActivity(t, db, 1, 2)

	earned, err := svc.Evaluate(1, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"first_steps"}, earned)

	// Already held: the second evaluation awards nothing.
	earned, err = svc.Evaluate(1, 2)
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestEvaluateStreakMilestones(t *testing.T) {
	svc, db := newBadgeTestService(t)
	seedActivity(t, db, 1, 2)

	require.NoError(t, db.Create(&model.StreakRecord{
		UserID:           1,
		GroupID:          2,
		CurrentStreak:    7,
		LongestStreak:    7,
		LastActivityDate: time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
		Intensity:        model.FlameBurning,
	}).Error)

	earned, err := svc.Evaluate(1, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_steps", "week_of_fire"}, earned)

	// Stretch the streak to a month; only the new milestone fires.
	require.NoError(t, db.Model(&model.StreakRecord{}).
		Where("user_id = ? AND group_id = ?", 1, 2).
		Updates(map[string]interface{}{"current_streak": 30, "longest_streak": 30}).Error)

	earned, err = svc.Evaluate(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"month_of_fire"}, earned)
}

func TestEvaluateUnityPointMilestone(t *testing.T) {
	svc, db := newBadgeTestService(t)
	seedActivity(t, db, 1, 2)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", 1).
		Update("unity_points", 100).Error)

	earned, err := svc.Evaluate(1, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_steps", "unity_100"}, earned)
}

func TestEvaluateUnknownCatalogCodeIgnored(t *testing.T) {
	svc, db := newBadgeTestService(t)
	seedActivity(t, db, 1, 2)

	require.NoError(t, db.Where("code = ?", "first_steps").Delete(&model.Badge{}).Error)

	earned, err := svc.Evaluate(1, 2)
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestGetUserBadges(t *testing.T) {
	svc, db := newBadgeTestService(t)
	seedActivity(t, db, 1, 2)

	_, err := svc.Evaluate(1, 2)
	require.NoError(t, err)

	badges, err := svc.GetUserBadges(1)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "first_steps", badges[0].BadgeCode)
	assert.Equal(t, uint(2), badges[0].GroupID)
}
