package service

import (
	"context"
	"errors"
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

type stubEvaluator struct {
	badges []string
	err    error
	calls  int
}

func (s *stubEvaluator) Evaluate(userID, groupID uint) ([]string, error) {
	s.calls++
	return s.badges, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.StreakRecord{}, &model.ActivityLog{}))

	// The users table carries a MySQL enum column, so AutoMigrate cannot
	// build it on sqlite; a plain DDL stand-in is enough here.
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

	return db
}

func newTestGamification(t *testing.T, badges BadgeEvaluator) (*GamificationService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	require.NoError(t, db.Create(&model.User{Name: "Ruth", Email: "ruth@example.com", Password: "x"}).Error)

	svc := NewGamificationService(
		repository.NewStreakRepository(db),
		repository.NewActivityLogRepository(db),
		repository.NewUserRepository(db),
		badges,
		nil,
	)
	return svc, db
}

func TestRecordActivityFirstTime(t *testing.T) {
	svc, db := newTestGamification(t, &stubEvaluator{})
	svc.Now = func() time.Time { return time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC) }

	result, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	assert.Equal(t, PointsPerActivity, result.PointsAwarded)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, model.FlameEmber, result.Intensity)
	assert.Empty(t, result.BadgesEarned)

	var logCount int64
	db.Model(&model.ActivityLog{}).Count(&logCount)
	assert.Equal(t, int64(1), logCount)

	var user model.User
	require.NoError(t, db.First(&user, 1).Error)
	assert.Equal(t, PointsPerActivity, user.UnityPoints)
}

func TestRecordActivitySameDayLogsButDoesNotIncrement(t *testing.T) {
	svc, db := newTestGamification(t, &stubEvaluator{})
	svc.Now = func() time.Time { return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC) }

	_, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	result, err := svc.RecordActivity(context.Background(), 1, 2, "reading")
	require.NoError(t, err)

	// Every activity is logged and earns points, but the streak only
	// counts the day once.
	assert.Equal(t, 1, result.CurrentStreak)

	var logCount int64
	db.Model(&model.ActivityLog{}).Count(&logCount)
	assert.Equal(t, int64(2), logCount)

	var user model.User
	require.NoError(t, db.First(&user, 1).Error)
	assert.Equal(t, 2*PointsPerActivity, user.UnityPoints)
}

func TestRecordActivityConsecutiveDays(t *testing.T) {
	svc, _ := newTestGamification(t, &stubEvaluator{})

	current := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		result, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
		require.NoError(t, err)
		assert.Equal(t, i+1, result.CurrentStreak)
		current = current.AddDate(0, 0, 1)
	}

	record, err := svc.GetStreak(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, record.CurrentStreak)
	assert.Equal(t, 3, record.LongestStreak)
	assert.Equal(t, model.FlameGlow, record.Intensity)
}

func TestRecordActivityGapResetsStreak(t *testing.T) {
	svc, _ := newTestGamification(t, &stubEvaluator{})

	current := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return current }

	_, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)
	current = current.AddDate(0, 0, 1)
	_, err = svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	current = current.AddDate(0, 0, 5)
	result, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	assert.Equal(t, 1, result.CurrentStreak)

	record, err := svc.GetStreak(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, record.LongestStreak)
}

func TestRecordActivityValidation(t *testing.T) {
	svc, db := newTestGamification(t, &stubEvaluator{})

	cases := []struct {
		userID       uint
		groupID      uint
		activityType string
	}{
		{0, 2, "prayer"},
		{1, 0, "prayer"},
		{1, 2, ""},
		{1, 2, "   "},
	}
	for _, tc := range cases {
		_, err := svc.RecordActivity(context.Background(), tc.userID, tc.groupID, tc.activityType)
		assert.ErrorIs(t, err, util.ErrValidation)
	}

	// Rejected calls must leave no trace.
	var logCount int64
	db.Model(&model.ActivityLog{}).Count(&logCount)
	assert.Equal(t, int64(0), logCount)
}

func TestRecordActivityBadgeFailureIsSwallowed(t *testing.T) {
	evaluator := &stubEvaluator{err: errors.New("badge store down")}
	svc, _ := newTestGamification(t, evaluator)

	result, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	assert.Equal(t, 1, evaluator.calls)
	assert.Empty(t, result.BadgesEarned)
	assert.Equal(t, 1, result.CurrentStreak)
}

func TestRecordActivityReturnsEarnedBadges(t *testing.T) {
	svc, _ := newTestGamification(t, &stubEvaluator{badges: []string{"first_steps"}})

	result, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)

	assert.Equal(t, []string{"first_steps"}, result.BadgesEarned)
}

func TestRecordActivityKeepsSeparateStreaksPerGroup(t *testing.T) {
	svc, _ := newTestGamification(t, &stubEvaluator{})
	svc.Now = func() time.Time { return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC) }

	_, err := svc.RecordActivity(context.Background(), 1, 2, "prayer")
	require.NoError(t, err)
	_, err = svc.RecordActivity(context.Background(), 1, 3, "prayer")
	require.NoError(t, err)

	records, err := svc.GetUserStreaks(1)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetStreakAbsentReturnsZeroRecord(t *testing.T) {
	svc, _ := newTestGamification(t, &stubEvaluator{})

	record, err := svc.GetStreak(1, 99)
	require.NoError(t, err)

	assert.Equal(t, 0, record.CurrentStreak)
	assert.Equal(t, 0, record.LongestStreak)
	assert.Equal(t, model.FlameOut, record.Intensity)
}
