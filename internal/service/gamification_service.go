package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/util"
	"gathered_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PointsPerActivity is the fixed unity-point credit for one recorded
// activity, regardless of its type.
const PointsPerActivity = 1

const (
	leaderboardCacheKey = "gamification:leaderboard"
	leaderboardCacheTTL = 5 * time.Minute
)

// BadgeEvaluator decides which badges a user has newly earned after an
// activity. Implementations must be safe to call concurrently; failures
// are treated as "no new badges".
type BadgeEvaluator interface {
	Evaluate(userID, groupID uint) ([]string, error)
}

// ActivityResult is what the caller gets back from RecordActivity.
type ActivityResult struct {
	PointsAwarded int                  `json:"pointsAwarded"`
	BadgesEarned  []string             `json:"badgesEarned"`
	CurrentStreak int                  `json:"currentStreak"`
	Intensity     model.FlameIntensity `json:"intensity"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	User        string `json:"user"`
	UnityPoints int    `json:"unityPoints"`
	Avatar      string `json:"avatar,omitempty"`
}

type GamificationService struct {
	StreakRepo   *repository.StreakRepository
	ActivityRepo *repository.ActivityLogRepository
	UserRepo     *repository.UserRepository
	Badges       BadgeEvaluator
	Redis        *redis.Client

	// Now is the activity clock; overridable in tests. The server clock
	// decides the streak date so clients cannot forge it.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGamificationService(
	streakRepo *repository.StreakRepository,
	activityRepo *repository.ActivityLogRepository,
	userRepo *repository.UserRepository,
	badges BadgeEvaluator,
	rdb *redis.Client,
) *GamificationService {
	return &GamificationService{
		StreakRepo:   streakRepo,
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
		Badges:       badges,
		Redis:        rdb,
		Now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

// lockFor serializes the read-modify-write on one (user, group) streak
// record so two same-day calls cannot double-increment.
func (s *GamificationService) lockFor(userID, groupID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, groupID)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// RecordActivity runs one "user did activity X in group Y" event end to
// end: append the log row, fold the day into the streak record, credit
// unity points, then check badges. The log append is the commit point:
// if it fails nothing else runs; if the streak write fails afterwards the
// log row stays (at-least-once, surfaced as ErrPartialFailure). A badge
// evaluation failure is swallowed and yields an empty badge list.
func (s *GamificationService) RecordActivity(ctx context.Context, userID, groupID uint, activityType string) (*ActivityResult, error) {
	activityType = strings.TrimSpace(activityType)
	if userID == 0 || groupID == 0 || activityType == "" {
		return nil, util.ErrValidation
	}

	today := truncateToDay(s.Now())

	entry := &model.ActivityLog{
		UserID:       userID,
		GroupID:      groupID,
		ActivityDate: today,
		ActivityType: activityType,
		Count:        1,
		Points:       PointsPerActivity,
	}
	if err := s.ActivityRepo.Append(entry); err != nil {
		return nil, err
	}

	lock := s.lockFor(userID, groupID)
	lock.Lock()

	existing, err := s.StreakRepo.Find(userID, groupID)
	if err == gorm.ErrRecordNotFound {
		existing = nil
	} else if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("%w: %v", util.ErrPartialFailure, err)
	}

	updated := ApplyActivity(existing, userID, groupID, today)
	if existing != nil {
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
	}

	if err := s.StreakRepo.Upsert(&updated); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("%w: %v", util.ErrPartialFailure, err)
	}
	lock.Unlock()

	if err := s.UserRepo.AddUnityPoints(userID, PointsPerActivity); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrPartialFailure, err)
	}

	badges := []string{}
	if s.Badges != nil {
		earned, err := s.Badges.Evaluate(userID, groupID)
		if err != nil {
			// Badge awards are best effort; the activity is already
			// recorded and credited.
			logger.Log.Warn("badge evaluation failed",
				zap.Uint("userId", userID),
				zap.Uint("groupId", groupID),
				zap.Error(err))
		} else if earned != nil {
			badges = earned
		}
	}

	s.invalidateLeaderboard(ctx)

	return &ActivityResult{
		PointsAwarded: PointsPerActivity,
		BadgesEarned:  badges,
		CurrentStreak: updated.CurrentStreak,
		Intensity:     updated.Intensity,
	}, nil
}

// GetStreak returns the streak record for one group, or a zeroed record
// when the user has never been active there.
func (s *GamificationService) GetStreak(userID, groupID uint) (*model.StreakRecord, error) {
	record, err := s.StreakRepo.Find(userID, groupID)
	if err == gorm.ErrRecordNotFound {
		return &model.StreakRecord{
			UserID:    userID,
			GroupID:   groupID,
			Intensity: FlameIntensityFor(0),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *GamificationService) GetUserStreaks(userID uint) ([]model.StreakRecord, error) {
	return s.StreakRepo.FindByUser(userID)
}

// GetLeaderboard ranks users by unity points, cached in redis for a few
// minutes since the home screen polls it.
func (s *GamificationService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByUnityPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			User:        user.Name,
			UnityPoints: user.UnityPoints,
			Avatar:      user.Avatar,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

func (s *GamificationService) invalidateLeaderboard(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, leaderboardCacheKey)
	}
}
