package service

import (
	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"

	"gorm.io/gorm"
)

// Milestones checked by the default badge rules.
const (
	weekStreakMilestone  = 7
	monthStreakMilestone = 30
	unityPointMilestone  = 100
)

// BadgeService is the default BadgeEvaluator: it awards catalog badges
// for activity, streak and point milestones. Each badge is awarded at
// most once per user.
type BadgeService struct {
	BadgeRepo    *repository.BadgeRepository
	StreakRepo   *repository.StreakRepository
	ActivityRepo *repository.ActivityLogRepository
	UserRepo     *repository.UserRepository
}

func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	streakRepo *repository.StreakRepository,
	activityRepo *repository.ActivityLogRepository,
	userRepo *repository.UserRepository,
) *BadgeService {
	return &BadgeService{
		BadgeRepo:    badgeRepo,
		StreakRepo:   streakRepo,
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
	}
}

func (s *BadgeService) Evaluate(userID, groupID uint) ([]string, error) {
	var earned []string

	activityCount, err := s.ActivityRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if activityCount >= 1 {
		if code, err := s.awardOnce(userID, groupID, "first_steps"); err != nil {
			return nil, err
		} else if code != "" {
			earned = append(earned, code)
		}
	}

	bestStreak, err := s.StreakRepo.MaxCurrentStreak(userID)
	if err != nil {
		return nil, err
	}
	if bestStreak >= weekStreakMilestone {
		if code, err := s.awardOnce(userID, groupID, "week_of_fire"); err != nil {
			return nil, err
		} else if code != "" {
			earned = append(earned, code)
		}
	}
	if bestStreak >= monthStreakMilestone {
		if code, err := s.awardOnce(userID, groupID, "month_of_fire"); err != nil {
			return nil, err
		} else if code != "" {
			earned = append(earned, code)
		}
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.UnityPoints >= unityPointMilestone {
		if code, err := s.awardOnce(userID, groupID, "unity_100"); err != nil {
			return nil, err
		} else if code != "" {
			earned = append(earned, code)
		}
	}

	return earned, nil
}

// awardOnce returns the code when this call newly awarded the badge, ""
// when the user already had it or the catalog does not carry it.
func (s *BadgeService) awardOnce(userID, groupID uint, code string) (string, error) {
	if _, err := s.BadgeRepo.FindByCode(code); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}

	has, err := s.BadgeRepo.HasBadge(userID, code)
	if err != nil {
		return "", err
	}
	if has {
		return "", nil
	}

	if err := s.BadgeRepo.Award(&model.UserBadge{
		UserID:    userID,
		BadgeCode: code,
		GroupID:   groupID,
	}); err != nil {
		return "", err
	}
	return code, nil
}

func (s *BadgeService) GetCatalog() ([]model.Badge, error) {
	return s.BadgeRepo.ListCatalog()
}

func (s *BadgeService) GetUserBadges(userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListByUser(userID)
}
