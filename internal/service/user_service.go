package service

import (
	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	PrefRepo *repository.NotificationPreferenceRepository
	Planner  *NudgePlanner
}

func NewUserService(
	userRepo *repository.UserRepository,
	prefRepo *repository.NotificationPreferenceRepository,
	planner *NudgePlanner,
) *UserService {
	return &UserService{
		UserRepo: userRepo,
		PrefRepo: prefRepo,
		Planner:  planner,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateProfile(userID uint, name, bio string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	user.Bio = bio
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = avatarURL
	return s.UserRepo.Update(user)
}

// GetNotificationPreference returns the stored preference, or an "off"
// default when the user never saved one.
func (s *UserService) GetNotificationPreference(userID uint) (*model.NotificationPreference, error) {
	pref, err := s.PrefRepo.FindByUser(userID)
	if err == gorm.ErrRecordNotFound {
		return &model.NotificationPreference{UserID: userID, Cadence: model.CadenceOff}, nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

// UpdateNotificationPreference persists the preference and re-arms the
// nudge planner with it in the same breath.
func (s *UserService) UpdateNotificationPreference(userID uint, pref *model.NotificationPreference) error {
	pref.UserID = userID
	if err := s.PrefRepo.Upsert(pref); err != nil {
		return err
	}
	s.Planner.Schedule(userID, pref)
	return nil
}

// ArmNudgeOnLogin loads the preference and arms the planner. A failed
// read is treated as no preference: the planner stays idle.
func (s *UserService) ArmNudgeOnLogin(userID uint) {
	pref, err := s.PrefRepo.FindByUser(userID)
	if err != nil {
		s.Planner.Cancel(userID)
		return
	}
	s.Planner.Schedule(userID, pref)
}
