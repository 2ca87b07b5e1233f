package service

import (
	"errors"
	"math/rand"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/repository"
)

// rotationInterval is how long one devotional stays current before the
// service rotates to another enabled one.
const rotationInterval = 24 * time.Hour

type DevotionalService struct {
	DevotionalRepo *repository.DevotionalRepository
}

func NewDevotionalService(devotionalRepo *repository.DevotionalRepository) *DevotionalService {
	return &DevotionalService{DevotionalRepo: devotionalRepo}
}

func (s *DevotionalService) GetAllDevotionals() ([]*model.Devotional, error) {
	return s.DevotionalRepo.GetAll()
}

// GetCurrentDevotional returns today's devotional, rotating to a random
// other enabled one once the current entry has been up a full day.
func (s *DevotionalService) GetCurrentDevotional() (*model.Devotional, error) {
	current, err := s.DevotionalRepo.GetCurrent()
	if err != nil {
		enabled, err := s.DevotionalRepo.GetEnabled()
		if err != nil || len(enabled) == 0 {
			return nil, err
		}
		s.DevotionalRepo.SetCurrent(enabled[0].ID)
		return enabled[0], nil
	}

	elapsed := time.Since(current.LastUsedAt)
	enabled, err := s.DevotionalRepo.GetEnabled()

	if err == nil && len(enabled) > 1 && elapsed >= rotationInterval {
		var candidates []*model.Devotional
		for _, d := range enabled {
			if d.ID != current.ID {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) > 0 {
			next := candidates[rand.Intn(len(candidates))]
			s.DevotionalRepo.SetCurrent(next.ID)
			return next, nil
		}
	}

	return current, nil
}

func (s *DevotionalService) CreateDevotional(devotional *model.Devotional) error {
	devotional.IsEnabled = true
	devotional.IsCurrentlyUsed = false
	return s.DevotionalRepo.Create(devotional)
}

func (s *DevotionalService) UpdateDevotional(id uint, title, passage, body string, isEnabled bool) error {
	var devotional model.Devotional
	if err := s.DevotionalRepo.DB.First(&devotional, id).Error; err != nil {
		return err
	}

	current, err := s.DevotionalRepo.GetCurrent()
	if err == nil && current.ID == id && !isEnabled {
		enabled, err := s.DevotionalRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("at least one enabled devotional is required")
		}
	}

	devotional.Title = title
	devotional.Passage = passage
	devotional.Body = body
	devotional.IsEnabled = isEnabled
	return s.DevotionalRepo.Update(&devotional)
}

func (s *DevotionalService) DeleteDevotional(id uint) error {
	current, err := s.DevotionalRepo.GetCurrent()
	if err == nil && current.ID == id {
		enabled, err := s.DevotionalRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("at least one enabled devotional is required")
		}
	}

	return s.DevotionalRepo.Delete(id)
}

// AttachAudio stores the probed audio metadata on a devotional.
func (s *DevotionalService) AttachAudio(id uint, audioURL string, duration float64) error {
	var devotional model.Devotional
	if err := s.DevotionalRepo.DB.First(&devotional, id).Error; err != nil {
		return err
	}
	devotional.AudioURL = audioURL
	devotional.AudioDuration = duration
	return s.DevotionalRepo.Update(&devotional)
}
