package services

import (
	"errors"
	"time"

	"strava-whatsapp-bot/internal/models"

	"gorm.io/gorm"
)

type AthleteService struct {
	db *gorm.DB
}

func NewAthleteService(db *gorm.DB) *AthleteService {
	return &AthleteService{db: db}
}

// Upsert creates or updates the athlete identified by stravaID. On update,
// optional fields only overwrite when a non-empty value is given; re-running
// an OAuth callback rotates tokens in place instead of duplicating rows.
func (s *AthleteService) Upsert(stravaID int64, name, phoneNumber, accessToken, refreshToken string, tokenExpiresAt *time.Time) (*models.Athlete, error) {
	var athlete models.Athlete
	err := s.db.Where("strava_id = ?", stravaID).First(&athlete).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		athlete = models.Athlete{
			StravaID:     stravaID,
			Name:         name,
			PhoneNumber:  phoneNumber,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}
		if tokenExpiresAt != nil {
			athlete.TokenExpiresAt = tokenExpiresAt
		}
		if err := s.db.Create(&athlete).Error; err != nil {
			return nil, err
		}
		return &athlete, nil
	}

	athlete.Name = name
	if phoneNumber != "" {
		athlete.PhoneNumber = phoneNumber
	}
	if accessToken != "" {
		athlete.AccessToken = accessToken
	}
	if refreshToken != "" {
		athlete.RefreshToken = refreshToken
	}
	if tokenExpiresAt != nil {
		athlete.TokenExpiresAt = tokenExpiresAt
	}
	athlete.UpdatedAt = time.Now()

	if err := s.db.Save(&athlete).Error; err != nil {
		return nil, err
	}
	return &athlete, nil
}

// GetByStravaID returns the athlete, or nil when not registered.
func (s *AthleteService) GetByStravaID(stravaID int64) (*models.Athlete, error) {
	var athlete models.Athlete
	err := s.db.Where("strava_id = ?", stravaID).First(&athlete).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

func (s *AthleteService) List() ([]models.Athlete, error) {
	var athletes []models.Athlete
	if err := s.db.Order("id").Find(&athletes).Error; err != nil {
		return nil, err
	}
	return athletes, nil
}
