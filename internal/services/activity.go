package services

import (
	"errors"
	"time"

	"strava-whatsapp-bot/internal/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Add stores a new activity. The Strava activity id is the idempotency key:
// if a record already exists it is returned unchanged, so webhook replays are
// harmless.
func (s *ActivityService) Add(activity models.Activity) (*models.Activity, error) {
	var existing models.Activity
	err := s.db.Where("strava_activity_id = ?", activity.StravaActivityID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// MarkNotified flips the notified flag. Unknown ids are a silent no-op.
func (s *ActivityService) MarkNotified(stravaActivityID int64) error {
	return s.db.Model(&models.Activity{}).
		Where("strava_activity_id = ?", stravaActivityID).
		Update("notified", true).Error
}

// GetByPeriod returns running activities whose start date falls inside
// [start, end], both bounds inclusive. Order is unspecified; the ranking
// calculator sorts.
func (s *ActivityService) GetByPeriod(start, end time.Time) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.
		Where("start_date >= ? AND start_date <= ?", start, end).
		Where("activity_type = ?", models.ActivityTypeRun).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Recent returns the latest activities by start date.
func (s *ActivityService) Recent(limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	var activities []models.Activity
	err := s.db.Order("start_date DESC").Limit(limit).Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

type Stats struct {
	TotalAthletes   int64   `json:"total_athletes"`
	TotalActivities int64   `json:"total_activities"`
	TotalDistance   float64 `json:"total_distance"`
	AvgDistance     float64 `json:"avg_distance"`
}

// GetStats aggregates overall totals across all recorded activities.
func (s *ActivityService) GetStats() (*Stats, error) {
	var stats Stats

	if err := s.db.Model(&models.Athlete{}).Count(&stats.TotalAthletes).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Activity{}).Count(&stats.TotalActivities).Error; err != nil {
		return nil, err
	}

	var total struct{ Total float64 }
	err := s.db.Model(&models.Activity{}).
		Select("COALESCE(SUM(distance), 0) AS total").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}
	stats.TotalDistance = total.Total

	if stats.TotalActivities > 0 {
		stats.AvgDistance = stats.TotalDistance / float64(stats.TotalActivities)
	}
	return &stats, nil
}
