package models

import "time"

type Activity struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StravaActivityID int64     `gorm:"not null;uniqueIndex" json:"strava_activity_id"`
	AthleteStravaID  int64     `gorm:"not null;index" json:"athlete_strava_id"`
	AthleteName      string    `gorm:"size:100;not null" json:"athlete_name"`
	Name             string    `gorm:"size:200" json:"name"`
	Distance         float64   `gorm:"not null" json:"distance"` // kilometers
	MovingTime       int       `json:"moving_time"`              // seconds
	ElapsedTime      int       `json:"elapsed_time"`             // seconds
	ActivityType     string    `gorm:"size:30;index" json:"activity_type"`
	StartDate        time.Time `gorm:"not null;index" json:"start_date"`
	Notified         bool      `gorm:"not null;default:false" json:"notified"`
	CreatedAt        time.Time `json:"created_at"`
}

const ActivityTypeRun = "Run"
