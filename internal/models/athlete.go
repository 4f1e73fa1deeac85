package models

import "time"

type Athlete struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StravaID       int64      `gorm:"not null;uniqueIndex" json:"strava_id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	PhoneNumber    string     `gorm:"size:30" json:"phone_number,omitempty"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
