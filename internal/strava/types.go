package strava

import "time"

// Activity is the detail the bot needs from a Strava activity, with distance
// already converted to kilometers.
type Activity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Distance    float64   `json:"distance"` // kilometers
	MovingTime  int       `json:"moving_time"`
	ElapsedTime int       `json:"elapsed_time"`
	Type        string    `json:"type"`
	StartDate   time.Time `json:"start_date"`
	AthleteID   int64     `json:"athlete_id"`
}

// Athlete is the profile subset fetched after OAuth registration.
type Athlete struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
}

type Subscription struct {
	ID          int64  `json:"id"`
	CallbackURL string `json:"callback_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// activityResponse is the wire shape; distance arrives in meters.
type activityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	MovingTime  int     `json:"moving_time"`
	ElapsedTime int     `json:"elapsed_time"`
	Type        string  `json:"type"`
	StartDate   string  `json:"start_date"`
	Athlete     struct {
		ID int64 `json:"id"`
	} `json:"athlete"`
}

func (a activityResponse) toActivity() Activity {
	startDate, _ := time.Parse(time.RFC3339, a.StartDate)
	return Activity{
		ID:          a.ID,
		Name:        a.Name,
		Distance:    a.Distance / 1000,
		MovingTime:  a.MovingTime,
		ElapsedTime: a.ElapsedTime,
		Type:        a.Type,
		StartDate:   startDate,
		AthleteID:   a.Athlete.ID,
	}
}
