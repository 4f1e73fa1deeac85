package rankings

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"strava-whatsapp-bot/internal/models"
)

// Entry is one athlete's aggregated line in a period ranking.
type Entry struct {
	AthleteID     int64   `json:"athlete_id"`
	Name          string  `json:"name"`
	TotalDistance float64 `json:"total_distance"`
	TotalRuns     int     `json:"total_runs"`
	TotalTime     int     `json:"total_time"`
	AvgPace       float64 `json:"avg_pace"`
	Position      int     `json:"position"`
}

// Calculator aggregates activities into distance rankings and formats the
// group-chat messages. Period boundaries are computed in the configured
// timezone.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(timezone string) *Calculator {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("invalid timezone %q, falling back to UTC: %v", timezone, err)
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// WeekRange returns Monday 00:00:00 through Sunday 23:59:59 of the week
// containing date.
func (c *Calculator) WeekRange(date time.Time) (time.Time, time.Time) {
	date = date.In(c.loc)

	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -offset)
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, c.loc)

	sunday := start.AddDate(0, 0, 6)
	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, c.loc)

	return start, end
}

// MonthRange returns the first instant of the month containing date through
// the last second of its final day.
func (c *Calculator) MonthRange(date time.Time) (time.Time, time.Time) {
	date = date.In(c.loc)

	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, c.loc)

	var end time.Time
	if date.Month() == time.December {
		end = time.Date(date.Year(), time.December, 31, 23, 59, 59, 0, c.loc)
	} else {
		nextMonth := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, c.loc)
		end = nextMonth.Add(-time.Second)
	}

	return start, end
}

// CalculateRanking groups activities by athlete, sums distance, run count and
// moving time, and returns entries sorted by total distance descending with
// 1-based positions. Ties keep first-encounter order.
func (c *Calculator) CalculateRanking(activities []models.Activity) []Entry {
	type stats struct {
		name          string
		totalDistance float64
		totalRuns     int
		totalTime     int
	}

	grouped := make(map[int64]*stats)
	var order []int64

	for _, activity := range activities {
		s, ok := grouped[activity.AthleteStravaID]
		if !ok {
			s = &stats{}
			grouped[activity.AthleteStravaID] = s
			order = append(order, activity.AthleteStravaID)
		}
		s.name = activity.AthleteName
		s.totalDistance += activity.Distance
		s.totalRuns++
		s.totalTime += activity.MovingTime
	}

	ranking := make([]Entry, 0, len(order))
	for _, athleteID := range order {
		s := grouped[athleteID]

		avgPace := 0.0
		if s.totalDistance > 0 && s.totalTime > 0 {
			avgPace = (float64(s.totalTime) / 60) / s.totalDistance
		}

		ranking = append(ranking, Entry{
			AthleteID:     athleteID,
			Name:          s.name,
			TotalDistance: round2(s.totalDistance),
			TotalRuns:     s.totalRuns,
			TotalTime:     s.totalTime,
			AvgPace:       round2(avgPace),
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalDistance > ranking[j].TotalDistance
	})

	for i := range ranking {
		ranking[i].Position = i + 1
	}

	return ranking
}

// FormatTime renders seconds as HH:MM:SS, or MM:SS when under an hour.
func FormatTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// FormatRankingMessage renders a ranking as a WhatsApp message. Period is
// "semanal" or "mensal".
func (c *Calculator) FormatRankingMessage(ranking []Entry, period string) string {
	if len(ranking) == 0 {
		return fmt.Sprintf("📊 *Ranking %s*\n\nNenhuma corrida registrada neste período.", capitalize(period))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Ranking %s - Corridas*\n\n", capitalize(period))

	for _, entry := range ranking {
		medal, ok := medals[entry.Position]
		if !ok {
			medal = fmt.Sprintf("%dº", entry.Position)
		}

		fmt.Fprintf(&b, "%s *%s*\n", medal, entry.Name)
		fmt.Fprintf(&b, "   📏 %.2f km em %d corrida(s)\n", entry.TotalDistance, entry.TotalRuns)
		fmt.Fprintf(&b, "   ⏱️ Tempo total: %s\n", FormatTime(entry.TotalTime))
		fmt.Fprintf(&b, "   🏃 Pace médio: %.2f min/km\n\n", entry.AvgPace)
	}

	return b.String()
}

// ActivityNotification renders the announcement for a single new run.
func (c *Calculator) ActivityNotification(athleteName string, distance float64, movingTime int, activityName string) string {
	pace := 0.0
	if distance > 0 {
		pace = (float64(movingTime) / 60) / distance
	}

	var b strings.Builder
	b.WriteString("🏃‍♂️ *Nova Corrida Registrada!*\n\n")
	fmt.Fprintf(&b, "👤 *%s*\n", athleteName)

	if activityName != "" {
		fmt.Fprintf(&b, "📝 %s\n", activityName)
	}

	fmt.Fprintf(&b, "📏 Distância: *%.2f km*\n", distance)
	fmt.Fprintf(&b, "⏱️ Tempo: %s\n", FormatTime(movingTime))
	fmt.Fprintf(&b, "🏃 Pace: %.2f min/km\n\n", pace)
	b.WriteString("Parabéns! 👏🎉")

	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
