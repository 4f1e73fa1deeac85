package services

import (
	"context"
	"log"

	"strava-whatsapp-bot/internal/models"
	"strava-whatsapp-bot/internal/rankings"
	"strava-whatsapp-bot/internal/strava"
)

// WebhookEvent is the validated shape of a Strava push notification.
type WebhookEvent struct {
	ObjectType string `json:"object_type"`
	AspectType string `json:"aspect_type"`
	ObjectID   int64  `json:"object_id"`
	OwnerID    int64  `json:"owner_id"`
}

const (
	StatusIgnored   = "ignored"
	StatusError     = "error"
	StatusProcessed = "processed"
)

// ProcessResult is the terminal outcome of one webhook delivery. The handler
// maps it straight to the response body; the pipeline never surfaces an
// error to the caller.
type ProcessResult struct {
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message,omitempty"`
	ActivityID int64  `json:"activity_id,omitempty"`
}

func ignored(reason string) ProcessResult {
	return ProcessResult{Status: StatusIgnored, Reason: reason}
}

// ActivityFetcher is the slice of the Strava client the pipeline needs.
type ActivityFetcher interface {
	GetActivity(ctx context.Context, activityID int64, accessToken string) (*strava.Activity, error)
}

// Notifier is the slice of the WhatsApp client the pipeline needs.
type Notifier interface {
	Send(ctx context.Context, message, groupID string) error
}

// WebhookService runs the event pipeline: validate, resolve athlete, fetch
// detail, filter, persist, notify.
type WebhookService struct {
	athletes   *AthleteService
	activities *ActivityService
	calc       *rankings.Calculator
	fetcher    ActivityFetcher
	notifier   Notifier
}

func NewWebhookService(
	athletes *AthleteService,
	activities *ActivityService,
	calc *rankings.Calculator,
	fetcher ActivityFetcher,
	notifier Notifier,
) *WebhookService {
	return &WebhookService{
		athletes:   athletes,
		activities: activities,
		calc:       calc,
		fetcher:    fetcher,
		notifier:   notifier,
	}
}

// Process handles one delivery end to end. Deliveries are replay-safe:
// persistence is idempotent and the notification is only resent while the
// stored record is not yet marked notified.
func (s *WebhookService) Process(ctx context.Context, event WebhookEvent) ProcessResult {
	if event.ObjectType != "activity" {
		return ignored("not an activity")
	}
	if event.AspectType != "create" {
		return ignored("not a creation event")
	}

	log.Printf("new activity detected: id=%d athlete=%d", event.ObjectID, event.OwnerID)

	athlete, err := s.athletes.GetByStravaID(event.OwnerID)
	if err != nil {
		return ProcessResult{Status: StatusError, Message: err.Error()}
	}
	if athlete == nil {
		log.Printf("athlete %d not found in database", event.OwnerID)
		return ignored("athlete not registered")
	}
	if athlete.AccessToken == "" {
		log.Printf("athlete %d has no access token", event.OwnerID)
		return ignored("no access token")
	}

	detail, err := s.fetcher.GetActivity(ctx, event.ObjectID, athlete.AccessToken)
	if err != nil || detail == nil {
		if err != nil {
			log.Printf("failed to get activity %d: %v", event.ObjectID, err)
		}
		return ProcessResult{Status: StatusError, Reason: "failed to get activity"}
	}

	if detail.Type != models.ActivityTypeRun {
		log.Printf("activity %d is not a run, ignoring", event.ObjectID)
		return ignored("not a run")
	}

	stored, err := s.activities.Add(models.Activity{
		StravaActivityID: detail.ID,
		AthleteStravaID:  event.OwnerID,
		AthleteName:      athlete.Name,
		Name:             detail.Name,
		Distance:         detail.Distance,
		MovingTime:       detail.MovingTime,
		ElapsedTime:      detail.ElapsedTime,
		ActivityType:     detail.Type,
		StartDate:        detail.StartDate,
	})
	if err != nil {
		return ProcessResult{Status: StatusError, Message: err.Error()}
	}

	// A replayed delivery whose notification already went out stays quiet.
	if !stored.Notified {
		message := s.calc.ActivityNotification(athlete.Name, detail.Distance, detail.MovingTime, detail.Name)
		if err := s.notifier.Send(ctx, message, ""); err != nil {
			log.Printf("failed to send notification for activity %d: %v", event.ObjectID, err)
		} else {
			if err := s.activities.MarkNotified(event.ObjectID); err != nil {
				log.Printf("failed to mark activity %d notified: %v", event.ObjectID, err)
			}
			log.Printf("notification sent for activity %d", event.ObjectID)
		}
	}

	return ProcessResult{Status: StatusProcessed, ActivityID: event.ObjectID}
}
