package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"strava-whatsapp-bot/internal/models"
	"strava-whatsapp-bot/internal/rankings"
	"strava-whatsapp-bot/internal/strava"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFetcher struct {
	activity *strava.Activity
	err      error
	calls    int
}

func (f *fakeFetcher) GetActivity(ctx context.Context, activityID int64, accessToken string) (*strava.Activity, error) {
	f.calls++
	return f.activity, f.err
}

type fakeNotifier struct {
	err  error
	sent []string
}

func (f *fakeNotifier) Send(ctx context.Context, message, groupID string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type webhookFixture struct {
	db       *gorm.DB
	svc      *WebhookService
	fetcher  *fakeFetcher
	notifier *fakeNotifier
}

func newWebhookFixture(t *testing.T, fetcher *fakeFetcher, notifier *fakeNotifier) *webhookFixture {
	t.Helper()

	db := newTestDB(t)
	svc := NewWebhookService(
		NewAthleteService(db),
		NewActivityService(db),
		rankings.NewCalculator("America/Sao_Paulo"),
		fetcher,
		notifier,
	)
	return &webhookFixture{db: db, svc: svc, fetcher: fetcher, notifier: notifier}
}

func (f *webhookFixture) registerAthlete(t *testing.T, stravaID int64, accessToken string) {
	t.Helper()
	_, err := NewAthleteService(f.db).Upsert(stravaID, "Ana", "", accessToken, "", nil)
	require.NoError(t, err)
}

func (f *webhookFixture) activityCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Activity{}).Count(&count).Error)
	return count
}

func runDetail() *strava.Activity {
	return &strava.Activity{
		ID:          555,
		Name:        "Corrida matinal",
		Distance:    5.0,
		MovingTime:  1500,
		ElapsedTime: 1600,
		Type:        "Run",
		StartDate:   time.Date(2024, 5, 15, 7, 0, 0, 0, time.UTC),
		AthleteID:   100,
	}
}

func createEvent() WebhookEvent {
	return WebhookEvent{
		ObjectType: "activity",
		AspectType: "create",
		ObjectID:   555,
		OwnerID:    100,
	}
}

func TestProcessIgnoresNonActivityObjects(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{}, &fakeNotifier{})

	event := createEvent()
	event.ObjectType = "athlete"

	result := f.svc.Process(context.Background(), event)

	assert.Equal(t, StatusIgnored, result.Status)
	assert.Equal(t, "not an activity", result.Reason)
	assert.Zero(t, f.fetcher.calls)
	assert.Zero(t, f.activityCount(t))
}

func TestProcessIgnoresNonCreateAspects(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{}, &fakeNotifier{})

	event := createEvent()
	event.AspectType = "update"

	result := f.svc.Process(context.Background(), event)

	assert.Equal(t, StatusIgnored, result.Status)
	assert.Equal(t, "not a creation event", result.Reason)
	assert.Zero(t, f.activityCount(t))
}

func TestProcessIgnoresUnregisteredAthlete(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{}, &fakeNotifier{})

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusIgnored, result.Status)
	assert.Equal(t, "athlete not registered", result.Reason)
	assert.Zero(t, f.fetcher.calls, "no gateway call beyond the athlete lookup")
}

func TestProcessIgnoresAthleteWithoutToken(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{}, &fakeNotifier{})
	f.registerAthlete(t, 100, "")

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusIgnored, result.Status)
	assert.Equal(t, "no access token", result.Reason)
	assert.Zero(t, f.fetcher.calls)
}

func TestProcessReportsFetchFailure(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{err: errors.New("expired token")}, &fakeNotifier{})
	f.registerAthlete(t, 100, "token")

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "failed to get activity", result.Reason)
	assert.Zero(t, f.activityCount(t), "nothing persisted on fetch failure")
}

func TestProcessIgnoresNonRuns(t *testing.T) {
	detail := runDetail()
	detail.Type = "Ride"
	f := newWebhookFixture(t, &fakeFetcher{activity: detail}, &fakeNotifier{})
	f.registerAthlete(t, 100, "token")

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusIgnored, result.Status)
	assert.Equal(t, "not a run", result.Reason)
	assert.Zero(t, f.activityCount(t))
}

func TestProcessPersistsAndNotifies(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{activity: runDetail()}, &fakeNotifier{})
	f.registerAthlete(t, 100, "token")

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusProcessed, result.Status)
	assert.Equal(t, int64(555), result.ActivityID)
	assert.Equal(t, int64(1), f.activityCount(t))
	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0], "Nova Corrida Registrada!")

	var stored models.Activity
	require.NoError(t, f.db.Where("strava_activity_id = ?", int64(555)).First(&stored).Error)
	assert.True(t, stored.Notified)
	assert.Equal(t, "Ana", stored.AthleteName)
}

func TestProcessNotificationFailureStillProcessed(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{activity: runDetail()}, &fakeNotifier{err: errors.New("bot offline")})
	f.registerAthlete(t, 100, "token")

	result := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusProcessed, result.Status)
	assert.Equal(t, int64(1), f.activityCount(t), "activity stays recorded")

	var stored models.Activity
	require.NoError(t, f.db.Where("strava_activity_id = ?", int64(555)).First(&stored).Error)
	assert.False(t, stored.Notified)
}

func TestProcessReplayedEvent(t *testing.T) {
	f := newWebhookFixture(t, &fakeFetcher{activity: runDetail()}, &fakeNotifier{})
	f.registerAthlete(t, 100, "token")

	first := f.svc.Process(context.Background(), createEvent())
	require.Equal(t, StatusProcessed, first.Status)

	replay := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusProcessed, replay.Status)
	assert.Equal(t, int64(1), f.activityCount(t), "no duplicate record")
	assert.Len(t, f.notifier.sent, 1, "notification not resent once marked notified")
}

func TestProcessReplayResendsWhenNotYetNotified(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("bot offline")}
	f := newWebhookFixture(t, &fakeFetcher{activity: runDetail()}, notifier)
	f.registerAthlete(t, 100, "token")

	first := f.svc.Process(context.Background(), createEvent())
	require.Equal(t, StatusProcessed, first.Status)
	require.Empty(t, notifier.sent)

	// Bot back online; the replayed delivery retries the notification.
	notifier.err = nil
	replay := f.svc.Process(context.Background(), createEvent())

	assert.Equal(t, StatusProcessed, replay.Status)
	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(1), f.activityCount(t))
}
