package services

import (
	"testing"
	"time"

	"strava-whatsapp-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesAthlete(t *testing.T) {
	svc := NewAthleteService(newTestDB(t))

	expiry := time.Now().Add(6 * time.Hour)
	athlete, err := svc.Upsert(100, "Ana Silva", "+5511999990000", "access", "refresh", &expiry)
	require.NoError(t, err)

	assert.Equal(t, int64(100), athlete.StravaID)
	assert.Equal(t, "Ana Silva", athlete.Name)
	assert.Equal(t, "access", athlete.AccessToken)
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	svc := NewAthleteService(newTestDB(t))

	_, err := svc.Upsert(100, "Ana Silva", "+5511999990000", "old-access", "old-refresh", nil)
	require.NoError(t, err)

	// Token rotation: new values overwrite, empty values do not.
	updated, err := svc.Upsert(100, "Ana S.", "", "new-access", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana S.", updated.Name)
	assert.Equal(t, "+5511999990000", updated.PhoneNumber)
	assert.Equal(t, "new-access", updated.AccessToken)
	assert.Equal(t, "old-refresh", updated.RefreshToken)

	var count int64
	require.NoError(t, svc.db.Model(&models.Athlete{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetByStravaIDAbsent(t *testing.T) {
	svc := NewAthleteService(newTestDB(t))

	athlete, err := svc.GetByStravaID(12345)
	require.NoError(t, err)
	assert.Nil(t, athlete)
}

func TestList(t *testing.T) {
	svc := NewAthleteService(newTestDB(t))

	_, err := svc.Upsert(100, "Ana", "", "", "", nil)
	require.NoError(t, err)
	_, err = svc.Upsert(200, "Bruno", "", "", "", nil)
	require.NoError(t, err)

	athletes, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, athletes, 2)
}
