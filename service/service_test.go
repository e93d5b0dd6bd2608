package service

import (
	"testing"
	"time"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/stretchr/testify/require"
)

// testClock is the frozen "now" every test service starts from.
var testClock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	svc := New(db)
	svc.Now = func() time.Time { return testClock }
	return svc
}

// advance moves the service clock forward, returning the new now.
func advance(svc *Service, d time.Duration) time.Time {
	now := svc.Now().Add(d)
	svc.Now = func() time.Time { return now }
	return now
}

func seedUser(t *testing.T, svc *Service, username string) *model.User {
	t.Helper()
	user, err := svc.CreateUser(username, username+"@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func seedRating(t *testing.T, svc *Service, username, ratingType, name string) *model.Rating {
	t.Helper()
	rating := &model.Rating{
		Type:        ratingType,
		Name:        name,
		Username:    username,
		LyricsScore: 7,
		BeatScore:   8,
	}
	require.NoError(t, svc.CreateRating(rating))
	require.NotZero(t, rating.Id)
	return rating
}
