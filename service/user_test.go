package service

import (
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser("alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	got, err := svc.Authenticate("alice", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.Id, got.Id)

	// email works as the login identifier too
	got, err = svc.Authenticate("alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = svc.Authenticate("alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Authenticate("nobody", "hunter22")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateUserRejectsTakenIdentifier(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")

	_, err := svc.CreateUser("ALICE", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrIdentifierTaken)

	_, err = svc.CreateUser("other", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrIdentifierTaken)
}

func TestUpdateProfileInfoCascadesRename(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	seedRating(t, svc, "alice", model.RatingTypeSong, "Power")
	seedRating(t, svc, "alice", model.RatingTypeAlbum, "MBDTF")

	require.NoError(t, svc.UpdateProfileInfo(alice.Id, "alicia", "new about"))

	updated, err := svc.UserById(alice.Id)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, "new about", updated.About)

	ratings, err := svc.RatingsByUser("alicia", 10, 0)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)

	ratings, err = svc.RatingsByUser("alice", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestUsersOrdering(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "zoe")
	seedUser(t, svc, "adam")
	seedUser(t, svc, "mia")

	az, err := svc.Users("az", 10, 0)
	require.NoError(t, err)
	require.Len(t, az, 3)
	assert.Equal(t, "adam", az[0].Username)
	assert.Equal(t, "zoe", az[2].Username)

	newest, err := svc.Users("newest", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "mia", newest[0].Username)

	count, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSearchUsers(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	seedUser(t, svc, "malice")
	seedUser(t, svc, "bob")

	found, err := svc.SearchUsers("lic", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "alice", found[0].Username)
}
