package service

import (
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingComments(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	require.NoError(t, svc.AddRatingComment(rating.Id, alice.Id, "first"))
	require.NoError(t, svc.AddRatingComment(rating.Id, bob.Id, "second"))
	// blank is dropped silently
	require.NoError(t, svc.AddRatingComment(rating.Id, bob.Id, "   "))

	comments, err := svc.RatingComments(rating.Id)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// oldest first, joined with the author
	assert.Equal(t, "first", comments[0].Message)
	assert.Equal(t, "alice", comments[0].Username)
	assert.Equal(t, "bob", comments[1].Username)
}

func TestRatingCommentEditAndDeleteAuthorOnly(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	require.NoError(t, svc.AddRatingComment(rating.Id, alice.Id, "original"))
	comments, err := svc.RatingComments(rating.Id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentId := comments[0].Id

	changed, err := svc.UpdateRatingComment(commentId, bob.Id, "hijacked")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.UpdateRatingComment(commentId, alice.Id, "edited")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.DeleteRatingComment(commentId, bob.Id)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.DeleteRatingComment(commentId, alice.Id)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestProfileCommentsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")

	require.NoError(t, svc.AddProfileComment(alice.Id, bob.Id, "hey alice"))
	require.NoError(t, svc.AddProfileComment(alice.Id, alice.Id, "hey yourself"))

	comments, err := svc.ProfileComments(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "hey yourself", comments[0].Message)
	assert.Equal(t, "hey alice", comments[1].Message)

	count, err := svc.CountProfileComments(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProfileCommentDeleteAuthorOnly(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")

	require.NoError(t, svc.AddProfileComment(alice.Id, bob.Id, "hey alice"))
	comments, err := svc.ProfileComments(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// the profile owner cannot delete someone else's comment
	changed, err := svc.DeleteProfileComment(comments[0].Id, alice.Id)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.DeleteProfileComment(comments[0].Id, bob.Id)
	require.NoError(t, err)
	assert.True(t, changed)
}
