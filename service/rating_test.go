package service

import (
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRatingCascades(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	require.NoError(t, svc.AddRatingComment(rating.Id, bob.Id, "great pick"))
	_, err := svc.ToggleRatingLike(rating.Id, bob.Id)
	require.NoError(t, err)
	require.NoError(t, svc.SetCategoryVote(rating.Id, bob.Id, "Lyrics", 1))

	require.NoError(t, svc.DeleteRating(rating.Id))

	got, err := svc.RatingById(rating.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	comments, err := svc.RatingComments(rating.Id)
	require.NoError(t, err)
	assert.Empty(t, comments)

	likeCount, err := svc.RatingLikeCount(rating.Id)
	require.NoError(t, err)
	assert.Zero(t, likeCount)

	summaries, err := svc.CategoryVoteSummaries(rating.Id)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestRatingsOrderAndTypeFilter(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	first := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")
	second := seedRating(t, svc, "alice", model.RatingTypeAlbum, "MBDTF")

	recent, err := svc.Ratings("recent", 10, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.Id, recent[0].Id)

	oldest, err := svc.Ratings("oldest", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Id, oldest[0].Id)

	albums, err := svc.RatingsByType(model.RatingTypeAlbum, "recent", 10, 0)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, second.Id, albums[0].Id)

	count, err := svc.CountRatings(model.RatingTypeSong)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRatingsByUserIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	ratings, err := svc.RatingsByUser("ALICE", 10, 0)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)

	count, err := svc.CountRatingsByUser("Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSearchRatings(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	seedRating(t, svc, "alice", model.RatingTypeSong, "Runaway")
	seedRating(t, svc, "alice", model.RatingTypeAlbum, "Graduation")

	found, err := svc.SearchRatings("runa", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Runaway", found[0].Name)

	// owner username matches too
	found, err = svc.SearchRatings("alice", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.SearchRatings("   ", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUpdateRating(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	rating.Name = "POWER (remix)"
	rating.LyricsScore = 10
	rating.LyricsReason = "even sharper"
	require.NoError(t, svc.UpdateRating(rating))

	got, err := svc.RatingById(rating.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "POWER (remix)", got.Name)
	assert.Equal(t, 10, got.LyricsScore)
	assert.Equal(t, "even sharper", got.LyricsReason)
}
