package service

import (
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCategoryVoteCycle(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Runaway")

	// fresh vote sets the direction
	vote, err := svc.ApplyCategoryVote(rating.Id, alice.Id, "Lyrics", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, vote)

	// repeating the same direction removes the vote
	vote, err = svc.ApplyCategoryVote(rating.Id, alice.Id, "Lyrics", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, vote)

	votes, err := svc.UserCategoryVotes(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, votes)

	// opposite direction on an existing vote also removes, never flips
	vote, err = svc.ApplyCategoryVote(rating.Id, alice.Id, "Beat", -1)
	require.NoError(t, err)
	assert.Equal(t, -1, vote)

	vote, err = svc.ApplyCategoryVote(rating.Id, alice.Id, "Beat", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, vote)

	votes, err = svc.UserCategoryVotes(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestSetCategoryVoteIgnoresInvalid(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Runaway")

	require.NoError(t, svc.SetCategoryVote(rating.Id, alice.Id, "NotACategory", 1))
	require.NoError(t, svc.SetCategoryVote(rating.Id, alice.Id, "Lyrics", 5))

	votes, err := svc.UserCategoryVotes(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestCategoryVoteSummaries(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	carol := seedUser(t, svc, "carol")
	rating := seedRating(t, svc, "alice", model.RatingTypeAlbum, "MBDTF")

	require.NoError(t, svc.SetCategoryVote(rating.Id, alice.Id, "Lyrics", 1))
	require.NoError(t, svc.SetCategoryVote(rating.Id, bob.Id, "Lyrics", 1))
	require.NoError(t, svc.SetCategoryVote(rating.Id, carol.Id, "Lyrics", -1))
	require.NoError(t, svc.SetCategoryVote(rating.Id, bob.Id, "Flow", -1))

	summaries, err := svc.CategoryVoteSummaries(rating.Id)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, CategoryVoteSummary{Score: 1, Up: 2, Down: 1}, summaries["Lyrics"])
	assert.Equal(t, CategoryVoteSummary{Score: -1, Up: 0, Down: 1}, summaries["Flow"])
}

func TestUpvotedRatingsAndCategories(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	first := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")
	second := seedRating(t, svc, "alice", model.RatingTypeSong, "Monster")

	require.NoError(t, svc.SetCategoryVote(first.Id, alice.Id, "Lyrics", 1))
	require.NoError(t, svc.SetCategoryVote(first.Id, alice.Id, "Beat", 1))
	require.NoError(t, svc.SetCategoryVote(second.Id, alice.Id, "Flow", -1))

	ratings, err := svc.UpvotedRatings(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, first.Id, ratings[0].Id)

	categories, err := svc.UpvotedCategories(alice.Id, []uint{first.Id, second.Id})
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.ElementsMatch(t, []string{"Lyrics", "Beat"}, categories[first.Id])
}
