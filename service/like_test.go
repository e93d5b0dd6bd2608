package service

import (
	"testing"
	"time"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRatingLike(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	rating := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")

	liked, err := svc.ToggleRatingLike(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := svc.IsRatingLiked(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, isLiked)

	count, err := svc.RatingLikeCount(rating.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// second toggle restores the original state
	liked, err = svc.ToggleRatingLike(rating.Id, alice.Id)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = svc.RatingLikeCount(rating.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikedRatingsOrder(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	first := seedRating(t, svc, "alice", model.RatingTypeSong, "Power")
	second := seedRating(t, svc, "alice", model.RatingTypeSong, "Monster")

	_, err := svc.ToggleRatingLike(first.Id, alice.Id)
	require.NoError(t, err)
	advance(svc, time.Minute)
	_, err = svc.ToggleRatingLike(second.Id, alice.Id)
	require.NoError(t, err)

	liked, err := svc.LikedRatings(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	assert.Equal(t, second.Id, liked[0].Id)
	assert.Equal(t, first.Id, liked[1].Id)
}

func TestTogglePlaylistFavorite(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	playlist, err := svc.CreatePlaylist("alice", "Summer", "road trip songs")
	require.NoError(t, err)
	require.NotNil(t, playlist)

	favorited, err := svc.TogglePlaylistFavorite(playlist.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, favorited)

	playlists, err := svc.FavoritedPlaylists(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, playlist.Id, playlists[0].Id)

	favorited, err = svc.TogglePlaylistFavorite(playlist.Id, alice.Id)
	require.NoError(t, err)
	assert.False(t, favorited)

	playlists, err = svc.FavoritedPlaylists(alice.Id, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, playlists)
}
