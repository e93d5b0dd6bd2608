package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlaylistClampsAndValidates(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")

	playlist, err := svc.CreatePlaylist("alice", "", "whatever")
	require.NoError(t, err)
	assert.Nil(t, playlist)

	longTitle := strings.Repeat("x", 80)
	playlist, err = svc.CreatePlaylist("alice", longTitle, strings.Repeat("y", 80))
	require.NoError(t, err)
	require.NotNil(t, playlist)
	assert.Len(t, playlist.Title, 50)
	assert.Len(t, playlist.Description, 50)
}

func TestAddAndRemovePlaylistSongs(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")
	playlist, err := svc.CreatePlaylist("alice", "Summer", "")
	require.NoError(t, err)
	require.NotNil(t, playlist)

	song, err := svc.AddSong("Power", "Kanye West", "", "https://example.com/power", "alice")
	require.NoError(t, err)
	require.NotNil(t, song)

	ok, err := svc.AddSongToPlaylist(playlist.Id, "alice", song.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	// duplicate link is rejected
	ok, err = svc.AddSongToPlaylist(playlist.Id, "alice", song.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown song is rejected
	ok, err = svc.AddSongToPlaylist(playlist.Id, "alice", 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	songs, err := svc.PlaylistSongs(playlist.Id, 10)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Power", songs[0].Title)

	ok, err = svc.RemoveSongFromPlaylist(playlist.Id, song.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.RemoveSongFromPlaylist(playlist.Id, song.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePlaylistCascades(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	playlist, err := svc.CreatePlaylist("alice", "Summer", "")
	require.NoError(t, err)
	require.NotNil(t, playlist)

	song, err := svc.AddSong("Power", "Kanye West", "", "", "alice")
	require.NoError(t, err)
	_, err = svc.AddSongToPlaylist(playlist.Id, "alice", song.Id)
	require.NoError(t, err)
	_, err = svc.TogglePlaylistFavorite(playlist.Id, alice.Id)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlaylist(playlist.Id))

	got, err := svc.PlaylistById(playlist.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	songs, err := svc.PlaylistSongs(playlist.Id, 10)
	require.NoError(t, err)
	assert.Empty(t, songs)

	favorites, err := svc.FavoritedPlaylists(alice.Id, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestPlaylistsByFollowing(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	seedUser(t, svc, "carol")

	_, err := svc.CreatePlaylist("bob", "Bob Jams", "")
	require.NoError(t, err)
	_, err = svc.CreatePlaylist("carol", "Carol Jams", "")
	require.NoError(t, err)

	_, err = svc.Follow(alice.Id, bob.Id)
	require.NoError(t, err)

	playlists, err := svc.PlaylistsByFollowing(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, "Bob Jams", playlists[0].Title)

	// unfollowing removes bob's playlists from the tab
	_, err = svc.Unfollow(alice.Id, bob.Id)
	require.NoError(t, err)
	playlists, err = svc.PlaylistsByFollowing(alice.Id, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, playlists)
}

func TestSearchSongsAndPlaylists(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")

	_, err := svc.AddSong("Runaway", "Kanye West", "", "", "alice")
	require.NoError(t, err)
	_, err = svc.AddSong("Power", "Kanye West", "", "", "alice")
	require.NoError(t, err)

	songs, err := svc.SearchSongs("runa", 10)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Runaway", songs[0].Title)

	// artist name matches too
	songs, err = svc.SearchSongs("kanye", 10)
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	_, err = svc.CreatePlaylist("alice", "Summer Jams", "")
	require.NoError(t, err)
	playlists, err := svc.SearchPlaylists("summer", 10, 0)
	require.NoError(t, err)
	assert.Len(t, playlists, 1)
}

func TestAddSongClamps(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice")

	song, err := svc.AddSong("", "someone", "", "", "alice")
	require.NoError(t, err)
	assert.Nil(t, song)

	song, err = svc.AddSong(strings.Repeat("t", 80), strings.Repeat("a", 80), "", "", "alice")
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Len(t, song.Title, 50)
	assert.Len(t, song.ArtistName, 50)
}
