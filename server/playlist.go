package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

// Playlists lists the viewer's own playlists or those of followed users.
func (s *Server) Playlists(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	tab := strings.ToLower(strings.TrimSpace(c.DefaultQuery("tab", "my")))
	if tab != "following" {
		tab = "my"
	}

	page, perPage, offset := parsePagination(c)

	var playlists []model.Playlist
	var err error
	if tab == "following" {
		playlists, err = s.svc.PlaylistsByFollowing(user.Id, perPage+1, offset)
	} else {
		playlists, err = s.svc.PlaylistsByCreator(user.Username, perPage+1, offset)
	}
	if err != nil {
		Log.Error("playlists: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	hasNext := len(playlists) > perPage
	if hasNext {
		playlists = playlists[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"playlists":  playlists,
		"active_tab": tab,
		"flashes":    popFlashes(c),
		"pagination": newPaginationContext(c, page, perPage, hasNext, len(playlists)),
	})
}

// PlaylistCreate stores a playlist owned by the viewer.
func (s *Server) PlaylistCreate(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	playlist, err := s.svc.CreatePlaylist(user.Username, c.PostForm("title"), c.PostForm("description"))
	if err != nil {
		Log.Error("create playlist: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if playlist == nil {
		flash(c, "Playlist title is required.", "error")
	} else {
		flash(c, "Playlist created.", "success")
	}
	c.Redirect(http.StatusFound, "/playlists")
}

// loadOwnPlaylist fetches the playlist and enforces that the viewer created
// it, flashing and redirecting otherwise. Returns nil when the caller should
// stop.
func (s *Server) loadOwnPlaylist(c *gin.Context, user *model.User, playlistId uint) *model.Playlist {
	playlist, err := s.svc.PlaylistById(playlistId)
	if err != nil {
		Log.Error("load playlist: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil
	}
	if playlist == nil {
		flash(c, "Playlist not found.", "error")
		c.Redirect(http.StatusFound, "/playlists")
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(playlist.CreatedBy), strings.TrimSpace(user.Username)) {
		flash(c, "You can only edit your own playlists.", "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
		return nil
	}
	return playlist
}

// PlaylistDetail shows a playlist with its songs. The creator additionally
// gets catalog search results for the add-song box.
func (s *Server) PlaylistDetail(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")

	playlist, err := s.svc.PlaylistById(playlistId)
	if err != nil {
		Log.Error("playlist detail: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if playlist == nil {
		flash(c, "Playlist not found.", "error")
		c.Redirect(http.StatusFound, "/playlists")
		return
	}

	songs, err := s.svc.PlaylistSongs(playlistId, 500)
	if err != nil {
		Log.Error("playlist songs: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	canEdit := user != nil &&
		strings.EqualFold(strings.TrimSpace(playlist.CreatedBy), strings.TrimSpace(user.Username))

	favorited := false
	if user != nil {
		favorited, err = s.svc.IsPlaylistFavorited(playlistId, user.Id)
		if err != nil {
			Log.Error("playlist favorited: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	query := strings.TrimSpace(c.Query("q"))
	var searchResults []model.Song
	if canEdit && query != "" {
		searchResults, err = s.svc.SearchSongs(query, 30)
		if err != nil {
			Log.Error("playlist song search: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"playlist":       playlist,
		"songs":          songs,
		"can_edit":       canEdit,
		"is_favorited":   favorited,
		"q":              query,
		"search_results": searchResults,
		"flashes":        popFlashes(c),
	})
}

// PlaylistFavorite toggles the viewer's favorite and logs the matching
// activity.
func (s *Server) PlaylistFavorite(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	playlist, err := s.svc.PlaylistById(playlistId)
	if err != nil {
		Log.Error("playlist favorite: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if playlist == nil {
		flash(c, "Playlist not found.", "error")
		c.Redirect(http.StatusFound, "/playlists")
		return
	}

	favorited, err := s.svc.TogglePlaylistFavorite(playlistId, user.Id)
	if err != nil {
		Log.Error("playlist favorite: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	action := "playlist_unfavorite"
	if favorited {
		action = "playlist_favorite"
	}
	label := strings.TrimSpace(playlist.Title)
	if label == "" {
		label = fmt.Sprintf("Playlist %d", playlistId)
	}
	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      action,
		Category:    "playlists",
		EntityType:  "playlist",
		EntityId:    playlistId,
		EntityLabel: label,
		Url:         fmt.Sprintf("/playlists/%d", playlistId),
	})

	if favorited {
		flash(c, "Playlist added to favorites.", "success")
	} else {
		flash(c, "Playlist removed from favorites.", "info")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
}

// PlaylistAddSong links an existing catalog song onto the viewer's playlist.
func (s *Server) PlaylistAddSong(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if s.loadOwnPlaylist(c, user, playlistId) == nil {
		return
	}

	songId, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("song_key")), 10, 64)
	if err != nil {
		flash(c, "Select a song to add.", "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
		return
	}

	ok, err := s.svc.AddSongToPlaylist(playlistId, user.Username, uint(songId))
	if err != nil {
		Log.Error("add song to playlist: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if ok {
		flash(c, "Song added to playlist.", "success")
	} else {
		flash(c, "Could not add song (missing or already added).", "error")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
}

// PlaylistAddNewSong creates a catalog song from the form and links it onto
// the viewer's playlist.
func (s *Server) PlaylistAddNewSong(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if s.loadOwnPlaylist(c, user, playlistId) == nil {
		return
	}

	songLink := strings.TrimSpace(c.PostForm("song_link"))
	if songLink != "" && !strings.HasPrefix(songLink, "http://") && !strings.HasPrefix(songLink, "https://") {
		flash(c, "Song link must start with http:// or https://", "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
		return
	}

	song, err := s.svc.AddSong(c.PostForm("title"), c.PostForm("artist_name"), "", songLink, user.Username)
	if err != nil {
		Log.Error("add song: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if song == nil {
		flash(c, "Song title is required.", "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
		return
	}

	if _, err := s.svc.AddSongToPlaylist(playlistId, user.Username, song.Id); err != nil {
		Log.Error("add song to playlist: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	flash(c, "Song added to playlist.", "success")
	c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
}

// PlaylistRemoveSong unlinks a song from the viewer's playlist.
func (s *Server) PlaylistRemoveSong(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if s.loadOwnPlaylist(c, user, playlistId) == nil {
		return
	}

	ok, err := s.svc.RemoveSongFromPlaylist(playlistId, paramUint(c, "song"))
	if err != nil {
		Log.Error("remove song from playlist: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if ok {
		flash(c, "Song removed from playlist.", "success")
	} else {
		flash(c, "Could not remove song.", "error")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
}

// PlaylistDelete removes the viewer's playlist and its child rows.
func (s *Server) PlaylistDelete(c *gin.Context) {
	user := s.currentUser(c)
	playlistId := paramUint(c, "key")
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	playlist, err := s.svc.PlaylistById(playlistId)
	if err != nil {
		Log.Error("playlist delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if playlist == nil {
		flash(c, "Playlist not found.", "error")
		c.Redirect(http.StatusFound, "/playlists")
		return
	}
	if !strings.EqualFold(strings.TrimSpace(playlist.CreatedBy), strings.TrimSpace(user.Username)) {
		flash(c, "You can only delete your own playlists.", "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/playlists/%d", playlistId))
		return
	}

	if err := s.svc.DeletePlaylist(playlistId); err != nil {
		Log.Error("playlist delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	flash(c, "Playlist deleted.", "success")
	c.Redirect(http.StatusFound, "/playlists")
}
