package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreatePlaylist stores a playlist for the creator. Title and description are
// clamped to the column width. Returns nil when creator or title is missing.
func (s *Service) CreatePlaylist(createdBy, title, description string) (*model.Playlist, error) {
	createdBy = strings.TrimSpace(createdBy)
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if createdBy == "" || title == "" {
		return nil, nil
	}

	playlist := model.Playlist{
		CreatedBy:   createdBy,
		Title:       clamp(title, 50),
		Description: clamp(description, 50),
		CreatedAt:   s.now(),
	}
	if err := s.DB.Create(&playlist).Error; err != nil {
		return nil, errors.Wrap(err, "insert playlist")
	}
	return &playlist, nil
}

// PlaylistById returns nil when the playlist does not exist.
func (s *Service) PlaylistById(playlistId uint) (*model.Playlist, error) {
	var playlist model.Playlist
	err := s.DB.First(&playlist, playlistId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query playlist")
	}
	return &playlist, nil
}

// PlaylistsByCreator lists a user's playlists, newest first.
func (s *Service) PlaylistsByCreator(createdBy string, limit, offset int) ([]model.Playlist, error) {
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return nil, nil
	}

	var playlists []model.Playlist
	err := s.DB.Where("created_by = ?", createdBy).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&playlists).Error
	return playlists, errors.Wrap(err, "query playlists by creator")
}

// PlaylistsByFollowing lists playlists created by users the viewer actively
// follows, newest first.
func (s *Service) PlaylistsByFollowing(viewerId uint, limit, offset int) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := s.DB.Model(&model.Playlist{}).
		Joins("JOIN users ON users.username = playlists.created_by").
		Where("users.id IN (?)", s.activeFollowedActorIds(viewerId)).
		Order("playlists.id DESC").
		Limit(limit).Offset(offset).
		Find(&playlists).Error
	return playlists, errors.Wrap(err, "query playlists by following")
}

// DeletePlaylist removes a playlist with its song links and favorites in one
// transaction.
func (s *Service) DeletePlaylist(playlistId uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistSong{}).Error; err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Playlist{}, playlistId).Error
	})
	return errors.Wrap(err, "delete playlist")
}

// PlaylistSongs lists the songs on a playlist, most recently added first.
func (s *Service) PlaylistSongs(playlistId uint, limit int) ([]model.Song, error) {
	var songs []model.Song
	err := s.DB.Model(&model.Song{}).
		Joins("JOIN playlist_songs ON playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", playlistId).
		Order("playlist_songs.id DESC").
		Limit(limit).
		Find(&songs).Error
	return songs, errors.Wrap(err, "query playlist songs")
}

// AddSongToPlaylist links an existing song onto a playlist. Returns false
// when the song does not exist or is already on the playlist.
func (s *Service) AddSongToPlaylist(playlistId uint, createdBy string, songId uint) (bool, error) {
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return false, nil
	}

	var songCount int64
	if err := s.DB.Model(&model.Song{}).Where("id = ?", songId).Count(&songCount).Error; err != nil {
		return false, errors.Wrap(err, "check song exists")
	}
	if songCount == 0 {
		return false, nil
	}

	var linkCount int64
	err := s.DB.Model(&model.PlaylistSong{}).
		Where("playlist_id = ? AND song_id = ?", playlistId, songId).
		Count(&linkCount).Error
	if err != nil {
		return false, errors.Wrap(err, "check playlist song exists")
	}
	if linkCount > 0 {
		return false, nil
	}

	link := model.PlaylistSong{
		PlaylistId: playlistId,
		SongId:     songId,
		CreatedBy:  createdBy,
		CreatedAt:  s.now(),
	}
	if err := s.DB.Create(&link).Error; err != nil {
		return false, errors.Wrap(err, "insert playlist song")
	}
	return true, nil
}

// RemoveSongFromPlaylist returns whether a link was removed.
func (s *Service) RemoveSongFromPlaylist(playlistId, songId uint) (bool, error) {
	res := s.DB.Where("playlist_id = ? AND song_id = ?", playlistId, songId).
		Delete(&model.PlaylistSong{})
	return res.RowsAffected > 0, errors.Wrap(res.Error, "delete playlist song")
}

// AddSong stores a song in the shared catalog. Returns nil when the title is
// missing.
func (s *Service) AddSong(title, artistName, artistLink, songLink, uploadedBy string) (*model.Song, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	song := model.Song{
		Title:      clamp(title, 50),
		ArtistName: clamp(strings.TrimSpace(artistName), 50),
		ArtistLink: clamp(strings.TrimSpace(artistLink), 500),
		SongLink:   clamp(strings.TrimSpace(songLink), 500),
		UploadedBy: clamp(strings.TrimSpace(uploadedBy), 50),
		CreatedAt:  s.now(),
	}
	if err := s.DB.Create(&song).Error; err != nil {
		return nil, errors.Wrap(err, "insert song")
	}
	return &song, nil
}

// SearchSongs matches titles and artist names against the token pattern,
// newest first. Empty queries return nothing.
func (s *Service) SearchSongs(query string, limit int) ([]model.Song, error) {
	pattern := utils.SearchPattern(query)
	if pattern == "" {
		return nil, nil
	}

	var songs []model.Song
	err := s.DB.Where("title LIKE ? OR artist_name LIKE ?", pattern, pattern).
		Order("id DESC").
		Limit(limit).
		Find(&songs).Error
	return songs, errors.Wrap(err, "search songs")
}

// SearchPlaylists matches title, description and creator against the token
// pattern, newest first.
func (s *Service) SearchPlaylists(query string, limit, offset int) ([]model.Playlist, error) {
	pattern := utils.SearchPattern(query)
	if pattern == "" {
		return nil, nil
	}

	var playlists []model.Playlist
	err := s.DB.
		Where("title LIKE ? OR description LIKE ? OR created_by LIKE ?", pattern, pattern, pattern).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&playlists).Error
	return playlists, errors.Wrap(err, "search playlists")
}

func clamp(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
