package service

import (
	"github.com/DarrenRF/rt/model"
	"github.com/pkg/errors"
)

// ToggleRatingLike flips whether the user likes a rating and returns the new
// state. Liked is defined by row existence, so the toggle is a delete when a
// row exists and an insert otherwise.
func (s *Service) ToggleRatingLike(ratingId, userId uint) (bool, error) {
	liked, err := s.IsRatingLiked(ratingId, userId)
	if err != nil {
		return false, err
	}

	if liked {
		err := s.DB.Where("rating_id = ? AND user_id = ?", ratingId, userId).
			Delete(&model.RatingLike{}).Error
		return false, errors.Wrap(err, "delete rating like")
	}

	like := model.RatingLike{RatingId: ratingId, UserId: userId, CreatedAt: s.now()}
	return true, errors.Wrap(s.DB.Create(&like).Error, "insert rating like")
}

func (s *Service) IsRatingLiked(ratingId, userId uint) (bool, error) {
	var count int64
	err := s.DB.Model(&model.RatingLike{}).
		Where("rating_id = ? AND user_id = ?", ratingId, userId).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count rating like")
}

func (s *Service) RatingLikeCount(ratingId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.RatingLike{}).
		Where("rating_id = ?", ratingId).
		Count(&count).Error
	return count, errors.Wrap(err, "count rating likes")
}

// LikedRatings returns the ratings a user liked, most recently liked first.
func (s *Service) LikedRatings(userId uint, limit, offset int) ([]model.Rating, error) {
	var ratings []model.Rating
	err := s.DB.Model(&model.Rating{}).
		Joins("JOIN rating_likes ON rating_likes.rating_id = ratings.id").
		Where("rating_likes.user_id = ?", userId).
		Order("rating_likes.created_at DESC, ratings.id DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "query liked ratings")
}

// TogglePlaylistFavorite flips whether the user favorited a playlist and
// returns the new state.
func (s *Service) TogglePlaylistFavorite(playlistId, userId uint) (bool, error) {
	favorited, err := s.IsPlaylistFavorited(playlistId, userId)
	if err != nil {
		return false, err
	}

	if favorited {
		err := s.DB.Where("playlist_id = ? AND user_id = ?", playlistId, userId).
			Delete(&model.PlaylistLike{}).Error
		return false, errors.Wrap(err, "delete playlist favorite")
	}

	like := model.PlaylistLike{PlaylistId: playlistId, UserId: userId, CreatedAt: s.now()}
	return true, errors.Wrap(s.DB.Create(&like).Error, "insert playlist favorite")
}

func (s *Service) IsPlaylistFavorited(playlistId, userId uint) (bool, error) {
	var count int64
	err := s.DB.Model(&model.PlaylistLike{}).
		Where("playlist_id = ? AND user_id = ?", playlistId, userId).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count playlist favorite")
}

// FavoritedPlaylists returns the playlists a user favorited, most recently
// favorited first.
func (s *Service) FavoritedPlaylists(userId uint, limit, offset int) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := s.DB.Model(&model.Playlist{}).
		Joins("JOIN playlist_likes ON playlist_likes.playlist_id = playlists.id").
		Where("playlist_likes.user_id = ?", userId).
		Order("playlist_likes.created_at DESC, playlists.id DESC").
		Limit(limit).Offset(offset).
		Find(&playlists).Error
	return playlists, errors.Wrap(err, "query favorited playlists")
}
