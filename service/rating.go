package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateRating stores a new rating. The owner's username is denormalized onto
// the row so list pages never join users.
func (s *Service) CreateRating(r *model.Rating) error {
	if r == nil {
		return nil
	}
	r.Id = 0
	r.CreatedAt = s.now()
	return errors.Wrap(s.DB.Create(r).Error, "insert rating")
}

// UpdateRating rewrites the editable columns of a rating. Ownership is the
// caller's responsibility.
func (s *Service) UpdateRating(r *model.Rating) error {
	if r == nil || r.Id == 0 {
		return nil
	}
	err := s.DB.Model(&model.Rating{Id: r.Id}).
		Select("type", "name",
			"lyrics_score", "lyrics_reason",
			"beat_score", "beat_reason",
			"flow_score", "flow_reason",
			"melody_score", "melody_reason",
			"cohesive_score", "cohesive_reason",
			"image_url").
		Updates(r).Error
	return errors.Wrap(err, "update rating")
}

// DeleteRating removes a rating and its comments, likes and category votes in
// one transaction, so a failure mid-way leaves no orphaned child rows.
func (s *Service) DeleteRating(ratingId uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rating_id = ?", ratingId).Delete(&model.RatingComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", ratingId).Delete(&model.RatingLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", ratingId).Delete(&model.RatingCategoryVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Rating{}, ratingId).Error
	})
	return errors.Wrap(err, "delete rating")
}

// RatingById returns nil when the rating does not exist.
func (s *Service) RatingById(ratingId uint) (*model.Rating, error) {
	var rating model.Rating
	err := s.DB.First(&rating, ratingId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query rating")
	}
	return &rating, nil
}

// RatingOwner returns the owner's username, or "" for an unknown rating.
func (s *Service) RatingOwner(ratingId uint) (string, error) {
	var rating model.Rating
	err := s.DB.Select("username").First(&rating, ratingId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return rating.Username, errors.Wrap(err, "query rating owner")
}

// Ratings lists ratings ordered by id, newest first unless order is "oldest".
func (s *Service) Ratings(order string, limit, offset int) ([]model.Rating, error) {
	var ratings []model.Rating
	err := s.DB.Order("id " + ratingOrderClause(order)).
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "query ratings")
}

// RatingsByType lists ratings of one type with the same ordering as Ratings.
func (s *Service) RatingsByType(ratingType, order string, limit, offset int) ([]model.Rating, error) {
	ratingType = strings.TrimSpace(ratingType)
	if ratingType == "" {
		return nil, nil
	}

	var ratings []model.Rating
	err := s.DB.Where("type = ?", ratingType).
		Order("id " + ratingOrderClause(order)).
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "query ratings by type")
}

func (s *Service) CountRatings(ratingType string) (int64, error) {
	q := s.DB.Model(&model.Rating{})
	if t := strings.TrimSpace(ratingType); t != "" {
		q = q.Where("type = ?", t)
	}

	var count int64
	err := q.Count(&count).Error
	return count, errors.Wrap(err, "count ratings")
}

// RatingsByUser lists a user's ratings, newest first. The username match is
// case-insensitive like the profile URLs.
func (s *Service) RatingsByUser(username string, limit, offset int) ([]model.Rating, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}

	var ratings []model.Rating
	err := s.DB.Where("LOWER(username) = LOWER(?)", username).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "query ratings by user")
}

func (s *Service) CountRatingsByUser(username string) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Rating{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	return count, errors.Wrap(err, "count ratings by user")
}

// SearchRatings matches name, type or owner against the token pattern built
// by utils.SearchPattern. Empty queries return nothing.
func (s *Service) SearchRatings(query string, limit, offset int) ([]model.Rating, error) {
	pattern := utils.SearchPattern(query)
	if pattern == "" {
		return nil, nil
	}

	var ratings []model.Rating
	err := s.DB.
		Where("name LIKE ? OR type LIKE ? OR username LIKE ?", pattern, pattern, pattern).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "search ratings")
}

func ratingOrderClause(order string) string {
	if strings.ToLower(strings.TrimSpace(order)) == "oldest" {
		return "ASC"
	}
	return "DESC"
}
