package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// CategoryVoteSummary aggregates one rating category's votes.
type CategoryVoteSummary struct {
	Score int `json:"score"`
	Up    int `json:"up"`
	Down  int `json:"down"`
}

// SetCategoryVote stores a user's vote on one rating category. A vote of 0
// deletes the row, +1/-1 upserts it. Other values and unknown categories are
// ignored.
func (s *Service) SetCategoryVote(ratingId, userId uint, category string, vote int) error {
	category = strings.TrimSpace(category)
	if category == "" || !utils.ContainsString(model.RatingCategories, category) {
		return nil
	}
	if vote < -1 || vote > 1 {
		return nil
	}

	if vote == 0 {
		err := s.DB.
			Where("rating_id = ? AND user_id = ? AND category = ?", ratingId, userId, category).
			Delete(&model.RatingCategoryVote{}).Error
		return errors.Wrap(err, "delete category vote")
	}

	row := model.RatingCategoryVote{
		RatingId:  ratingId,
		UserId:    userId,
		Category:  category,
		Vote:      vote,
		UpdatedAt: s.now(),
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rating_id"}, {Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote", "updated_at"}),
	}).Create(&row).Error
	return errors.Wrap(err, "upsert category vote")
}

// ApplyCategoryVote applies the toggle cycle to a user's current vote and
// stores the result: voting fresh sets the direction, repeating the same
// direction removes the vote, and voting the opposite direction also removes
// it rather than flipping. Returns the stored vote.
func (s *Service) ApplyCategoryVote(ratingId, userId uint, category string, direction int) (int, error) {
	current, err := s.UserCategoryVotes(ratingId, userId)
	if err != nil {
		return 0, err
	}

	newVote := 0
	if current[category] == 0 {
		newVote = direction
	}

	if err := s.SetCategoryVote(ratingId, userId, category, newVote); err != nil {
		return 0, err
	}
	return newVote, nil
}

// CategoryVoteSummaries returns per-category score and up/down counts for a
// rating. Categories with no votes are absent from the map.
func (s *Service) CategoryVoteSummaries(ratingId uint) (map[string]CategoryVoteSummary, error) {
	var rows []model.RatingCategoryVote
	err := s.DB.Where("rating_id = ?", ratingId).Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query category votes")
	}

	out := map[string]CategoryVoteSummary{}
	for _, row := range rows {
		summary := out[row.Category]
		summary.Score += row.Vote
		if row.Vote > 0 {
			summary.Up++
		} else if row.Vote < 0 {
			summary.Down++
		}
		out[row.Category] = summary
	}
	return out, nil
}

// UserCategoryVotes returns the viewer's own votes on a rating, keyed by
// category.
func (s *Service) UserCategoryVotes(ratingId, userId uint) (map[string]int, error) {
	var rows []model.RatingCategoryVote
	err := s.DB.Where("rating_id = ? AND user_id = ?", ratingId, userId).Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query user category votes")
	}

	out := map[string]int{}
	for _, row := range rows {
		out[row.Category] = row.Vote
	}
	return out, nil
}

// UpvotedRatings returns ratings the user upvoted at least one category of,
// most recently voted first.
func (s *Service) UpvotedRatings(userId uint, limit, offset int) ([]model.Rating, error) {
	var ratings []model.Rating
	err := s.DB.Model(&model.Rating{}).
		Joins("JOIN rating_category_votes ON rating_category_votes.rating_id = ratings.id").
		Where("rating_category_votes.user_id = ? AND rating_category_votes.vote = ?", userId, 1).
		Group("ratings.id").
		Order("MAX(rating_category_votes.updated_at) DESC, ratings.id DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, errors.Wrap(err, "query upvoted ratings")
}

// UpvotedCategories maps each given rating id to the categories the user
// upvoted on it. Ratings without upvotes are absent.
func (s *Service) UpvotedCategories(userId uint, ratingIds []uint) (map[uint][]string, error) {
	if len(ratingIds) == 0 {
		return map[uint][]string{}, nil
	}

	var rows []model.RatingCategoryVote
	err := s.DB.
		Where("user_id = ? AND vote = ? AND rating_id IN ?", userId, 1, ratingIds).
		Order("updated_at DESC, category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query upvoted categories")
	}

	out := map[uint][]string{}
	for _, row := range rows {
		if !utils.ContainsString(out[row.RatingId], row.Category) {
			out[row.RatingId] = append(out[row.RatingId], row.Category)
		}
	}
	return out, nil
}
