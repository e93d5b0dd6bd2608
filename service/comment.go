package service

import (
	"strings"
	"time"

	"github.com/DarrenRF/rt/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentView is a comment joined with its author for display.
type CommentView struct {
	Id         uint   `json:"id"`
	Message    string `json:"message"`
	AuthorId   uint   `json:"author_id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
	TimeAgo    string `json:"time_ago"`
}

// commentRow is the raw join row before time-ago rendering.
type commentRow struct {
	Id         uint
	Message    string
	AuthorId   uint
	Username   string
	ProfilePic string
	CreatedAt  time.Time
}

func (s *Service) commentViews(rows []commentRow) []CommentView {
	now := s.now()
	views := make([]CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, CommentView{
			Id:         row.Id,
			Message:    row.Message,
			AuthorId:   row.AuthorId,
			Username:   row.Username,
			ProfilePic: row.ProfilePic,
			TimeAgo:    TimeAgo(row.CreatedAt, now),
		})
	}
	return views
}

// AddRatingComment appends a comment under a rating. Blank messages are
// dropped.
func (s *Service) AddRatingComment(ratingId, authorId uint, message string) error {
	message = strings.TrimSpace(message)
	if ratingId == 0 || authorId == 0 || message == "" {
		return nil
	}
	comment := model.RatingComment{
		RatingId:  ratingId,
		AuthorId:  authorId,
		Message:   message,
		CreatedAt: s.now(),
	}
	return errors.Wrap(s.DB.Create(&comment).Error, "insert rating comment")
}

// RatingCommentById returns nil when the comment does not exist.
func (s *Service) RatingCommentById(commentId uint) (*model.RatingComment, error) {
	var comment model.RatingComment
	err := s.DB.First(&comment, commentId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query rating comment")
	}
	return &comment, nil
}

// UpdateRatingComment edits a comment only when authorId wrote it. Returns
// whether a row changed.
func (s *Service) UpdateRatingComment(commentId, authorId uint, message string) (bool, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return false, nil
	}
	res := s.DB.Model(&model.RatingComment{}).
		Where("id = ? AND author_id = ?", commentId, authorId).
		Update("message", message)
	return res.RowsAffected > 0, errors.Wrap(res.Error, "update rating comment")
}

// DeleteRatingComment deletes a comment only when authorId wrote it. Returns
// whether a row was removed.
func (s *Service) DeleteRatingComment(commentId, authorId uint) (bool, error) {
	res := s.DB.Where("id = ? AND author_id = ?", commentId, authorId).
		Delete(&model.RatingComment{})
	return res.RowsAffected > 0, errors.Wrap(res.Error, "delete rating comment")
}

// RatingComments lists a rating's comments oldest first, joined with their
// authors for display.
func (s *Service) RatingComments(ratingId uint) ([]CommentView, error) {
	var rows []commentRow
	err := s.DB.Model(&model.RatingComment{}).
		Select("rating_comments.id, rating_comments.message, rating_comments.author_id, "+
			"users.username, users.profile_pic, rating_comments.created_at").
		Joins("JOIN users ON users.id = rating_comments.author_id").
		Where("rating_comments.rating_id = ?", ratingId).
		Order("rating_comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query rating comments")
	}
	return s.commentViews(rows), nil
}

// AddProfileComment appends a comment on a user's profile wall.
func (s *Service) AddProfileComment(profileUserId, authorId uint, message string) error {
	message = strings.TrimSpace(message)
	if profileUserId == 0 || authorId == 0 || message == "" {
		return nil
	}
	comment := model.ProfileComment{
		ProfileUserId: profileUserId,
		AuthorId:      authorId,
		Message:       message,
		CreatedAt:     s.now(),
	}
	return errors.Wrap(s.DB.Create(&comment).Error, "insert profile comment")
}

// ProfileCommentById returns nil when the comment does not exist.
func (s *Service) ProfileCommentById(commentId uint) (*model.ProfileComment, error) {
	var comment model.ProfileComment
	err := s.DB.First(&comment, commentId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query profile comment")
	}
	return &comment, nil
}

func (s *Service) UpdateProfileComment(commentId, authorId uint, message string) (bool, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return false, nil
	}
	res := s.DB.Model(&model.ProfileComment{}).
		Where("id = ? AND author_id = ?", commentId, authorId).
		Update("message", message)
	return res.RowsAffected > 0, errors.Wrap(res.Error, "update profile comment")
}

// DeleteProfileComment deletes a wall comment only when authorId wrote it.
func (s *Service) DeleteProfileComment(commentId, authorId uint) (bool, error) {
	res := s.DB.Where("id = ? AND author_id = ?", commentId, authorId).
		Delete(&model.ProfileComment{})
	return res.RowsAffected > 0, errors.Wrap(res.Error, "delete profile comment")
}

// ProfileComments lists a profile's wall comments newest first.
func (s *Service) ProfileComments(profileUserId uint, limit, offset int) ([]CommentView, error) {
	var rows []commentRow
	err := s.DB.Model(&model.ProfileComment{}).
		Select("profile_comments.id, profile_comments.message, profile_comments.author_id, "+
			"users.username, users.profile_pic, profile_comments.created_at").
		Joins("JOIN users ON users.id = profile_comments.author_id").
		Where("profile_comments.profile_user_id = ?", profileUserId).
		Order("profile_comments.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query profile comments")
	}
	return s.commentViews(rows), nil
}

func (s *Service) CountProfileComments(profileUserId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.ProfileComment{}).
		Where("profile_user_id = ?", profileUserId).
		Count(&count).Error
	return count, errors.Wrap(err, "count profile comments")
}
