package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bulletinPostTypes are the accepted values of a post's type selector.
var bulletinPostTypes = []string{
	model.BulletinTypePoll,
	model.BulletinTypePraise,
	model.BulletinTypeCritique,
	model.BulletinTypeShowAndTell,
	model.BulletinTypeRatingHighlight,
	model.BulletinTypeRatingChallenge,
}

// CreateBulletinPost stores a short post on the shared board. Unknown types
// fall back to praise. Returns nil when author or message is missing.
func (s *Service) CreateBulletinPost(authorId uint, authorName, title, message, postType string) (*model.BulletinPost, error) {
	authorName = strings.TrimSpace(authorName)
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	postType = strings.ToLower(strings.TrimSpace(postType))
	if authorId == 0 || authorName == "" || message == "" {
		return nil, nil
	}
	if !utils.ContainsString(bulletinPostTypes, postType) {
		postType = model.BulletinTypePraise
	}

	post := model.BulletinPost{
		AuthorId:       authorId,
		AuthorUsername: authorName,
		Title:          clamp(title, 80),
		Message:        clamp(message, 500),
		Type:           postType,
		CreatedAt:      s.now(),
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "insert bulletin post")
	}
	return &post, nil
}

// BulletinFeed lists posts visible to the viewer, newest first. Visibility
// follows the activity feed rule: own posts plus those of actively followed
// users.
func (s *Service) BulletinFeed(viewerId uint, limit, offset int) ([]model.BulletinPost, error) {
	var posts []model.BulletinPost
	err := s.DB.
		Where("author_id = ? OR author_id IN (?)", viewerId, s.activeFollowedActorIds(viewerId)).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, errors.Wrap(err, "query bulletin feed")
}

func (s *Service) CountBulletinFeed(viewerId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.BulletinPost{}).
		Where("author_id = ? OR author_id IN (?)", viewerId, s.activeFollowedActorIds(viewerId)).
		Count(&count).Error
	return count, errors.Wrap(err, "count bulletin feed")
}

// BulletinPostForViewer fetches one post only when the viewer may see it,
// with the same visibility rule as the feed. Returns nil otherwise.
func (s *Service) BulletinPostForViewer(viewerId, postId uint) (*model.BulletinPost, error) {
	var post model.BulletinPost
	err := s.DB.
		Where("id = ?", postId).
		Where("author_id = ? OR author_id IN (?)", viewerId, s.activeFollowedActorIds(viewerId)).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query bulletin post")
	}
	return &post, nil
}

// DeleteBulletinPost removes a post only when the requester authored it.
// Returns whether a row was removed.
func (s *Service) DeleteBulletinPost(postId, authorId uint) (bool, error) {
	res := s.DB.Where("id = ? AND author_id = ?", postId, authorId).
		Delete(&model.BulletinPost{})
	return res.RowsAffected > 0, errors.Wrap(res.Error, "delete bulletin post")
}
