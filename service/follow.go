package service

import (
	"github.com/DarrenRF/rt/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Follow makes follower follow followed. An earlier soft-unfollowed edge is
// revived instead of inserting a second row. Returns true when the call
// changed state from not-following to following.
func (s *Service) Follow(followerId, followedId uint) (bool, error) {
	if followerId == 0 || followedId == 0 || followerId == followedId {
		return false, nil
	}

	var edge model.Follow
	err := s.DB.Where("follower_id = ? AND followed_id = ?", followerId, followedId).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge = model.Follow{
			FollowerId: followerId,
			FollowedId: followedId,
			CreatedAt:  s.now(),
			UpdatedAt:  s.now(),
		}
		return true, errors.Wrap(s.DB.Create(&edge).Error, "insert follow")
	}
	if err != nil {
		return false, errors.Wrap(err, "query follow")
	}

	if !edge.Unfollowed {
		return false, nil
	}
	err = s.DB.Model(&edge).
		Updates(map[string]interface{}{"unfollowed": false, "updated_at": s.now()}).Error
	return true, errors.Wrap(err, "revive follow")
}

// Unfollow soft-deletes the edge, keeping the row so the follow history
// survives. Returns true when the call changed state.
func (s *Service) Unfollow(followerId, followedId uint) (bool, error) {
	var edge model.Follow
	err := s.DB.Where("follower_id = ? AND followed_id = ? AND unfollowed = ?",
		followerId, followedId, false).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "query follow")
	}

	err = s.DB.Model(&edge).
		Updates(map[string]interface{}{"unfollowed": true, "updated_at": s.now()}).Error
	return true, errors.Wrap(err, "unfollow")
}

func (s *Service) IsFollowing(followerId, followedId uint) (bool, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ? AND unfollowed = ?",
			followerId, followedId, false).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count follow")
}

// Followers returns the users actively following userId, newest edge first.
func (s *Service) Followers(userId uint, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := s.DB.Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ? AND follows.unfollowed = ?", userId, false).
		Order("follows.updated_at DESC, users.id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, errors.Wrap(err, "query followers")
}

// Following returns the users userId actively follows, newest edge first.
func (s *Service) Following(userId uint, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := s.DB.Model(&model.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ? AND follows.unfollowed = ?", userId, false).
		Order("follows.updated_at DESC, users.id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, errors.Wrap(err, "query following")
}

func (s *Service) FollowerCount(userId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("followed_id = ? AND unfollowed = ?", userId, false).
		Count(&count).Error
	return count, errors.Wrap(err, "count followers")
}

func (s *Service) FollowingCount(userId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND unfollowed = ?", userId, false).
		Count(&count).Error
	return count, errors.Wrap(err, "count following")
}
