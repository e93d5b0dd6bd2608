package model

import "time"

/*
RatingCategoryVote is a per-user up/down signal on one category of a rating.

RatingId, UserId, Category: composite primary key
Vote: +1 or -1. The "no vote" state is represented by row deletion, never by 0.
UpdatedAt: last time the vote was set
*/
type RatingCategoryVote struct {
	RatingId  uint   `gorm:"primaryKey;autoIncrement:false"`
	UserId    uint   `gorm:"primaryKey;autoIncrement:false"`
	Category  string `gorm:"primaryKey;size:20"`
	Vote      int
	UpdatedAt time.Time
}

/*
RatingLike marks a rating as favorited by a user. Row existence is the liked
state; toggling deletes or inserts.
*/
type RatingLike struct {
	Id        uint `gorm:"primaryKey"`
	RatingId  uint `gorm:"not null;uniqueIndex:idx_rating_likes_rating_user"`
	UserId    uint `gorm:"not null;uniqueIndex:idx_rating_likes_rating_user"`
	CreatedAt time.Time
}

// PlaylistLike is the playlist counterpart of RatingLike.
type PlaylistLike struct {
	Id         uint `gorm:"primaryKey"`
	PlaylistId uint `gorm:"not null;uniqueIndex:idx_playlist_likes_playlist_user"`
	UserId     uint `gorm:"not null;uniqueIndex:idx_playlist_likes_playlist_user"`
	CreatedAt  time.Time
}
