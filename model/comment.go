package model

import "time"

// RatingComment is a threadless comment under a rating. Edit and delete are
// restricted to AuthorId.
type RatingComment struct {
	Id        uint   `gorm:"primaryKey"`
	RatingId  uint   `gorm:"not null;index"`
	AuthorId  uint   `gorm:"not null"`
	Message   string `gorm:"size:500"`
	CreatedAt time.Time
}

// ProfileComment is a comment left on a user's profile page.
type ProfileComment struct {
	Id            uint   `gorm:"primaryKey"`
	ProfileUserId uint   `gorm:"not null;index"`
	AuthorId      uint   `gorm:"not null"`
	Message       string `gorm:"size:500"`
	CreatedAt     time.Time
}
