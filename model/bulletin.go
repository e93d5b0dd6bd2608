package model

import "time"

// Bulletin post kinds accepted from the post form. Anything else is coerced to
// BulletinTypePraise.
const (
	BulletinTypePoll            = "poll"
	BulletinTypePraise          = "praise"
	BulletinTypeCritique        = "critique"
	BulletinTypeShowAndTell     = "show & tell"
	BulletinTypeRatingHighlight = "rating highlight"
	BulletinTypeRatingChallenge = "rating challenge"
)

/*
BulletinPost is a short announcement visible to its author and the author's
active followers.
*/
type BulletinPost struct {
	Id             uint   `gorm:"primaryKey"`
	AuthorId       uint   `gorm:"not null;index"`
	AuthorUsername string `gorm:"size:50;not null"`
	Title          string `gorm:"size:80"`
	Message        string `gorm:"size:500;not null"`
	Type           string `gorm:"size:50"`
	CreatedAt      time.Time
}
