package model

import "time"

/*
Follow is a directed edge: FollowerId follows FollowedId.

Unfollowing never deletes the row, it sets Unfollowed; the edge history is
preserved and re-following flips the flag back. Only rows with Unfollowed=false
grant feed visibility.
*/
type Follow struct {
	Id         uint `gorm:"primaryKey"`
	FollowedId uint `gorm:"not null;index"`
	FollowerId uint `gorm:"not null;index"`
	Unfollowed bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
