package model

import "time"

/*
Alert is a personal mailbox entry: "X followed you", "X commented on your
rating". All operations on alerts are scoped to UserId; acting on another
user's alert is a no-op.
*/
type Alert struct {
	Id        uint   `gorm:"primaryKey"`
	UserId    uint   `gorm:"not null;index"`
	Message   string `gorm:"size:500;not null"`
	Url       string `gorm:"size:500"`
	CreatedAt time.Time
	IsRead    bool
}
