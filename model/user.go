package model

import "time"

/*
User is a registered account.

Id: primary key
CreatedAt: time when the account was created
Username: unique display name, also denormalized into Rating.Username
Email: unique contact address, usable as a login identifier
PasswordHash: bcrypt hash of the password
About: free-form profile blurb
ProfilePic: URL path of the uploaded profile picture, empty when unset
Cred: community credibility score
*/
type User struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Username     string `gorm:"size:50;uniqueIndex"`
	Email        string `gorm:"size:100;uniqueIndex"`
	PasswordHash string `gorm:"size:200"`
	FirstName    string `gorm:"size:50"`
	LastName     string `gorm:"size:50"`
	About        string `gorm:"size:500"`
	ProfilePic   string `gorm:"size:255"`
	Cred         int
}
