package model

import "time"

// Song is a catalog entry that playlists reference.
type Song struct {
	Id         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:50;not null"`
	ArtistName string `gorm:"size:50"`
	ArtistLink string `gorm:"size:500"`
	SongLink   string `gorm:"size:500"`
	UploadedBy string `gorm:"size:50"`
	CreatedAt  time.Time
}
