package model

import "time"

/*
Playlist is an ordered collection of songs owned by a user. Ownership is by
username (CreatedBy), matching the denormalized owner on ratings.
*/
type Playlist struct {
	Id          uint   `gorm:"primaryKey"`
	CreatedBy   string `gorm:"size:50;index"`
	Title       string `gorm:"size:50"`
	Description string `gorm:"size:50"`
	CreatedAt   time.Time
}

/*
PlaylistSong links a song into a playlist. The unique index deduplicates a
song per playlist; the Id keeps insertion order for display.
*/
type PlaylistSong struct {
	Id         uint   `gorm:"primaryKey"`
	PlaylistId uint   `gorm:"not null;uniqueIndex:idx_playlist_songs_playlist_song"`
	SongId     uint   `gorm:"not null;uniqueIndex:idx_playlist_songs_playlist_song"`
	CreatedBy  string `gorm:"size:50"`
	CreatedAt  time.Time
}
