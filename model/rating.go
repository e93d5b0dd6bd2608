package model

import "time"

// Rating types. Stored as-is in Rating.Type.
const (
	RatingTypeSong   = "Song"
	RatingTypeAlbum  = "Album"
	RatingTypeArtist = "Artist"
)

// Scored categories of a rating. Category vote rows reference these names.
var RatingCategories = []string{"Lyrics", "Beat", "Flow", "Melody", "Cohesive"}

/*
Rating is a multi-category review of a song, album or artist.

Id: primary key, also the feed ordering proxy (monotonic)
Type: one of RatingTypeSong/Album/Artist
Name: title of the rated work
Username: owner's username, denormalized on purpose; renames cascade here
ImageUrl: optional uploaded artwork URL

Each category carries a 1-10 score and a free-text reason.
*/
type Rating struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Type           string `gorm:"size:50"`
	Name           string `gorm:"size:50"`
	LyricsScore    int
	LyricsReason   string `gorm:"size:500"`
	BeatScore      int
	BeatReason     string `gorm:"size:500"`
	FlowScore      int
	FlowReason     string `gorm:"size:500"`
	MelodyScore    int
	MelodyReason   string `gorm:"size:500"`
	CohesiveScore  int
	CohesiveReason string `gorm:"size:500"`
	Username       string `gorm:"size:50;index"`
	ImageUrl       string `gorm:"size:500"`
}
