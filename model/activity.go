package model

import (
	"time"

	"gorm.io/datatypes"
)

// Feed categories an activity row can be filed under. "all" is a filter value
// only and is never stored.
const (
	ActivityCategoryAll     = "all"
	ActivityCategoryUsers   = "users"
	ActivityCategoryArtists = "artists"
	ActivityCategoryAlbums  = "albums"
	ActivityCategorySongs   = "songs"
	ActivityCategoryGenres  = "genres"
)

/*
Activity is one append-only event in the shared action log.

Id: primary key, monotonic; feed ordering uses it as the time proxy
ActorId, ActorUsername: who did it (username denormalized for display)
Action: event kind, e.g. "rating_create", "follow", "playlist_favorite"
Category: feed tab this event belongs to (users/artists/albums/songs/genres)
EntityType, EntityId, EntityLabel: what it was done to
Url: in-app link target for the rendered feed line
Metadata: free-form JSON blob, e.g. {"detail": "Lyrics"} for category votes

Rows are never updated or deleted; per-viewer suppression happens through
ActivityDismissal and ActivityClear.
*/
type Activity struct {
	Id            uint   `gorm:"primaryKey"`
	ActorId       uint   `gorm:"not null;index"`
	ActorUsername string `gorm:"size:50;not null"`
	Action        string `gorm:"size:50;not null"`
	Category      string `gorm:"size:20;index"`
	EntityType    string `gorm:"size:20"`
	EntityId      uint
	EntityLabel   string `gorm:"size:200"`
	Url           string `gorm:"size:500"`
	CreatedAt     time.Time
	Metadata      datatypes.JSON
}

// ActivityDismissal hides a single activity row from one viewer's feed.
type ActivityDismissal struct {
	UserId      uint `gorm:"primaryKey;autoIncrement:false"`
	ActivityId  uint `gorm:"primaryKey;autoIncrement:false"`
	DismissedAt time.Time
}

/*
ActivityClear is a per-viewer, per-category high-water mark: events created at
or before ClearedAt are hidden from that viewer. Category "all" applies to
every tab; a feed query takes the newer of the "all" mark and the tab's own
mark.
*/
type ActivityClear struct {
	UserId    uint   `gorm:"primaryKey;autoIncrement:false"`
	Category  string `gorm:"primaryKey;size:20"`
	ClearedAt time.Time
}
