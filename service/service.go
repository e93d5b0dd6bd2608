// Package service holds the business rules over the relational store: feed
// composition and visibility, tri-state category voting, like toggles, the
// alert mailbox, follows, ratings, playlists and the bulletin board. Handlers
// stay thin; everything that must be true regardless of transport lives here.
package service

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB

	// Now is the clock used for every stored timestamp. Tests override it to
	// pin feed clear marks and time-ago output.
	Now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) now() time.Time {
	return s.Now().UTC()
}
