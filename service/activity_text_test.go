package service

import (
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestActivityText(t *testing.T) {
	cases := []struct {
		name     string
		activity model.Activity
		want     string
	}{
		{
			"follow",
			model.Activity{ActorUsername: "alice", Action: "follow", EntityLabel: "@bob"},
			"@alice followed @bob",
		},
		{
			"follow without label",
			model.Activity{ActorUsername: "alice", Action: "follow"},
			"@alice followed a user",
		},
		{
			"rating create",
			model.Activity{ActorUsername: "alice", Action: "rating_create", EntityLabel: "Song: Power"},
			"@alice created a rating: Song: Power",
		},
		{
			"rating like without label",
			model.Activity{ActorUsername: "alice", Action: "rating_like"},
			"@alice liked a rating",
		},
		{
			"category upvote with detail",
			model.Activity{
				ActorUsername: "alice",
				Action:        "rating_category_upvote",
				EntityLabel:   "Song: Power",
				Metadata:      datatypes.JSON(`{"detail":"Lyrics"}`),
			},
			"@alice upvoted Lyrics on a rating: Song: Power",
		},
		{
			"category unvote without detail",
			model.Activity{ActorUsername: "alice", Action: "rating_category_unvote"},
			"@alice removed their vote on a category for a rating",
		},
		{
			"bulletin post",
			model.Activity{ActorUsername: "alice", Action: "bulletin_post"},
			"@alice posted to the bulletin",
		},
		{
			"profile update",
			model.Activity{ActorUsername: "alice", Action: "profile_update"},
			"@alice updated their profile",
		},
		{
			"unknown action falls back",
			model.Activity{ActorUsername: "alice", Action: "mystery_action", EntityLabel: "thing"},
			"@alice: mystery_action thing",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ActivityText(&tc.activity))
		})
	}
}
