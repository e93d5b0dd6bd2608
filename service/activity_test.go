package service

import (
	"testing"
	"time"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordTestActivity(t *testing.T, svc *Service, actor *model.User, action, category string) {
	t.Helper()
	require.NoError(t, svc.RecordActivity(ActivityInput{
		ActorId:   actor.Id,
		ActorName: actor.Username,
		Action:    action,
		Category:  category,
	}))
}

func TestActivityFeedVisibility(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	carol := seedUser(t, svc, "carol")

	_, err := svc.Follow(alice.Id, bob.Id)
	require.NoError(t, err)

	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategorySongs)
	recordTestActivity(t, svc, bob, "rating_create", model.ActivityCategorySongs)
	recordTestActivity(t, svc, carol, "rating_create", model.ActivityCategorySongs)

	feed, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	// newest first, carol invisible
	assert.Equal(t, bob.Id, feed[0].ActorId)
	assert.Equal(t, alice.Id, feed[1].ActorId)

	count, err := svc.CountActivityFeed(alice.Id, model.ActivityCategoryAll)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestActivityFeedUnfollowRevokesVisibility(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")

	_, err := svc.Follow(alice.Id, bob.Id)
	require.NoError(t, err)
	recordTestActivity(t, svc, bob, "rating_create", model.ActivityCategoryAlbums)

	feed, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	_, err = svc.Unfollow(alice.Id, bob.Id)
	require.NoError(t, err)

	feed, err = svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestActivityFeedCategoryTabs(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategorySongs)
	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategoryAlbums)

	songs, err := svc.ActivityFeed(alice.Id, model.ActivityCategorySongs, 50, 0)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.ActivityCategorySongs, songs[0].Category)

	all, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDismissActivityIsPerViewerAndIdempotent(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	_, err := svc.Follow(bob.Id, alice.Id)
	require.NoError(t, err)

	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategorySongs)
	feed, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, svc.DismissActivity(alice.Id, feed[0].Id))
	require.NoError(t, svc.DismissActivity(alice.Id, feed[0].Id))

	feed, err = svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// bob follows alice and still sees the row
	bobFeed, err := svc.ActivityFeed(bob.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	assert.Len(t, bobFeed, 1)
}

func TestClearActivityHighWaterMarks(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategorySongs)
	recordTestActivity(t, svc, alice, "rating_create", model.ActivityCategoryAlbums)

	advance(svc, time.Minute)
	require.NoError(t, svc.ClearActivity(alice.Id, model.ActivityCategorySongs))

	songs, err := svc.ActivityFeed(alice.Id, model.ActivityCategorySongs, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, songs)

	albums, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAlbums, 50, 0)
	require.NoError(t, err)
	assert.Len(t, albums, 1)

	// events after the mark reappear in the cleared tab
	advance(svc, time.Minute)
	recordTestActivity(t, svc, alice, "rating_edit", model.ActivityCategorySongs)
	songs, err = svc.ActivityFeed(alice.Id, model.ActivityCategorySongs, 50, 0)
	require.NoError(t, err)
	assert.Len(t, songs, 1)

	// clearing "all" hides every tab at once
	advance(svc, time.Minute)
	require.NoError(t, svc.ClearActivity(alice.Id, model.ActivityCategoryAll))
	all, err := svc.ActivityFeed(alice.Id, model.ActivityCategoryAll, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecordActivityViewDedup(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	in := ActivityInput{
		ActorId:    alice.Id,
		ActorName:  alice.Username,
		Action:     "rating_view",
		Category:   model.ActivityCategorySongs,
		EntityType: "rating",
		EntityId:   42,
	}
	require.NoError(t, svc.RecordActivity(in))
	require.NoError(t, svc.RecordActivity(in))

	count, err := svc.CountActivityFeed(alice.Id, model.ActivityCategoryAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordActivityDropsAnonymous(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.RecordActivity(ActivityInput{Action: "rating_create"}))

	var count int64
	require.NoError(t, svc.DB.Model(&model.Activity{}).Count(&count).Error)
	assert.Zero(t, count)
}
