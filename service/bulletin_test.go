package service

import (
	"strings"
	"testing"

	"github.com/DarrenRF/rt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBulletinPostNormalizes(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	post, err := svc.CreateBulletinPost(alice.Id, "alice", "Hi", "first post", "CRITIQUE")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, model.BulletinTypeCritique, post.Type)

	// unknown type is coerced to praise
	post, err = svc.CreateBulletinPost(alice.Id, "alice", "Hi", "second post", "nonsense")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, model.BulletinTypePraise, post.Type)

	// clamps to column widths
	post, err = svc.CreateBulletinPost(alice.Id, "alice",
		strings.Repeat("t", 120), strings.Repeat("m", 600), "poll")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Len(t, post.Title, 80)
	assert.Len(t, post.Message, 500)
}

func TestBulletinFeedVisibility(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	carol := seedUser(t, svc, "carol")

	_, err := svc.Follow(alice.Id, bob.Id)
	require.NoError(t, err)

	own, err := svc.CreateBulletinPost(alice.Id, "alice", "", "mine", "praise")
	require.NoError(t, err)
	followed, err := svc.CreateBulletinPost(bob.Id, "bob", "", "from bob", "praise")
	require.NoError(t, err)
	foreign, err := svc.CreateBulletinPost(carol.Id, "carol", "", "from carol", "praise")
	require.NoError(t, err)

	feed, err := svc.BulletinFeed(alice.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, followed.Id, feed[0].Id)
	assert.Equal(t, own.Id, feed[1].Id)

	count, err := svc.CountBulletinFeed(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// detail follows the same visibility rules
	post, err := svc.BulletinPostForViewer(alice.Id, foreign.Id)
	require.NoError(t, err)
	assert.Nil(t, post)

	post, err = svc.BulletinPostForViewer(alice.Id, followed.Id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "from bob", post.Message)
}

func TestDeleteBulletinPostAuthorOnly(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")

	post, err := svc.CreateBulletinPost(alice.Id, "alice", "", "mine", "praise")
	require.NoError(t, err)
	require.NotNil(t, post)

	ok, err := svc.DeleteBulletinPost(post.Id, bob.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.DeleteBulletinPost(post.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, ok)
}
