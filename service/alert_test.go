package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertMailbox(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	require.NoError(t, svc.CreateAlert(alice.Id, "bob followed you", "/user/bob"))
	require.NoError(t, svc.CreateAlert(alice.Id, "carol commented on your profile", "/profile#comments"))

	alerts, err := svc.Alerts(alice.Id, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	// newest first
	assert.Equal(t, "carol commented on your profile", alerts[0].Message)

	unread, err := svc.UnreadAlertCount(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, svc.MarkAlertRead(alerts[0].Id, alice.Id))
	unread, err = svc.UnreadAlertCount(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// unread-only listing drops the read one
	unreadOnly, err := svc.Alerts(alice.Id, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, "bob followed you", unreadOnly[0].Message)
}

func TestAlertBlankMessageSkipped(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")

	require.NoError(t, svc.CreateAlert(alice.Id, "   ", "/somewhere"))
	count, err := svc.CountAlerts(alice.Id, true)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAlertOwnershipScoping(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")

	require.NoError(t, svc.CreateAlert(alice.Id, "bob followed you", "/user/bob"))
	alerts, err := svc.Alerts(alice.Id, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	alertId := alerts[0].Id

	// bob cannot see, read or delete alice's alert
	foreign, err := svc.AlertForUser(alertId, bob.Id)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	require.NoError(t, svc.MarkAlertRead(alertId, bob.Id))
	require.NoError(t, svc.DeleteAlert(alertId, bob.Id))

	own, err := svc.AlertForUser(alertId, alice.Id)
	require.NoError(t, err)
	require.NotNil(t, own)
	assert.False(t, own.IsRead)

	require.NoError(t, svc.DeleteAlert(alertId, alice.Id))
	count, err := svc.CountAlerts(alice.Id, true)
	require.NoError(t, err)
	assert.Zero(t, count)
}
