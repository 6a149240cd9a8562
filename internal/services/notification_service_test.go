package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Contact.RequestContact(db, carol.ID, bob.ID)
	require.NoError(t, err)

	count, err := svc.Notification.UnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	list, err := svc.Notification.ListNotifications(db, bob.ID)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 2, list.UnreadCount)

	require.NoError(t, svc.Notification.MarkAllRead(db, bob.ID))

	count, err = svc.Notification.UnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Notifications stay listed after being read.
	list, err = svc.Notification.ListNotifications(db, bob.ID)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	for _, n := range list.Notifications {
		assert.True(t, n.IsRead)
	}

	// Other users' feeds are unaffected.
	count, err = svc.Notification.UnreadCount(db, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
