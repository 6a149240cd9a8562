package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlink_backend/internal/models"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

func TestRequestContact(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	resp, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	// The recipient is notified.
	notifications, err := svc.Notification.ListNotifications(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications.Notifications, 1)
	assert.Equal(t, models.NotificationTypeContactRequest, notifications.Notifications[0].Type)
	assert.False(t, notifications.Notifications[0].IsRead)

	// Repeating the request is informational, not an error.
	resp, err = svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "info", resp.Status)
	assert.Equal(t, "Request already sent", resp.Message)

	// The reverse direction collapses onto the same record.
	resp, err = svc.Contact.RequestContact(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "info", resp.Status)
	assert.Equal(t, "This user has already sent you a request", resp.Message)
}

func TestRequestContactSelf(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")

	_, err := svc.Contact.RequestContact(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfContact)
}

func TestRequestContactUnknownTarget(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")

	_, err := svc.Contact.RequestContact(db, alice.ID, "no-such-user")
	assert.ErrorIs(t, err, apperrors.ErrRecipientNotFound)
}

func TestPairUniquenessAtDatabaseLevel(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	repo := repositories.NewContactRepository()
	require.NoError(t, repo.Create(db, &models.Contact{
		RequesterID: alice.ID, RecipientID: bob.ID, Status: models.ContactStatusPending,
	}))

	// Opposite-direction insert hits the same normalized pair row.
	err := repo.Create(db, &models.Contact{
		RequesterID: bob.ID, RecipientID: alice.ID, Status: models.ContactStatusPending,
	})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicatePairError(err))

	// The pair lookup is direction-insensitive.
	fromAlice, err := repo.FindBetween(db, alice.ID, bob.ID)
	require.NoError(t, err)
	fromBob, err := repo.FindBetween(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, fromAlice.ID, fromBob.ID)
}

func TestRespondAccept(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)

	list, err := svc.Contact.ListContacts(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, list.PendingRequests, 1)
	requestID := list.PendingRequests[0].RequestID
	assert.Equal(t, "alice", list.PendingRequests[0].Requester.Username)

	resp, err := svc.Contact.RespondToRequest(db, bob.ID, &dto.RespondToRequestRequest{
		RequestID: requestID, Action: "accept",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "accept", resp.Action)

	// Both sides now list each other.
	for caller, other := range map[string]string{alice.ID: "bob", bob.ID: "alice"} {
		list, err := svc.Contact.ListContacts(db, caller)
		require.NoError(t, err)
		require.Len(t, list.Contacts, 1)
		assert.Equal(t, other, list.Contacts[0].Username)
		assert.Empty(t, list.PendingRequests)
	}

	// The requester is notified of the acceptance.
	notifications, err := svc.Notification.ListNotifications(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications.Notifications, 1)
	assert.Equal(t, models.NotificationTypeContactAccepted, notifications.Notifications[0].Type)

	// Responding twice is single-fire.
	_, err = svc.Contact.RespondToRequest(db, bob.ID, &dto.RespondToRequestRequest{
		RequestID: requestID, Action: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrContactRequestNotFound)

	// Re-requesting an accepted pair is informational.
	info, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Already connected", info.Message)
}

func TestRespondReject(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	list, err := svc.Contact.ListContacts(db, bob.ID)
	require.NoError(t, err)
	requestID := list.PendingRequests[0].RequestID

	resp, err := svc.Contact.RespondToRequest(db, bob.ID, &dto.RespondToRequestRequest{
		RequestID: requestID, Action: "reject",
	})
	require.NoError(t, err)
	assert.Equal(t, "Contact request rejected", resp.Message)

	// Rejection produces no notification for the requester.
	notifications, err := svc.Notification.ListNotifications(db, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications.Notifications)

	// Rejected is terminal: a new request does not reopen the pair.
	info, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "info", info.Status)
	assert.Equal(t, "Request was previously rejected", info.Message)
}

func TestRespondOnlyByRecipient(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	list, err := svc.Contact.ListContacts(db, bob.ID)
	require.NoError(t, err)
	requestID := list.PendingRequests[0].RequestID

	// The requester cannot accept their own request.
	_, err = svc.Contact.RespondToRequest(db, alice.ID, &dto.RespondToRequestRequest{
		RequestID: requestID, Action: "accept",
	})
	assert.ErrorIs(t, err, apperrors.ErrContactRequestNotFound)
}

func TestRemoveContact(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Contact.RequestContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	list, err := svc.Contact.ListContacts(db, bob.ID)
	require.NoError(t, err)
	_, err = svc.Contact.RespondToRequest(db, bob.ID, &dto.RespondToRequestRequest{
		RequestID: list.PendingRequests[0].RequestID, Action: "accept",
	})
	require.NoError(t, err)

	// Either side may remove; here the original recipient does.
	resp, err := svc.Contact.RemoveContact(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	for _, id := range []string{alice.ID, bob.ID} {
		list, err := svc.Contact.ListContacts(db, id)
		require.NoError(t, err)
		assert.Empty(t, list.Contacts)
	}

	// Removal clears the pair, so a fresh request goes through.
	again, err := svc.Contact.RequestContact(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", again.Status)

	// Removing an already-absent relationship is still a success.
	resp, err = svc.Contact.RemoveContact(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
}
