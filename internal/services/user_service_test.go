package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

func TestSearchUsers(t *testing.T) {
	db, svc := newTestServices(t)
	caller := createUser(t, db, "bobcaller")
	createUser(t, db, "bob")
	createUser(t, db, "bobby")
	createUser(t, db, "carol")

	resp, err := svc.User.SearchUsers(db, caller.ID, "bob")
	require.NoError(t, err)
	require.Len(t, resp.Users, 2, "matches exclude the caller")
	assert.Equal(t, "bob", resp.Users[0].Username)
	assert.Equal(t, "bobby", resp.Users[1].Username)
}

func TestSearchUsersMatchesNamesAndEmail(t *testing.T) {
	db, svc := newTestServices(t)
	caller := createUser(t, db, "caller")

	named := createUser(t, db, "zz1")
	named.FirstName = "Roberta"
	require.NoError(t, db.Save(named).Error)

	resp, err := svc.User.SearchUsers(db, caller.ID, "ROBERT")
	require.NoError(t, err)
	require.Len(t, resp.Users, 1, "matching is case-insensitive")
	assert.Equal(t, "zz1", resp.Users[0].Username)

	// Email substrings match too.
	resp, err = svc.User.SearchUsers(db, caller.ID, "zz1@example")
	require.NoError(t, err)
	assert.Len(t, resp.Users, 1)
}

func TestSearchUsersEmptyAndCapped(t *testing.T) {
	db, svc := newTestServices(t)
	caller := createUser(t, db, "caller")

	resp, err := svc.User.SearchUsers(db, caller.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, resp.Users, "blank query returns nothing")

	for i := 0; i < 12; i++ {
		createUser(t, db, fmt.Sprintf("match%02d", i))
	}
	resp, err = svc.User.SearchUsers(db, caller.ID, "match")
	require.NoError(t, err)
	assert.Len(t, resp.Users, 10, "results are capped")
}

func seedMessage(t *testing.T, db *gorm.DB, from, to string, at time.Time, read bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.Message{
		SenderID:    from,
		RecipientID: to,
		Content:     "m",
		Timestamp:   at,
		IsRead:      read,
	}).Error)
}

func TestDashboard(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	base := time.Now().Add(-2 * time.Hour)

	// bob: alice sent long ago, bob replied recently -> ranked by the reply.
	seedMessage(t, db, alice.ID, bob.ID, base, true)
	seedMessage(t, db, bob.ID, alice.ID, base.Add(90*time.Minute), false)

	// carol: alice sent recently, carol never replied -> ranked by the send.
	seedMessage(t, db, alice.ID, carol.ID, base.Add(60*time.Minute), false)

	// dave: only ever received from -> still a counterpart.
	seedMessage(t, db, dave.ID, alice.ID, base.Add(30*time.Minute), false)

	dashboard, err := svc.User.GetDashboard(db, alice.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, dashboard.UnreadCount, "bob's reply and dave's message")
	assert.Equal(t, 3, dashboard.ActiveConversations)
	assert.EqualValues(t, 4, dashboard.TotalMessages)

	// Ranking uses the later of sent-max and received-max per counterpart.
	require.Len(t, dashboard.RecentContacts, 3)
	assert.Equal(t, "bob", dashboard.RecentContacts[0].User.Username)
	assert.Equal(t, "carol", dashboard.RecentContacts[1].User.Username)
	assert.Equal(t, "dave", dashboard.RecentContacts[2].User.Username)

	require.Len(t, dashboard.RecentMessages, 4)
	assert.True(t, dashboard.RecentMessages[0].Timestamp.After(dashboard.RecentMessages[1].Timestamp))
}

func TestDashboardEmpty(t *testing.T) {
	db, svc := newTestServices(t)
	alice := createUser(t, db, "alice")

	dashboard, err := svc.User.GetDashboard(db, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, dashboard.UnreadCount)
	assert.Equal(t, 0, dashboard.ActiveConversations)
	assert.EqualValues(t, 0, dashboard.TotalMessages)
	assert.Empty(t, dashboard.RecentMessages)
	assert.Empty(t, dashboard.RecentContacts)
}
