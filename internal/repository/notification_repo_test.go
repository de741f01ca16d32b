package repository

import (
	"testing"

	"github.com/openagora/agora-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, recipientID, senderID string) *domain.Notification {
	t.Helper()
	n := &domain.Notification{
		Type:        domain.NotificationNewReply,
		Message:     "someone replied to your post",
		RecipientID: recipientID,
		SenderID:    &senderID,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
	return n
}

func TestNotificationUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedNotification(t, db, alice.ID, bob.ID)
	read := seedNotification(t, db, alice.ID, bob.ID)
	assert.NoError(t, repo.MarkAsRead(read.ID))
	seedNotification(t, db, bob.ID, alice.ID)

	count, err := repo.UnreadCount(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationList_UnreadOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedNotification(t, db, alice.ID, bob.ID)
	read := seedNotification(t, db, alice.ID, bob.ID)
	assert.NoError(t, repo.MarkAsRead(read.ID))

	all, total, err := repo.List(alice.ID, false, 0, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	unread, total, err := repo.List(alice.ID, true, 0, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, unread, 1)
	assert.False(t, unread[0].IsRead)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedNotification(t, db, alice.ID, bob.ID)
	seedNotification(t, db, alice.ID, bob.ID)
	other := seedNotification(t, db, bob.ID, alice.ID)

	assert.NoError(t, repo.MarkAllAsRead(alice.ID))

	count, err := repo.UnreadCount(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other recipients are untouched.
	found, err := repo.FindByID(other.ID)
	assert.NoError(t, err)
	assert.False(t, found.IsRead)
}
