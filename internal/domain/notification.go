package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationNewPost   = "NEW_POST"
	NotificationNewThread = "NEW_THREAD"
	NotificationNewReply  = "NEW_REPLY"
	NotificationMention   = "MENTION"
	NotificationReaction  = "REACTION"
)

// Notification domain model. Rows are created only as a side effect of a
// triggering domain event (reply, reaction).
type Notification struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	RecipientID string    `gorm:"size:36;index;not null" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID" json:"-"`
	SenderID    *string   `gorm:"size:36" json:"sender_id,omitempty"`
	Sender      *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	PostID      *string   `gorm:"size:36" json:"post_id,omitempty"`
	ThreadID    *string   `gorm:"size:36" json:"thread_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID primary key
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// NotificationListQuery list filters
type NotificationListQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page,default=1"`
	Limit      int  `form:"limit,default=20"`
}

// NotificationListResponse paginated notification list
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	UnreadCount   int64          `json:"unread_count"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
}

// NotificationSummaryResponse unread count response
type NotificationSummaryResponse struct {
	TotalUnread int `json:"total_unread"`
}
