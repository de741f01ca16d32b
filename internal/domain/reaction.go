package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction domain model. The composite unique index on (user_id, post_id)
// is the authoritative guard against duplicate reactions.
type Reaction struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_reactions_user_post" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:idx_reactions_user_post" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// BeforeCreate assigns a UUID primary key
func (r *Reaction) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// AddReactionRequest create payload
type AddReactionRequest struct {
	Type string `json:"type" binding:"required,max=50"`
}
