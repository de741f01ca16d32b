package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post domain model. A post with a ParentID is a reply.
type Post struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	ReactionCount int        `gorm:"default:0" json:"reaction_count"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	UserID        string     `gorm:"size:36;index;not null" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ThreadID      string     `gorm:"size:36;index;not null" json:"thread_id"`
	Thread        *Thread    `gorm:"foreignKey:ThreadID" json:"thread,omitempty"`
	ParentID      *string    `gorm:"size:36;index" json:"parent_id,omitempty"`
	Parent        *Post      `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Replies       []Post     `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	Reactions     []Reaction `gorm:"foreignKey:PostID" json:"reactions,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns a UUID primary key
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// CreatePostRequest create payload
type CreatePostRequest struct {
	Content  string  `json:"content" binding:"required"`
	ThreadID string  `json:"thread_id" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// UpdatePostRequest update payload
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostListQuery list filters. An empty ParentID selects top-level posts.
type PostListQuery struct {
	ThreadID string `form:"thread_id"`
	UserID   string `form:"user_id"`
	ParentID string `form:"parent_id"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// PostResponse post with rendered content
type PostResponse struct {
	Post
	ContentHTML string `json:"content_html,omitempty"`
}

// PostListResponse paginated post list
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
