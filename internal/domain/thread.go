package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Thread domain model
type Thread struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ViewCount  int       `gorm:"default:0" json:"view_count"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsLocked   bool      `gorm:"default:false" json:"is_locked"`
	IsPinned   bool      `gorm:"default:false" json:"is_pinned"`
	UserID     string    `gorm:"size:36;index;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CategoryID string    `gorm:"size:36;index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Posts      []Post    `gorm:"foreignKey:ThreadID" json:"-"`
	Tags       []Tag     `gorm:"many2many:thread_tags" json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Thread) TableName() string {
	return "threads"
}

// BeforeCreate assigns a UUID primary key
func (t *Thread) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// CreateThreadRequest create payload
type CreateThreadRequest struct {
	Title      string   `json:"title" binding:"required,min=1,max=255"`
	Content    string   `json:"content" binding:"required"`
	CategoryID string   `json:"category_id" binding:"required"`
	TagIDs     []string `json:"tag_ids"`
}

// UpdateThreadRequest update payload; nil fields are left unchanged
type UpdateThreadRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Content    *string  `json:"content"`
	CategoryID *string  `json:"category_id"`
	TagIDs     []string `json:"tag_ids"`
}

// ThreadListQuery list filters
type ThreadListQuery struct {
	CategoryID string `form:"category_id"`
	TagID      string `form:"tag_id"`
	AuthorID   string `form:"author_id"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}

// ThreadResponse thread with rendered content
type ThreadResponse struct {
	Thread
	ContentHTML string `json:"content_html,omitempty"`
}

// ThreadListResponse paginated thread list
type ThreadListResponse struct {
	Threads []Thread `json:"threads"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}
