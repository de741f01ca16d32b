package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag domain model
type Tag struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	UsageCount  int       `gorm:"default:0" json:"usage_count"`
	Threads     []Thread  `gorm:"many2many:thread_tags" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate assigns a UUID primary key
func (t *Tag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// CreateTagRequest create payload
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description"`
}
