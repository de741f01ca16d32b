package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category domain model. Categories form a tree via ParentID.
type Category struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Order       int        `gorm:"column:sort_order;default:0" json:"order"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	ParentID    *string    `gorm:"size:36;index" json:"parent_id,omitempty"`
	Parent      *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children    []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Threads     []Thread   `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID primary key
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CreateCategoryRequest create payload
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	ParentID    *string `json:"parent_id"`
}

// UpdateCategoryRequest update payload; nil fields are left unchanged
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
	ParentID    *string `json:"parent_id"`
}
