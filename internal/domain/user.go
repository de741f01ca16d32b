package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User domain model
type User struct {
	ID                     string     `gorm:"primaryKey;size:36" json:"id"`
	Username               string     `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email                  string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password               string     `gorm:"size:255;not null" json:"-"`
	Role                   string     `gorm:"size:20;default:user" json:"role"`
	IsActive               bool       `gorm:"default:true" json:"is_active"`
	IsEmailVerified        bool       `gorm:"default:false" json:"is_email_verified"`
	EmailVerificationToken string     `gorm:"size:64" json:"-"`
	PasswordResetToken     string     `gorm:"size:64" json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`
	Avatar                 string     `gorm:"size:255" json:"avatar,omitempty"`
	Bio                    string     `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsModerator reports whether the user holds moderator powers
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// IsAdmin reports whether the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
