package repository

import (
	"testing"

	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Thread{},
		&domain.Post{},
		&domain.Reaction{},
		&domain.Tag{},
		&domain.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     domain.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func seedThread(t *testing.T, db *gorm.DB, userID, categoryID string) *domain.Thread {
	t.Helper()
	thread := &domain.Thread{
		Title:      "Test thread",
		Content:    "thread body",
		UserID:     userID,
		CategoryID: categoryID,
		IsActive:   true,
	}
	if err := db.Create(thread).Error; err != nil {
		t.Fatalf("failed to seed thread: %v", err)
	}
	return thread
}

func seedPost(t *testing.T, db *gorm.DB, userID, threadID string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Content:  "post body",
		UserID:   userID,
		ThreadID: threadID,
		IsActive: true,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}
