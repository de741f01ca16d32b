package migration

import (
	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every forum table and seeds default
// categories when the table is empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Thread{},
		&domain.Post{},
		&domain.Reaction{},
		&domain.Tag{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.Category{}).Count(&count)
	if count == 0 {
		return seedCategories(db)
	}

	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []domain.Category{
		{Name: "General", Description: "General discussion", Order: 1},
		{Name: "Announcements", Description: "Official announcements", Order: 2},
		{Name: "Help & Support", Description: "Questions and answers", Order: 3},
	}
	return db.Create(&categories).Error
}
