package repository

import (
	"errors"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository handles category data operations
type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id string) (*domain.Category, error)
	FindByName(name string) (*domain.Category, error)
	ListAll() ([]domain.Category, error)
	Update(category *domain.Category) error
	// Delete removes a category only while it holds no threads and no child
	// categories. The dependent-count check runs inside the delete
	// transaction so a concurrent insert cannot slip between check and
	// delete.
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(id string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.
		Preload("Parent").
		Preload("Children").
		First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListAll() ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.
		Preload("Parent").
		Preload("Children").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var threadCount int64
		if err := tx.Model(&domain.Thread{}).
			Where("category_id = ?", id).
			Count(&threadCount).Error; err != nil {
			return err
		}

		var childCount int64
		if err := tx.Model(&domain.Category{}).
			Where("parent_id = ?", id).
			Count(&childCount).Error; err != nil {
			return err
		}

		if threadCount > 0 || childCount > 0 {
			return common.ErrCategoryNotEmpty
		}

		result := tx.Delete(&domain.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrCategoryNotFound
		}
		return nil
	})
}
