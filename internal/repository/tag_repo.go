package repository

import (
	"errors"

	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// TagRepository handles tag data operations
type TagRepository interface {
	Create(tag *domain.Tag) error
	FindByID(id string) (*domain.Tag, error)
	FindByName(name string) (*domain.Tag, error)
	FindByIDs(ids []string) ([]domain.Tag, error)
	ListAll() ([]domain.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *domain.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) FindByID(id string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.First(&tag, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ids []string) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []domain.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) ListAll() ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.Order("usage_count DESC, name ASC").Find(&tags).Error
	return tags, err
}
