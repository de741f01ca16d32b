package repository

import (
	"errors"

	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository handles post data operations
type PostRepository interface {
	Create(post *domain.Post) error
	FindByID(id string) (*domain.Post, error)
	List(q *domain.PostListQuery) ([]domain.Post, int64, error)
	Update(post *domain.Post) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByID(id string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.
		Preload("User").
		Preload("Thread").
		Preload("Parent").
		Preload("Parent.User").
		Preload("Replies").
		Preload("Reactions").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(q *domain.PostListQuery) ([]domain.Post, int64, error) {
	query := r.db.Model(&domain.Post{}).
		Preload("User").
		Preload("Replies").
		Preload("Reactions")

	if q.ThreadID != "" {
		query = query.Where("thread_id = ?", q.ThreadID)
	}
	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.ParentID != "" {
		query = query.Where("parent_id = ?", q.ParentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	offset := (q.Page - 1) * q.Limit
	err := query.
		Order("created_at ASC").
		Offset(offset).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) Update(post *domain.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Replies keep their rows but lose the parent link
		if err := tx.Model(&domain.Post{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Reaction{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, "id = ?", id).Error
	})
}
