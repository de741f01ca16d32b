package repository

import (
	"errors"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// ThreadRepository handles thread data operations
type ThreadRepository interface {
	Create(thread *domain.Thread) error
	FindByID(id string) (*domain.Thread, error)
	List(q *domain.ThreadListQuery) ([]domain.Thread, int64, error)
	Update(thread *domain.Thread) error
	SetLocked(id string, locked bool) error
	SetPinned(id string, pinned bool) error
	IncrementViewCount(id string) error
	ReplaceTags(thread *domain.Thread, tags []domain.Tag) error
	// Delete removes a thread only while it holds no posts; the check runs
	// inside the delete transaction.
	Delete(id string) error
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(thread *domain.Thread) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		return syncTagUsage(tx, tagIDs(thread.Tags))
	})
}

func (r *threadRepository) FindByID(id string) (*domain.Thread, error) {
	var thread domain.Thread
	err := r.db.
		Preload("User").
		Preload("Category").
		Preload("Tags").
		First(&thread, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) List(q *domain.ThreadListQuery) ([]domain.Thread, int64, error) {
	query := r.db.Model(&domain.Thread{}).
		Preload("User").
		Preload("Category").
		Preload("Tags")

	if q.CategoryID != "" {
		query = query.Where("threads.category_id = ?", q.CategoryID)
	}
	if q.AuthorID != "" {
		query = query.Where("threads.user_id = ?", q.AuthorID)
	}
	if q.TagID != "" {
		query = query.
			Joins("JOIN thread_tags ON thread_tags.thread_id = threads.id").
			Where("thread_tags.tag_id = ?", q.TagID)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("threads.title LIKE ? OR threads.content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var threads []domain.Thread
	offset := (q.Page - 1) * q.Limit
	err := query.
		Order("threads.is_pinned DESC, threads.created_at DESC").
		Offset(offset).
		Limit(q.Limit).
		Find(&threads).Error
	if err != nil {
		return nil, 0, err
	}

	return threads, total, nil
}

func (r *threadRepository) Update(thread *domain.Thread) error {
	return r.db.Omit("Tags").Save(thread).Error
}

func (r *threadRepository) SetLocked(id string, locked bool) error {
	return r.db.Model(&domain.Thread{}).
		Where("id = ?", id).
		Update("is_locked", locked).Error
}

func (r *threadRepository) SetPinned(id string, pinned bool) error {
	return r.db.Model(&domain.Thread{}).
		Where("id = ?", id).
		Update("is_pinned", pinned).Error
}

func (r *threadRepository) IncrementViewCount(id string) error {
	return r.db.Model(&domain.Thread{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// ReplaceTags swaps the thread's tag set and resyncs usage counts for every
// tag touched on either side of the swap.
func (r *threadRepository) ReplaceTags(thread *domain.Thread, tags []domain.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		affected := tagIDs(thread.Tags)
		affected = append(affected, tagIDs(tags)...)

		if err := tx.Model(thread).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return syncTagUsage(tx, affected)
	})
}

func (r *threadRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&domain.Post{}).
			Where("thread_id = ?", id).
			Count(&postCount).Error; err != nil {
			return err
		}
		if postCount > 0 {
			return common.ErrThreadNotEmpty
		}

		var thread domain.Thread
		if err := tx.Preload("Tags").First(&thread, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrThreadNotFound
			}
			return err
		}

		if err := tx.Model(&thread).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&thread).Error; err != nil {
			return err
		}
		return syncTagUsage(tx, tagIDs(thread.Tags))
	})
}

func tagIDs(tags []domain.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// syncTagUsage recomputes usage_count from the authoritative join rows
// instead of trusting incremental updates.
func syncTagUsage(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&domain.Tag{}).
		Where("id IN ?", ids).
		Update("usage_count", gorm.Expr(
			"(SELECT COUNT(*) FROM thread_tags WHERE thread_tags.tag_id = tags.id)",
		)).Error
}
