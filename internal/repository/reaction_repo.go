package repository

import (
	"errors"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"gorm.io/gorm"
)

// ReactionRepository handles reaction data operations. Add and Remove run
// the row mutation and the denormalized counter update in one transaction;
// the unique index on (user_id, post_id) is the final authority against
// concurrent duplicates, not the application-level pre-check.
type ReactionRepository interface {
	Add(reaction *domain.Reaction) error
	Remove(postID, userID string) error
	FindByUserAndPost(userID, postID string) (*domain.Reaction, error)
	ListByPost(postID, reactionType string) ([]domain.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Add(reaction *domain.Reaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reaction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.ErrReactionExists
			}
			return err
		}

		return tx.Model(&domain.Post{}).
			Where("id = ?", reaction.PostID).
			UpdateColumn("reaction_count", gorm.Expr("reaction_count + 1")).Error
	})
}

func (r *reactionRepository) Remove(postID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&domain.Reaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrReactionNotFound
		}

		// Floor at 0: the WHERE guard keeps a drifted counter from going
		// negative.
		return tx.Model(&domain.Post{}).
			Where("id = ? AND reaction_count > 0", postID).
			UpdateColumn("reaction_count", gorm.Expr("reaction_count - 1")).Error
	})
}

func (r *reactionRepository) FindByUserAndPost(userID, postID string) (*domain.Reaction, error) {
	var reaction domain.Reaction
	err := r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByPost(postID, reactionType string) ([]domain.Reaction, error) {
	query := r.db.Preload("User").Where("post_id = ?", postID)
	if reactionType != "" {
		query = query.Where("type = ?", reactionType)
	}

	var reactions []domain.Reaction
	err := query.Find(&reactions).Error
	return reactions, err
}
