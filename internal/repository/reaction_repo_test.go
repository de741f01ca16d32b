package repository

import (
	"testing"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func reactionCount(t *testing.T, db *gorm.DB, postID string) int {
	t.Helper()
	var post domain.Post
	if err := db.First(&post, "id = ?", postID).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	return post.ReactionCount
}

func TestReactionAdd_IncrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	err := repo.Add(&domain.Reaction{Type: "like", UserID: reactor.ID, PostID: post.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, reactionCount(t, db, post.ID))

	// A second reactor keeps accruing.
	other := seedUser(t, db, "other")
	err = repo.Add(&domain.Reaction{Type: "heart", UserID: other.ID, PostID: post.ID})
	assert.NoError(t, err)
	assert.Equal(t, 2, reactionCount(t, db, post.ID))
}

func TestReactionAdd_DuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	err := repo.Add(&domain.Reaction{Type: "like", UserID: reactor.ID, PostID: post.ID})
	assert.NoError(t, err)

	// Second reaction from the same user conflicts even with a different
	// type, and the counter stays where it was.
	err = repo.Add(&domain.Reaction{Type: "heart", UserID: reactor.ID, PostID: post.ID})
	assert.ErrorIs(t, err, common.ErrReactionExists)
	assert.Equal(t, 1, reactionCount(t, db, post.ID))
}

func TestReactionRemove_DecrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	assert.NoError(t, repo.Add(&domain.Reaction{Type: "like", UserID: reactor.ID, PostID: post.ID}))
	assert.NoError(t, repo.Remove(post.ID, reactor.ID))
	assert.Equal(t, 0, reactionCount(t, db, post.ID))
}

func TestReactionRemove_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	err := repo.Remove(post.ID, reactor.ID)
	assert.ErrorIs(t, err, common.ErrReactionNotFound)
	assert.Equal(t, 0, reactionCount(t, db, post.ID))
}

func TestReactionRemove_CounterNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	// A stale row with the counter already at zero must not push it below.
	assert.NoError(t, db.Create(&domain.Reaction{Type: "like", UserID: reactor.ID, PostID: post.ID}).Error)
	assert.NoError(t, repo.Remove(post.ID, reactor.ID))
	assert.Equal(t, 0, reactionCount(t, db, post.ID))
}

func TestReactionListByPost_FiltersByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	author := seedUser(t, db, "author")
	a := seedUser(t, db, "usera")
	b := seedUser(t, db, "userb")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	post := seedPost(t, db, author.ID, thread.ID)

	assert.NoError(t, repo.Add(&domain.Reaction{Type: "like", UserID: a.ID, PostID: post.ID}))
	assert.NoError(t, repo.Add(&domain.Reaction{Type: "heart", UserID: b.ID, PostID: post.ID}))

	all, err := repo.ListByPost(post.ID, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	likes, err := repo.ListByPost(post.ID, "like")
	assert.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Equal(t, a.ID, likes[0].UserID)
}
