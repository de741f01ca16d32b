package repository

import (
	"testing"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPostDelete_DetachesRepliesAndReactions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	author := seedUser(t, db, "author")
	reactor := seedUser(t, db, "reactor")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	parent := seedPost(t, db, author.ID, thread.ID)

	reply := &domain.Post{Content: "a reply", UserID: reactor.ID, ThreadID: thread.ID, ParentID: &parent.ID, IsActive: true}
	assert.NoError(t, db.Create(reply).Error)
	assert.NoError(t, db.Create(&domain.Reaction{Type: "like", UserID: reactor.ID, PostID: parent.ID}).Error)

	assert.NoError(t, repo.Delete(parent.ID))

	// Reply survives as a top-level post.
	var reloaded domain.Post
	assert.NoError(t, db.First(&reloaded, "id = ?", reply.ID).Error)
	assert.Nil(t, reloaded.ParentID)

	// Reactions on the deleted post are gone.
	var reactions int64
	assert.NoError(t, db.Model(&domain.Reaction{}).Where("post_id = ?", parent.ID).Count(&reactions).Error)
	assert.Equal(t, int64(0), reactions)
}

func TestPostDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Delete("missing-id")
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestPostList_TopLevelByDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "general")
	thread := seedThread(t, db, author.ID, category.ID)
	parent := seedPost(t, db, author.ID, thread.ID)

	reply := &domain.Post{Content: "a reply", UserID: author.ID, ThreadID: thread.ID, ParentID: &parent.ID, IsActive: true}
	assert.NoError(t, db.Create(reply).Error)

	posts, total, err := repo.List(&domain.PostListQuery{ThreadID: thread.ID, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, parent.ID, posts[0].ID)

	replies, total, err := repo.List(&domain.PostListQuery{ThreadID: thread.ID, ParentID: parent.ID, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, reply.ID, replies[0].ID)
}
