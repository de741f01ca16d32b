package service

import (
	"testing"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newThreadServiceForTest(threadRepo *mockThreadRepo, categoryRepo *mockCategoryRepo, tagRepo *mockTagRepo) ThreadService {
	return NewThreadService(threadRepo, categoryRepo, tagRepo, cache.NewService(nil))
}

func TestToggleLock_RequiresModerator(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	actor := &domain.User{ID: "u1", Role: domain.RoleUser}
	_, err := svc.ToggleLock(actor, "t1")

	assert.ErrorIs(t, err, common.ErrForbidden)
	threadRepo.AssertNotCalled(t, "SetLocked", mock.Anything, mock.Anything)
}

func TestToggleLock_FlipsState(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	threadRepo.On("FindByID", "t1").Return(&domain.Thread{ID: "t1", IsLocked: false, CategoryID: "c1"}, nil)
	threadRepo.On("SetLocked", "t1", true).Return(nil)

	moderator := &domain.User{ID: "m1", Role: domain.RoleModerator}
	thread, err := svc.ToggleLock(moderator, "t1")

	assert.NoError(t, err)
	assert.True(t, thread.IsLocked)
	threadRepo.AssertExpectations(t)
}

func TestTogglePin_FlipsBackOff(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	threadRepo.On("FindByID", "t1").Return(&domain.Thread{ID: "t1", IsPinned: true, CategoryID: "c1"}, nil)
	threadRepo.On("SetPinned", "t1", false).Return(nil)

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	thread, err := svc.TogglePin(admin, "t1")

	assert.NoError(t, err)
	assert.False(t, thread.IsPinned)
	threadRepo.AssertExpectations(t)
}

func TestCreateThread_CategoryMissing(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	categoryRepo := new(mockCategoryRepo)
	svc := newThreadServiceForTest(threadRepo, categoryRepo, new(mockTagRepo))

	categoryRepo.On("FindByID", "missing").Return(nil, nil)

	actor := &domain.User{ID: "u1", Role: domain.RoleUser}
	_, err := svc.Create(actor, &domain.CreateThreadRequest{Title: "hi", Content: "body", CategoryID: "missing"})

	assert.ErrorIs(t, err, common.ErrCategoryNotFound)
	threadRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateThread_WithTags(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	categoryRepo := new(mockCategoryRepo)
	tagRepo := new(mockTagRepo)
	svc := newThreadServiceForTest(threadRepo, categoryRepo, tagRepo)

	categoryRepo.On("FindByID", "c1").Return(&domain.Category{ID: "c1"}, nil)
	tags := []domain.Tag{{ID: "tag1", Name: "golang"}}
	tagRepo.On("FindByIDs", []string{"tag1"}).Return(tags, nil)
	threadRepo.On("Create", mock.AnythingOfType("*domain.Thread")).Return(nil)

	actor := &domain.User{ID: "u1", Role: domain.RoleUser}
	thread, err := svc.Create(actor, &domain.CreateThreadRequest{
		Title: "hi", Content: "body", CategoryID: "c1", TagIDs: []string{"tag1"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "u1", thread.UserID)
	assert.Equal(t, tags, thread.Tags)
	threadRepo.AssertExpectations(t)
}

func TestUpdateThread_OwnerOrAdminOnly(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	threadRepo.On("FindByID", "t1").Return(&domain.Thread{ID: "t1", UserID: "owner", CategoryID: "c1"}, nil)

	// Moderators do not get edit rights over other people's threads.
	moderator := &domain.User{ID: "m1", Role: domain.RoleModerator}
	_, err := svc.Update(moderator, "t1", &domain.UpdateThreadRequest{})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDeleteThread_PropagatesNotEmpty(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	threadRepo.On("FindByID", "t1").Return(&domain.Thread{ID: "t1", UserID: "owner", CategoryID: "c1"}, nil)
	threadRepo.On("Delete", "t1").Return(common.ErrThreadNotEmpty)

	owner := &domain.User{ID: "owner", Role: domain.RoleUser}
	err := svc.Delete(owner, "t1")
	assert.ErrorIs(t, err, common.ErrThreadNotEmpty)
}

func TestGetThread_CountsView(t *testing.T) {
	threadRepo := new(mockThreadRepo)
	svc := newThreadServiceForTest(threadRepo, new(mockCategoryRepo), new(mockTagRepo))

	threadRepo.On("FindByID", "t1").Return(&domain.Thread{ID: "t1", Content: "**bold**"}, nil)
	threadRepo.On("IncrementViewCount", "t1").Return(nil)

	resp, err := svc.GetByID("t1")

	assert.NoError(t, err)
	assert.Contains(t, resp.ContentHTML, "<strong>")
	threadRepo.AssertExpectations(t)
}
