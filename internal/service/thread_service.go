package service

import (
	"context"
	"encoding/json"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/cache"
	"github.com/openagora/agora-backend/pkg/markdown"
)

// ThreadService thread business logic
type ThreadService interface {
	List(q *domain.ThreadListQuery) (*domain.ThreadListResponse, error)
	// GetByID returns the thread with rendered content and bumps the view
	// counter.
	GetByID(id string) (*domain.ThreadResponse, error)
	Create(actor *domain.User, req *domain.CreateThreadRequest) (*domain.Thread, error)
	Update(actor *domain.User, id string, req *domain.UpdateThreadRequest) (*domain.Thread, error)
	Delete(actor *domain.User, id string) error
	// ToggleLock and TogglePin flip the respective flag; moderator or admin
	// only. Both transitions are reversible.
	ToggleLock(actor *domain.User, id string) (*domain.Thread, error)
	TogglePin(actor *domain.User, id string) (*domain.Thread, error)
}

type threadService struct {
	threadRepo   repository.ThreadRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	cache        cache.Service
}

// NewThreadService creates a new ThreadService
func NewThreadService(
	threadRepo repository.ThreadRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	cacheSvc cache.Service,
) ThreadService {
	return &threadService{
		threadRepo:   threadRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		cache:        cacheSvc,
	}
}

func (s *threadService) List(q *domain.ThreadListQuery) (*domain.ThreadListResponse, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit, 10)

	// Only plain category/page listings are cached; filtered queries go to
	// the store.
	cacheable := s.cache != nil && q.TagID == "" && q.AuthorID == "" && q.Search == ""
	if cacheable {
		if data, err := s.cache.GetThreadList(context.Background(), q.CategoryID, q.Page, q.Limit); err == nil {
			var resp domain.ThreadListResponse
			if json.Unmarshal(data, &resp) == nil {
				return &resp, nil
			}
		}
	}

	threads, total, err := s.threadRepo.List(q)
	if err != nil {
		return nil, err
	}

	resp := &domain.ThreadListResponse{
		Threads: threads,
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
	}
	if cacheable {
		s.cache.SetThreadList(context.Background(), q.CategoryID, q.Page, q.Limit, resp) //nolint:errcheck
	}
	return resp, nil
}

func (s *threadService) GetByID(id string) (*domain.ThreadResponse, error) {
	thread, err := s.threadRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, common.ErrThreadNotFound
	}

	if err := s.threadRepo.IncrementViewCount(id); err != nil {
		return nil, err
	}
	thread.ViewCount++

	return &domain.ThreadResponse{
		Thread:      *thread,
		ContentHTML: markdown.Render(thread.Content),
	}, nil
}

func (s *threadService) Create(actor *domain.User, req *domain.CreateThreadRequest) (*domain.Thread, error) {
	category, err := s.categoryRepo.FindByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.ErrCategoryNotFound
	}

	thread := &domain.Thread{
		Title:      req.Title,
		Content:    req.Content,
		UserID:     actor.ID,
		CategoryID: req.CategoryID,
		IsActive:   true,
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.tagRepo.FindByIDs(req.TagIDs)
		if err != nil {
			return nil, err
		}
		thread.Tags = tags
	}

	if err := s.threadRepo.Create(thread); err != nil {
		return nil, err
	}
	s.invalidateLists(req.CategoryID)
	return thread, nil
}

func (s *threadService) Update(actor *domain.User, id string, req *domain.UpdateThreadRequest) (*domain.Thread, error) {
	thread, err := s.threadRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, common.ErrThreadNotFound
	}

	if thread.UserID != actor.ID && !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		thread.Title = *req.Title
	}
	if req.Content != nil {
		thread.Content = *req.Content
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, common.ErrCategoryNotFound
		}
		thread.CategoryID = *req.CategoryID
	}

	// Avoid writing back preloaded associations
	thread.User = nil
	thread.Category = nil

	if err := s.threadRepo.Update(thread); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		tags, err := s.tagRepo.FindByIDs(req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.threadRepo.ReplaceTags(thread, tags); err != nil {
			return nil, err
		}
		thread.Tags = tags
	}

	s.invalidateLists(thread.CategoryID)
	return thread, nil
}

func (s *threadService) Delete(actor *domain.User, id string) error {
	thread, err := s.threadRepo.FindByID(id)
	if err != nil {
		return err
	}
	if thread == nil {
		return common.ErrThreadNotFound
	}

	if thread.UserID != actor.ID && !actor.IsAdmin() {
		return common.ErrForbidden
	}

	if err := s.threadRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateLists(thread.CategoryID)
	return nil
}

func (s *threadService) ToggleLock(actor *domain.User, id string) (*domain.Thread, error) {
	return s.toggleFlag(actor, id, func(t *domain.Thread) error {
		t.IsLocked = !t.IsLocked
		return s.threadRepo.SetLocked(id, t.IsLocked)
	})
}

func (s *threadService) TogglePin(actor *domain.User, id string) (*domain.Thread, error) {
	return s.toggleFlag(actor, id, func(t *domain.Thread) error {
		t.IsPinned = !t.IsPinned
		return s.threadRepo.SetPinned(id, t.IsPinned)
	})
}

func (s *threadService) toggleFlag(actor *domain.User, id string, flip func(*domain.Thread) error) (*domain.Thread, error) {
	if !actor.IsModerator() {
		return nil, common.ErrForbidden
	}

	thread, err := s.threadRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, common.ErrThreadNotFound
	}

	if err := flip(thread); err != nil {
		return nil, err
	}
	s.invalidateLists(thread.CategoryID)
	return thread, nil
}

func (s *threadService) invalidateLists(categoryID string) {
	if s.cache != nil {
		s.cache.InvalidateThreadLists(context.Background(), categoryID) //nolint:errcheck
	}
}
