package service

import (
	"context"
	"encoding/json"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/cache"
)

// CategoryService category business logic. Mutations are admin-only; the
// handler enforces the role, the service enforces the structural rules.
type CategoryService interface {
	List() ([]domain.Category, error)
	GetByID(id string) (*domain.Category, error)
	Create(req *domain.CreateCategoryRequest) (*domain.Category, error)
	Update(id string, req *domain.UpdateCategoryRequest) (*domain.Category, error)
	Delete(id string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        cache.Service
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, cacheSvc cache.Service) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, cache: cacheSvc}
}

func (s *categoryService) List() ([]domain.Category, error) {
	if s.cache != nil {
		if data, err := s.cache.GetCategoryTree(context.Background()); err == nil {
			var categories []domain.Category
			if json.Unmarshal(data, &categories) == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetCategoryTree(context.Background(), categories) //nolint:errcheck
	}
	return categories, nil
}

func (s *categoryService) GetByID(id string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Create(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	existing, err := s.categoryRepo.FindByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrCategoryExists
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, common.ErrCategoryNotFound
		}
		category.ParentID = req.ParentID
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

func (s *categoryService) Update(id string, req *domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.ErrCategoryNotFound
	}

	if req.Name != nil && *req.Name != category.Name {
		existing, err := s.categoryRepo.FindByName(*req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, common.ErrCategoryExists
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, common.ErrInvalidInput
		}
		parent, err := s.categoryRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, common.ErrCategoryNotFound
		}
		category.ParentID = req.ParentID
	}

	// Avoid writing back preloaded associations
	category.Parent = nil
	category.Children = nil

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

func (s *categoryService) Delete(id string) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *categoryService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateCategoryTree(context.Background()) //nolint:errcheck
	}
}
