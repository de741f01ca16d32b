package service

import (
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
)

// TagService tag business logic
type TagService interface {
	List() ([]domain.Tag, error)
	Create(req *domain.CreateTagRequest) (*domain.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) List() ([]domain.Tag, error) {
	return s.tagRepo.ListAll()
}

func (s *tagService) Create(req *domain.CreateTagRequest) (*domain.Tag, error) {
	existing, err := s.tagRepo.FindByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrTagExists
	}

	tag := &domain.Tag{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
