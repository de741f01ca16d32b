package service

import (
	"context"
	"encoding/json"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/cache"
	"golang.org/x/crypto/bcrypt"
)

// UpdateProfileRequest profile update payload
type UpdateProfileRequest struct {
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

// ChangePasswordRequest password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// AdminUpdateUserRequest admin-side user update payload
type AdminUpdateUserRequest struct {
	Role     *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	IsActive *bool   `json:"is_active"`
}

// UserListResponse paginated user list
type UserListResponse struct {
	Users []domain.UserResponse `json:"users"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// UserService user profile and admin management logic
type UserService interface {
	GetByID(id string) (*domain.UserResponse, error)
	UpdateProfile(userID string, req *UpdateProfileRequest) (*domain.UserResponse, error)
	ChangePassword(userID string, req *ChangePasswordRequest) error
	List(page, limit int) (*UserListResponse, error)
	AdminUpdate(id string, req *AdminUpdateUserRequest) (*domain.UserResponse, error)
	Delete(id string) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    cache.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, cacheSvc cache.Service) UserService {
	return &userService{userRepo: userRepo, cache: cacheSvc}
}

func (s *userService) GetByID(id string) (*domain.UserResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetUser(context.Background(), id); err == nil {
			var resp domain.UserResponse
			if json.Unmarshal(data, &resp) == nil {
				return &resp, nil
			}
		}
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	resp := user.ToResponse()
	if s.cache != nil {
		s.cache.SetUser(context.Background(), id, resp) //nolint:errcheck
	}
	return resp, nil
}

func (s *userService) UpdateProfile(userID string, req *UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return user.ToResponse(), nil
}

func (s *userService) ChangePassword(userID string, req *ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hash)
	return s.userRepo.Update(user)
}

func (s *userService) List(page, limit int) (*UserListResponse, error) {
	page, limit = normalizePage(page, limit, 20)
	users, total, err := s.userRepo.List((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.UserResponse, len(users))
	for i := range users {
		items[i] = *users[i].ToResponse()
	}

	return &UserListResponse{Users: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *userService) AdminUpdate(id string, req *AdminUpdateUserRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.invalidate(id)
	return user.ToResponse(), nil
}

func (s *userService) Delete(id string) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrUserNotFound
	}
	s.invalidate(id)
	return s.userRepo.Delete(id)
}

func (s *userService) invalidate(userID string) {
	if s.cache != nil {
		s.cache.InvalidateUser(context.Background(), userID) //nolint:errcheck
	}
}

// normalizePage clamps pagination parameters
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
