package service

import (
	"testing"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, cache.NewService(nil))

	hash, _ := bcrypt.GenerateFromPassword([]byte("current"), bcrypt.MinCost)
	userRepo.On("FindByID", "u1").Return(&domain.User{ID: "u1", Password: string(hash)}, nil)

	err := svc.ChangePassword("u1", &ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newsecret"})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, cache.NewService(nil))

	hash, _ := bcrypt.GenerateFromPassword([]byte("current"), bcrypt.MinCost)
	user := &domain.User{ID: "u1", Password: string(hash)}
	userRepo.On("FindByID", "u1").Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	err := svc.ChangePassword("u1", &ChangePasswordRequest{CurrentPassword: "current", NewPassword: "newsecret"})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, cache.NewService(nil))

	user := &domain.User{ID: "u1", Username: "alice", Avatar: "old.png", Bio: "old bio"}
	userRepo.On("FindByID", "u1").Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	bio := "new bio"
	resp, err := svc.UpdateProfile("u1", &UpdateProfileRequest{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", resp.Bio)
	assert.Equal(t, "old.png", resp.Avatar)
}

func TestAdminUpdate_RoleAndActivation(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, cache.NewService(nil))

	user := &domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true}
	userRepo.On("FindByID", "u1").Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	role := domain.RoleModerator
	inactive := false
	resp, err := svc.AdminUpdate("u1", &AdminUpdateUserRequest{Role: &role, IsActive: &inactive})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, resp.Role)
	assert.False(t, user.IsActive)
}

func TestGetUser_Missing(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, cache.NewService(nil))

	userRepo.On("FindByID", "ghost").Return(nil, nil)

	_, err := svc.GetByID("ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
