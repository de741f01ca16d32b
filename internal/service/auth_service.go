package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse login/register response
type LoginResponse struct {
	Token string               `json:"token"`
	User  *domain.UserResponse `json:"user"`
}

// AuthService authentication business logic
type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(req *LoginRequest) (*LoginResponse, error)
	RefreshToken(token string) (string, error)
	VerifyEmail(token string) error
	ForgotPassword(email string) (string, error)
	ResetPassword(token, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{userRepo: userRepo, jwtManager: jwtManager}
}

// Register creates a new user account and signs it in
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:               req.Username,
		Email:                  req.Email,
		Password:               string(hash),
		Role:                   domain.RoleUser,
		IsActive:               true,
		EmailVerificationToken: randomToken(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

// Login authenticates by email and password
func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

// RefreshToken exchanges a still-valid token for a fresh one
func (s *authService) RefreshToken(token string) (string, error) {
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", common.ErrInvalidToken
	}

	return s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
}

// VerifyEmail flips the verified flag for the token holder
func (s *authService) VerifyEmail(token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrInvalidToken
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	return s.userRepo.Update(user)
}

// ForgotPassword issues a reset token with a one-hour expiry. The token is
// returned to the caller for delivery; no mailer is wired here.
func (s *authService) ForgotPassword(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", common.ErrUserNotFound
	}

	token := randomToken()
	expires := time.Now().Add(time.Hour)
	user.PasswordResetToken = token
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword sets a new password when the token is valid and unexpired
func (s *authService) ResetPassword(token, password string) error {
	user, err := s.userRepo.FindByResetToken(token, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hash)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	return s.userRepo.Update(user)
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
