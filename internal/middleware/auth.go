package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/jwt"
)

const contextUserKey = "currentUser"

// JWTAuth verifies the bearer token and attaches the full user record to
// the request context. Missing or invalid credentials end the request with
// 401; a token for a deleted or deactivated account does too.
func JWTAuth(jwtManager *jwt.Manager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load user", err)
			c.Abort()
			return
		}
		if user == nil || !user.IsActive {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalJWTAuth attaches the user when valid credentials are present but
// lets anonymous requests through.
func OptionalJWTAuth(jwtManager *jwt.Manager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if user, err := userRepo.FindByID(claims.UserID); err == nil && user != nil && user.IsActive {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// RequireModerator allows moderators and admins only. Must run after JWTAuth.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if !user.IsModerator() {
			common.ErrorResponse(c, http.StatusForbidden, "Moderator or admin only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admins only. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			common.ErrorResponse(c, http.StatusForbidden, "Admin only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from context; nil when the
// request is anonymous.
func CurrentUser(c *gin.Context) *domain.User {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	if user, ok := v.(*domain.User); ok {
		return user
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
