package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/service"
)

// UserHandler profile and admin user management endpoints
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	resp, err := h.userService.GetByID(user.ID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.userService.UpdateProfile(user.ID, &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// ChangePassword handles PUT /api/users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.userService.ChangePassword(user.ID, &req); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Password changed"}, nil)
}

// List handles GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.userService.List(page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp.Users, common.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// GetByID handles GET /api/users/:id (admin)
func (h *UserHandler) GetByID(c *gin.Context) {
	resp, err := h.userService.GetByID(c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// AdminUpdate handles PUT /api/users/:id (admin)
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	var req service.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.userService.AdminUpdate(c.Param("id"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Delete handles DELETE /api/users/:id (admin). The account is deactivated,
// not removed, so the user's content keeps its author.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
