package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/service"
)

// PostHandler post CRUD endpoints
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	var q domain.PostListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	resp, err := h.postService.List(&q)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp.Posts, common.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// GetByID handles GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	resp, err := h.postService.GetByID(c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Create handles POST /api/posts. Posting to a locked thread fails with
// 403 regardless of role.
func (h *PostHandler) Create(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.postService.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, post)
}

// Update handles PUT /api/posts/:id (owner or admin)
func (h *PostHandler) Update(c *gin.Context) {
	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.postService.Update(middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// Delete handles DELETE /api/posts/:id (owner or admin)
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
