package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/service"
)

// ThreadHandler thread CRUD and moderation endpoints
type ThreadHandler struct {
	threadService service.ThreadService
}

// NewThreadHandler creates a new ThreadHandler
func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// List handles GET /api/threads
func (h *ThreadHandler) List(c *gin.Context) {
	var q domain.ThreadListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	resp, err := h.threadService.List(&q)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp.Threads, common.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// GetByID handles GET /api/threads/:id. Each fetch counts as a view.
func (h *ThreadHandler) GetByID(c *gin.Context) {
	resp, err := h.threadService.GetByID(c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Create handles POST /api/threads
func (h *ThreadHandler) Create(c *gin.Context) {
	var req domain.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	thread, err := h.threadService.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, thread)
}

// Update handles PUT /api/threads/:id (owner or admin)
func (h *ThreadHandler) Update(c *gin.Context) {
	var req domain.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	thread, err := h.threadService.Update(middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, thread, nil)
}

// Delete handles DELETE /api/threads/:id (owner or admin)
func (h *ThreadHandler) Delete(c *gin.Context) {
	if err := h.threadService.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLock handles PUT /api/threads/:id/lock (moderator+)
func (h *ThreadHandler) ToggleLock(c *gin.Context) {
	thread, err := h.threadService.ToggleLock(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, thread, nil)
}

// TogglePin handles PUT /api/threads/:id/pin (moderator+)
func (h *ThreadHandler) TogglePin(c *gin.Context) {
	thread, err := h.threadService.TogglePin(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, thread, nil)
}
