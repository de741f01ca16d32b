package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/service"
)

// ReactionHandler per-post reaction endpoints
type ReactionHandler struct {
	reactionService service.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// ListByPost handles GET /api/reactions/posts/:postId with optional ?type=
func (h *ReactionHandler) ListByPost(c *gin.Context) {
	reactions, err := h.reactionService.ListByPost(c.Param("postId"), c.Query("type"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, reactions, nil)
}

// Add handles POST /api/reactions/posts/:postId. A second reaction from
// the same user comes back as 400 with code CONFLICT and leaves the counter
// untouched.
func (h *ReactionHandler) Add(c *gin.Context) {
	var req domain.AddReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reaction, err := h.reactionService.Add(middleware.CurrentUser(c), c.Param("postId"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, reaction)
}

// Remove handles DELETE /api/reactions/posts/:postId
func (h *ReactionHandler) Remove(c *gin.Context) {
	if err := h.reactionService.Remove(middleware.CurrentUser(c), c.Param("postId")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
