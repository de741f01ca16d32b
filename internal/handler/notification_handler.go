package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/service"
)

// NotificationHandler notification inbox endpoints
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/notifications with optional ?unread_only=true
func (h *NotificationHandler) List(c *gin.Context) {
	var q domain.NotificationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.notificationService.List(user.ID, &q)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"notifications": resp.Notifications,
		"unread_count":  resp.UnreadCount,
	}, common.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	resp, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// MarkAsRead handles PATCH /api/notifications/:id/read. Someone else's
// notification is indistinguishable from a missing one: both are 404.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.notificationService.MarkAsRead(user.ID, c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Notification marked as read"}, nil)
}

// MarkAllAsRead handles PATCH /api/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.notificationService.MarkAllAsRead(user.ID); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "All notifications marked as read"}, nil)
}
