package service

import (
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/internal/ws"
	"github.com/openagora/agora-backend/pkg/logger"
)

// Pusher delivers events to a user's live connections. The concrete
// implementation is the ws.Hub; the indirection keeps the fan-out
// independent of a single in-process registry.
type Pusher interface {
	SendToUser(userID string, event *ws.Event)
}

// NotificationService notification read/write logic plus the fan-out used
// by posts and reactions.
type NotificationService interface {
	List(recipientID string, q *domain.NotificationListQuery) (*domain.NotificationListResponse, error)
	UnreadCount(recipientID string) (*domain.NotificationSummaryResponse, error)
	MarkAsRead(recipientID, notificationID string) error
	MarkAllAsRead(recipientID string) error

	// Notify persists a notification and pushes it to the recipient's open
	// connections, if any. Errors are logged and swallowed: a failed
	// notification must never fail the mutation that triggered it.
	Notify(n *domain.Notification)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

func (s *notificationService) List(recipientID string, q *domain.NotificationListQuery) (*domain.NotificationListResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit, 20)

	notifications, total, err := s.repo.List(recipientID, q.UnreadOnly, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.UnreadCount(recipientID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (s *notificationService) UnreadCount(recipientID string) (*domain.NotificationSummaryResponse, error) {
	count, err := s.repo.UnreadCount(recipientID)
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: int(count)}, nil
}

func (s *notificationService) MarkAsRead(recipientID, notificationID string) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	// Another user's notification reads as missing so IDs can't be probed.
	if n == nil || n.RecipientID != recipientID {
		return common.ErrNotificationNotFound
	}

	if err := s.repo.MarkAsRead(notificationID); err != nil {
		return err
	}

	// Sync the read state to the user's other open connections
	if s.pusher != nil {
		s.pusher.SendToUser(recipientID, &ws.Event{Type: ws.EventRead, Payload: notificationID})
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(recipientID string) error {
	if err := s.repo.MarkAllAsRead(recipientID); err != nil {
		return err
	}

	if s.pusher != nil {
		s.pusher.SendToUser(recipientID, &ws.Event{Type: ws.EventAllRead})
	}
	return nil
}

func (s *notificationService) Notify(n *domain.Notification) {
	if err := s.repo.Create(n); err != nil {
		logger.GetLogger().Error().
			Err(err).
			Str("recipient_id", n.RecipientID).
			Str("type", n.Type).
			Msg("notification create failed")
		return
	}

	if s.pusher != nil {
		s.pusher.SendToUser(n.RecipientID, &ws.Event{Type: ws.EventNotification, Payload: n})
	}
}
