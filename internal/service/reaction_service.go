package service

import (
	"fmt"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/internal/ws"
)

// ReactionService reaction business logic. One reaction per (user, post)
// regardless of type; the repository's unique constraint settles races.
type ReactionService interface {
	ListByPost(postID, reactionType string) ([]domain.Reaction, error)
	Add(actor *domain.User, postID string, req *domain.AddReactionRequest) (*domain.Reaction, error)
	Remove(actor *domain.User, postID string) error
}

type reactionService struct {
	reactionRepo  repository.ReactionRepository
	postRepo      repository.PostRepository
	notifications NotificationService
	pusher        Pusher
}

// NewReactionService creates a new ReactionService
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	notifications NotificationService,
	pusher Pusher,
) ReactionService {
	return &reactionService{
		reactionRepo:  reactionRepo,
		postRepo:      postRepo,
		notifications: notifications,
		pusher:        pusher,
	}
}

func (s *reactionService) ListByPost(postID, reactionType string) ([]domain.Reaction, error) {
	return s.reactionRepo.ListByPost(postID, reactionType)
}

func (s *reactionService) Add(actor *domain.User, postID string, req *domain.AddReactionRequest) (*domain.Reaction, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, common.ErrPostNotFound
	}

	reaction := &domain.Reaction{
		Type:   req.Type,
		UserID: actor.ID,
		PostID: postID,
	}
	if err := s.reactionRepo.Add(reaction); err != nil {
		return nil, err
	}

	// Notify the post's author unless they reacted to their own post
	if post.UserID != actor.ID {
		s.notifications.Notify(&domain.Notification{
			Type:        domain.NotificationReaction,
			Message:     fmt.Sprintf("%s reacted to your post with %s", actor.Username, req.Type),
			RecipientID: post.UserID,
			SenderID:    &actor.ID,
			PostID:      &postID,
			ThreadID:    &post.ThreadID,
		})
		if s.pusher != nil {
			s.pusher.SendToUser(post.UserID, &ws.Event{
				Type:    ws.EventNewReaction,
				Payload: map[string]string{"post_id": postID, "reaction_type": req.Type},
			})
		}
	}

	return reaction, nil
}

func (s *reactionService) Remove(actor *domain.User, postID string) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return common.ErrPostNotFound
	}

	return s.reactionRepo.Remove(postID, actor.ID)
}
