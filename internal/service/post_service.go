package service

import (
	"fmt"

	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/internal/ws"
	"github.com/openagora/agora-backend/pkg/markdown"
)

// PostService post business logic
type PostService interface {
	List(q *domain.PostListQuery) (*domain.PostListResponse, error)
	GetByID(id string) (*domain.PostResponse, error)
	Create(actor *domain.User, req *domain.CreatePostRequest) (*domain.Post, error)
	Update(actor *domain.User, id string, req *domain.UpdatePostRequest) (*domain.Post, error)
	Delete(actor *domain.User, id string) error
}

type postService struct {
	postRepo      repository.PostRepository
	threadRepo    repository.ThreadRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	pusher        Pusher
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repository.PostRepository,
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	pusher Pusher,
) PostService {
	return &postService{
		postRepo:      postRepo,
		threadRepo:    threadRepo,
		userRepo:      userRepo,
		notifications: notifications,
		pusher:        pusher,
	}
}

func (s *postService) List(q *domain.PostListQuery) (*domain.PostListResponse, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit, 20)

	posts, total, err := s.postRepo.List(q)
	if err != nil {
		return nil, err
	}

	return &domain.PostListResponse{
		Posts: posts,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func (s *postService) GetByID(id string) (*domain.PostResponse, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, common.ErrPostNotFound
	}

	return &domain.PostResponse{
		Post:        *post,
		ContentHTML: markdown.Render(post.Content),
	}, nil
}

// Create adds a post to a thread. Posting to a locked thread is rejected
// for every role; only unlocking the thread permits new posts.
func (s *postService) Create(actor *domain.User, req *domain.CreatePostRequest) (*domain.Post, error) {
	thread, err := s.threadRepo.FindByID(req.ThreadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, common.ErrThreadNotFound
	}
	if thread.IsLocked {
		return nil, common.ErrThreadLocked
	}

	post := &domain.Post{
		Content:  req.Content,
		UserID:   actor.ID,
		ThreadID: req.ThreadID,
		IsActive: true,
	}

	var parent *domain.Post
	if req.ParentID != nil {
		parent, err = s.postRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, common.ErrParentPostNotFound
		}
		post.ParentID = req.ParentID
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// Reply notification for the parent post's author; self-replies stay
	// silent.
	if parent != nil && parent.UserID != actor.ID {
		parentID := parent.ID
		s.notifications.Notify(&domain.Notification{
			Type:        domain.NotificationNewReply,
			Message:     fmt.Sprintf("%s replied to your post", actor.Username),
			RecipientID: parent.UserID,
			SenderID:    &actor.ID,
			PostID:      &post.ID,
			ThreadID:    &req.ThreadID,
		})
		if s.pusher != nil {
			s.pusher.SendToUser(parent.UserID, &ws.Event{
				Type:    ws.EventNewPost,
				Payload: map[string]string{"post_id": post.ID, "parent_id": parentID, "thread_id": req.ThreadID},
			})
		}
	}

	s.notifyMentions(actor, post, parent)

	return post, nil
}

// notifyMentions fans out mention notifications for @username references in
// the post body. Self-mentions and the reply recipient are skipped so nobody
// gets notified twice for one post.
func (s *postService) notifyMentions(actor *domain.User, post *domain.Post, parent *domain.Post) {
	for _, username := range common.ExtractMentions(post.Content) {
		user, err := s.userRepo.FindByUsername(username)
		if err != nil || user == nil || !user.IsActive {
			continue
		}
		if user.ID == actor.ID {
			continue
		}
		if parent != nil && user.ID == parent.UserID {
			continue
		}
		s.notifications.Notify(&domain.Notification{
			Type:        domain.NotificationMention,
			Message:     fmt.Sprintf("%s mentioned you in a post", actor.Username),
			RecipientID: user.ID,
			SenderID:    &actor.ID,
			PostID:      &post.ID,
			ThreadID:    &post.ThreadID,
		})
	}
}

func (s *postService) Update(actor *domain.User, id string, req *domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, common.ErrPostNotFound
	}

	if post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	if post.Thread != nil && post.Thread.IsLocked {
		return nil, common.ErrThreadLocked
	}

	post.Content = req.Content

	// Avoid writing back preloaded associations
	post.User = nil
	post.Thread = nil
	post.Parent = nil
	post.Replies = nil
	post.Reactions = nil

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(actor *domain.User, id string) error {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return common.ErrPostNotFound
	}

	if post.UserID != actor.ID && !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if post.Thread != nil && post.Thread.IsLocked {
		return common.ErrThreadLocked
	}

	return s.postRepo.Delete(id)
}
