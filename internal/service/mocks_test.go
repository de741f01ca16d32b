package service

import (
	"time"

	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/ws"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByVerificationToken(token string) (*domain.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByResetToken(token string, now time.Time) (*domain.User, error) {
	args := m.Called(token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	args := m.Called(username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock ThreadRepository ---

type mockThreadRepo struct {
	mock.Mock
}

func (m *mockThreadRepo) Create(thread *domain.Thread) error {
	return m.Called(thread).Error(0)
}

func (m *mockThreadRepo) FindByID(id string) (*domain.Thread, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Thread), args.Error(1)
}

func (m *mockThreadRepo) List(q *domain.ThreadListQuery) ([]domain.Thread, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Thread), args.Get(1).(int64), args.Error(2)
}

func (m *mockThreadRepo) Update(thread *domain.Thread) error {
	return m.Called(thread).Error(0)
}

func (m *mockThreadRepo) SetLocked(id string, locked bool) error {
	return m.Called(id, locked).Error(0)
}

func (m *mockThreadRepo) SetPinned(id string, pinned bool) error {
	return m.Called(id, pinned).Error(0)
}

func (m *mockThreadRepo) IncrementViewCount(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockThreadRepo) ReplaceTags(thread *domain.Thread, tags []domain.Tag) error {
	return m.Called(thread, tags).Error(0)
}

func (m *mockThreadRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) FindByID(id string) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) List(q *domain.PostListQuery) ([]domain.Post, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) Update(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock ReactionRepository ---

type mockReactionRepo struct {
	mock.Mock
}

func (m *mockReactionRepo) Add(reaction *domain.Reaction) error {
	return m.Called(reaction).Error(0)
}

func (m *mockReactionRepo) Remove(postID, userID string) error {
	return m.Called(postID, userID).Error(0)
}

func (m *mockReactionRepo) FindByUserAndPost(userID, postID string) (*domain.Reaction, error) {
	args := m.Called(userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reaction), args.Error(1)
}

func (m *mockReactionRepo) ListByPost(postID, reactionType string) ([]domain.Reaction, error) {
	args := m.Called(postID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reaction), args.Error(1)
}

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(category *domain.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryRepo) FindByID(id string) (*domain.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindByName(name string) (*domain.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListAll() ([]domain.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(category *domain.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock TagRepository ---

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) Create(tag *domain.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagRepo) FindByID(id string) (*domain.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindByName(name string) (*domain.Tag, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindByIDs(ids []string) ([]domain.Tag, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockTagRepo) ListAll() ([]domain.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(notification *domain.Notification) error {
	return m.Called(notification).Error(0)
}

func (m *mockNotificationRepo) FindByID(id string) (*domain.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) List(recipientID string, unreadOnly bool, offset, limit int) ([]domain.Notification, int64, error) {
	args := m.Called(recipientID, unreadOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) UnreadCount(recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(recipientID string) error {
	return m.Called(recipientID).Error(0)
}

// --- Recording fakes for the push path ---

// fakePusher records every event sent to every user.
type fakePusher struct {
	sent map[string][]*ws.Event
}

func newFakePusher() *fakePusher {
	return &fakePusher{sent: map[string][]*ws.Event{}}
}

func (f *fakePusher) SendToUser(userID string, event *ws.Event) {
	f.sent[userID] = append(f.sent[userID], event)
}

// fakeNotifier implements NotificationService for callers that only Notify.
type fakeNotifier struct {
	notified []*domain.Notification
}

func (f *fakeNotifier) List(string, *domain.NotificationListQuery) (*domain.NotificationListResponse, error) {
	return &domain.NotificationListResponse{}, nil
}

func (f *fakeNotifier) UnreadCount(string) (*domain.NotificationSummaryResponse, error) {
	return &domain.NotificationSummaryResponse{}, nil
}

func (f *fakeNotifier) MarkAsRead(string, string) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(string) error { return nil }

func (f *fakeNotifier) Notify(n *domain.Notification) {
	f.notified = append(f.notified, n)
}
