package service

import (
	"Townsquare/internal/model"
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo is a mock of repository.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetUserWithCategories(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) UpsertUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateCity(ctx context.Context, id uint64, city string) error {
	args := m.Called(ctx, id, city)
	return args.Error(0)
}

func (m *MockUserRepo) ReplaceCategories(ctx context.Context, userID uint64, categoryIDs []uint64) error {
	args := m.Called(ctx, userID, categoryIDs)
	return args.Error(0)
}

func (m *MockUserRepo) GetSubscribers(ctx context.Context, city string, categoryIDs []uint64, excludeUserID uint64) ([]*model.User, error) {
	args := m.Called(ctx, city, categoryIDs, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

// MockPostRepo is a mock of repository.PostRepo
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) CreatePost(ctx context.Context, post *model.Post, categories []*model.PostCategory) error {
	args := m.Called(ctx, post, categories)
	return args.Error(0)
}

func (m *MockPostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) GetUserPosts(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepo) GetPendingPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepo) TransitionStatus(ctx context.Context, postID uint64, from, to model.PostStatus, publishedAt *time.Time, record *model.ModerationRecord) (bool, error) {
	args := m.Called(ctx, postID, from, to, publishedAt, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepo) GetFeedPosts(ctx context.Context, city string, categoryIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, city, categoryIDs, now, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepo) GetExpiredPosts(ctx context.Context, now time.Time) ([]*model.Post, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

// MockCategoryRepo is a mock of repository.CategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) ListActive(ctx context.Context) ([]*model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockModerationRepo is a mock of repository.ModerationRepo
type MockModerationRepo struct {
	mock.Mock
}

func (m *MockModerationRepo) GetHistory(ctx context.Context, postID uint64) ([]*model.ModerationRecord, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ModerationRecord), args.Error(1)
}

// MockPostActionRepo is a mock of repository.PostActionRepo
type MockPostActionRepo struct {
	mock.Mock
}

func (m *MockPostActionRepo) CreateLike(ctx context.Context, like *model.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockPostActionRepo) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostActionRepo) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostActionRepo) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostActionRepo) GetLikedPosts(ctx context.Context, userID uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, userID, now, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

// MockNotifyService is a mock of NotifyService
type MockNotifyService struct {
	mock.Mock
}

func (m *MockNotifyService) NotifyPublished(ctx context.Context, post *model.Post) (*DeliveryReport, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeliveryReport), args.Error(1)
}

func (m *MockNotifyService) AnnounceToModeration(ctx context.Context, post *model.Post) {
	m.Called(ctx, post)
}

func (m *MockNotifyService) NotifyAuthorArchived(ctx context.Context, post *model.Post) {
	m.Called(ctx, post)
}

// MockDeliveryChannel is a mock of DeliveryChannel
type MockDeliveryChannel struct {
	mock.Mock
}

func (m *MockDeliveryChannel) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockDeliveryChannel) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	args := m.Called(ctx, chatID, photoURL, caption)
	return args.Error(0)
}

// MockFileStorage is a mock of storage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, reader io.Reader, size int64, contentType, ext string) (string, error) {
	args := m.Called(ctx, reader, size, contentType, ext)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Resolve(ctx context.Context, mediaID string) (string, error) {
	args := m.Called(ctx, mediaID)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, mediaID string) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
