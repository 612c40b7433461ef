package job

import (
	"Townsquare/internal/model"
	"Townsquare/internal/service"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *model.Post, categories []*model.PostCategory) error {
	args := m.Called(ctx, post, categories)
	return args.Error(0)
}

func (m *mockPostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) GetUserPosts(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *mockPostRepo) GetPendingPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *mockPostRepo) TransitionStatus(ctx context.Context, postID uint64, from, to model.PostStatus, publishedAt *time.Time, record *model.ModerationRecord) (bool, error) {
	args := m.Called(ctx, postID, from, to, publishedAt, record)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) GetFeedPosts(ctx context.Context, city string, categoryIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, city, categoryIDs, now, limit, offset)
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) GetExpiredPosts(ctx context.Context, now time.Time) ([]*model.Post, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

type mockNotifyService struct {
	mock.Mock
}

func (m *mockNotifyService) NotifyPublished(ctx context.Context, post *model.Post) (*service.DeliveryReport, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeliveryReport), args.Error(1)
}

func (m *mockNotifyService) AnnounceToModeration(ctx context.Context, post *model.Post) {
	m.Called(ctx, post)
}

func (m *mockNotifyService) NotifyAuthorArchived(ctx context.Context, post *model.Post) {
	m.Called(ctx, post)
}

func expiredPost(id uint64, eventAt time.Time) *model.Post {
	return &model.Post{
		ID:       id,
		Title:    "已结束的活动",
		AuthorID: 100,
		City:     "上海",
		Status:   model.PostStatusPublished,
		EventAt:  &eventAt,
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("archives expired posts and notifies authors", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		notifySvc := new(mockNotifyService)
		sweeper := NewExpirySweeper(postRepo, notifySvc, 0, 0)
		sweeper.nowFn = func() time.Time { return now }

		postRepo.On("GetExpiredPosts", mock.Anything, now).Return([]*model.Post{
			expiredPost(1, now.Add(-time.Hour)),
			expiredPost(2, now.Add(-2*time.Hour)),
		}, nil)
		postRepo.On("TransitionStatus", mock.Anything, uint64(1),
			model.PostStatusPublished, model.PostStatusArchived,
			(*time.Time)(nil), (*model.ModerationRecord)(nil)).Return(true, nil)
		postRepo.On("TransitionStatus", mock.Anything, uint64(2),
			model.PostStatusPublished, model.PostStatusArchived,
			(*time.Time)(nil), (*model.ModerationRecord)(nil)).Return(true, nil)
		notifySvc.On("NotifyAuthorArchived", mock.Anything, mock.AnythingOfType("*model.Post")).Twice()

		archived, err := sweeper.Sweep(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, archived)
		postRepo.AssertExpectations(t)
		notifySvc.AssertExpectations(t)
	})

	t.Run("skips posts another instance already archived", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		notifySvc := new(mockNotifyService)
		sweeper := NewExpirySweeper(postRepo, notifySvc, 0, 0)
		sweeper.nowFn = func() time.Time { return now }

		postRepo.On("GetExpiredPosts", mock.Anything, now).Return([]*model.Post{
			expiredPost(1, now.Add(-time.Hour)),
		}, nil)
		postRepo.On("TransitionStatus", mock.Anything, uint64(1),
			model.PostStatusPublished, model.PostStatusArchived,
			(*time.Time)(nil), (*model.ModerationRecord)(nil)).Return(false, nil)

		archived, err := sweeper.Sweep(ctx)

		assert.NoError(t, err)
		assert.Zero(t, archived)
		notifySvc.AssertNotCalled(t, "NotifyAuthorArchived", mock.Anything, mock.Anything)
	})

	t.Run("nothing expired", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		sweeper := NewExpirySweeper(postRepo, new(mockNotifyService), 0, 0)
		sweeper.nowFn = func() time.Time { return now }

		postRepo.On("GetExpiredPosts", mock.Anything, now).Return([]*model.Post{}, nil)

		archived, err := sweeper.Sweep(ctx)

		assert.NoError(t, err)
		assert.Zero(t, archived)
	})

	t.Run("scan failure surfaces for backoff", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		sweeper := NewExpirySweeper(postRepo, new(mockNotifyService), 0, 0)
		sweeper.nowFn = func() time.Time { return now }

		postRepo.On("GetExpiredPosts", mock.Anything, now).Return(nil, assert.AnError)

		_, err := sweeper.Sweep(ctx)

		assert.Error(t, err)
	})

	t.Run("one failed archive does not block the rest", func(t *testing.T) {
		postRepo := new(mockPostRepo)
		notifySvc := new(mockNotifyService)
		sweeper := NewExpirySweeper(postRepo, notifySvc, 0, 0)
		sweeper.nowFn = func() time.Time { return now }

		postRepo.On("GetExpiredPosts", mock.Anything, now).Return([]*model.Post{
			expiredPost(1, now.Add(-time.Hour)),
			expiredPost(2, now.Add(-time.Hour)),
		}, nil)
		postRepo.On("TransitionStatus", mock.Anything, uint64(1),
			model.PostStatusPublished, model.PostStatusArchived,
			(*time.Time)(nil), (*model.ModerationRecord)(nil)).Return(false, assert.AnError)
		postRepo.On("TransitionStatus", mock.Anything, uint64(2),
			model.PostStatusPublished, model.PostStatusArchived,
			(*time.Time)(nil), (*model.ModerationRecord)(nil)).Return(true, nil)
		notifySvc.On("NotifyAuthorArchived", mock.Anything, mock.AnythingOfType("*model.Post")).Once()

		archived, err := sweeper.Sweep(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, archived)
	})
}

func TestStartStopsOnCancel(t *testing.T) {
	postRepo := new(mockPostRepo)
	sweeper := NewExpirySweeper(postRepo, new(mockNotifyService), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
