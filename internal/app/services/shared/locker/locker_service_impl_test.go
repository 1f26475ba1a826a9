package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) CompareAndExpire(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "billing:ipn:PAY-1", mock.AnythingOfType("string"), 30*time.Second).Return(true, nil)

		svc := NewLockService(repo, zap.NewNop())
		acquired, value, err := svc.TryLock(ctx, "billing:ipn:PAY-1", 30*time.Second)

		assert.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
		repo.AssertExpectations(t)
	})

	t.Run("Held Elsewhere", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "billing:ipn:PAY-1", mock.Anything, time.Second).Return(false, nil)

		svc := NewLockService(repo, zap.NewNop())
		acquired, value, err := svc.TryLock(ctx, "billing:ipn:PAY-1", time.Second)

		assert.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("Redis Error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.Anything, time.Second).Return(false, errors.New("connection refused"))

		svc := NewLockService(repo, zap.NewNop())
		acquired, _, err := svc.TryLock(ctx, "k", time.Second)

		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owned Lock Is Released", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "v1").Return(true, nil)

		svc := NewLockService(repo, zap.NewNop())
		assert.NoError(t, svc.Unlock(ctx, "k", "v1"))
		repo.AssertExpectations(t)
	})

	t.Run("Lost Lock Is Not An Error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "v1").Return(false, nil)

		svc := NewLockService(repo, zap.NewNop())
		assert.NoError(t, svc.Unlock(ctx, "k", "v1"))
	})
}

func TestLockService_Refresh(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRedisRepository)
	repo.On("CompareAndExpire", ctx, "leader", "mine", time.Minute).Return(true, nil).Once()
	repo.On("CompareAndExpire", ctx, "leader", "stale", time.Minute).Return(false, nil).Once()

	svc := NewLockService(repo, zap.NewNop())
	assert.NoError(t, svc.Refresh(ctx, "leader", "mine", time.Minute))
	assert.Error(t, svc.Refresh(ctx, "leader", "stale", time.Minute))
}
