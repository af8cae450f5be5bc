package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amirasaad/payportal/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LockoutStoreTestSuite struct {
	suite.Suite
	newStore func(t *testing.T) cache.LockoutStore
	store    cache.LockoutStore
}

func (s *LockoutStoreTestSuite) SetupTest() {
	s.store = s.newStore(s.T())
}

func lockAfter(n int, until time.Time) func(int) time.Time {
	return func(failures int) time.Time {
		if failures > n {
			return until
		}
		return time.Time{}
	}
}

func (s *LockoutStoreTestSuite) TestEmpty() {
	state, err := s.store.Get(context.Background(), "1.2.3.4")
	s.Require().NoError(err)
	s.Equal(0, state.Failures)
	s.Nil(state.LockedUntil)
}

func (s *LockoutStoreTestSuite) TestRecordFailureLocksAfterThreshold() {
	ctx := context.Background()
	until := time.Now().Add(time.Minute).Truncate(time.Millisecond)

	for i := 1; i <= 2; i++ {
		state, err := s.store.RecordFailure(ctx, "ip", lockAfter(2, until), time.Hour)
		s.Require().NoError(err)
		s.Equal(i, state.Failures)
		s.Nil(state.LockedUntil)
	}

	state, err := s.store.RecordFailure(ctx, "ip", lockAfter(2, until), time.Hour)
	s.Require().NoError(err)
	s.Equal(3, state.Failures)
	s.Require().NotNil(state.LockedUntil)
	s.True(state.Locked(time.Now()))

	stored, err := s.store.Get(ctx, "ip")
	s.Require().NoError(err)
	s.Equal(3, stored.Failures)
	s.Require().NotNil(stored.LockedUntil)
	s.True(until.Equal(*stored.LockedUntil))
}

func (s *LockoutStoreTestSuite) TestClear() {
	ctx := context.Background()
	_, err := s.store.RecordFailure(ctx, "ip", lockAfter(0, time.Now().Add(time.Minute)), time.Hour)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Clear(ctx, "ip"))

	state, err := s.store.Get(ctx, "ip")
	s.Require().NoError(err)
	s.Equal(0, state.Failures)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &LockoutStoreTestSuite{newStore: func(*testing.T) cache.LockoutStore {
		return NewMemoryStore()
	}})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &LockoutStoreTestSuite{newStore: func(t *testing.T) cache.LockoutStore {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedisStore(client, "payportal:")
	}})
}

func TestRedisStore_ExpiresAfterLifetime(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, "payportal:")
	ctx := context.Background()

	_, err := store.RecordFailure(ctx, "ip", lockAfter(5, time.Time{}), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "1", mr.HGet("payportal:lockout:ip", "failures"))

	mr.FastForward(2 * time.Minute)
	state, err := store.Get(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Failures)
}

func TestMemoryStore_ExpiresAfterLifetime(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.RecordFailure(ctx, "ip", lockAfter(5, time.Time{}), time.Minute)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)

	state, err := store.Get(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Failures)
}
