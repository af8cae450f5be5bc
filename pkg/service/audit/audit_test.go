package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/payportal/internal/fixtures"
	"github.com/amirasaad/payportal/pkg/domain/audit"
	"github.com/amirasaad/payportal/pkg/dto"
	auditsvc "github.com/amirasaad/payportal/pkg/service/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	attempts := fixtures.NewLoginAttempts()
	rec := auditsvc.New(fixtures.NewUnitOfWork(attempts), time.Second, 0, slog.Default())

	rec.Record(audit.NewLoginAttempt("alice", "12345678", "10.0.0.1", true))
	rec.Record(audit.NewLoginAttempt("mallory", "$gt", "10.0.0.2", false))
	rec.Wait()

	all := attempts.All()
	require.Len(t, all, 2)
	byUser := map[string]dto.LoginAttemptCreate{}
	for _, a := range all {
		byUser[a.Username] = a
	}
	assert.True(t, byUser["alice"].SuccessfulLogin)
	assert.Equal(t, "10.0.0.1", byUser["alice"].IPAddress)
	assert.False(t, byUser["mallory"].SuccessfulLogin)
	assert.Equal(t, "$gt", byUser["mallory"].AccountNumber)
}

func TestRecord_FailureIsSwallowed(t *testing.T) {
	attempts := fixtures.NewLoginAttempts()
	attempts.Err = errors.New("disk full")
	rec := auditsvc.New(fixtures.NewUnitOfWork(attempts), time.Second, 0, slog.Default())

	assert.NotPanics(t, func() {
		rec.Record(audit.NewLoginAttempt("alice", "12345678", "10.0.0.1", false))
		rec.Wait()
	})
	assert.Empty(t, attempts.All())
}

func TestPurge(t *testing.T) {
	attempts := fixtures.NewLoginAttempts()
	now := time.Now().UTC()
	ctx := context.Background()
	for _, age := range []time.Duration{time.Hour, 29 * 24 * time.Hour, 31 * 24 * time.Hour, 90 * 24 * time.Hour} {
		require.NoError(t, attempts.Create(ctx, &dto.LoginAttemptCreate{
			ID:        uuid.New(),
			Username:  "alice",
			Timestamp: now.Add(-age),
		}))
	}
	rec := auditsvc.New(fixtures.NewUnitOfWork(attempts), 0, 30*24*time.Hour, slog.Default())

	removed, err := rec.Purge(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Len(t, attempts.All(), 2)
}

func TestRunRetention_StopsOnCancel(t *testing.T) {
	attempts := fixtures.NewLoginAttempts()
	rec := auditsvc.New(fixtures.NewUnitOfWork(attempts), 0, time.Millisecond, slog.Default())
	require.NoError(t, attempts.Create(context.Background(), &dto.LoginAttemptCreate{
		ID:        uuid.New(),
		Timestamp: time.Now().Add(-time.Hour),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rec.RunRetention(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(attempts.All()) == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retention worker did not stop")
	}
}
