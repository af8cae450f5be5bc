// Package audit persists the login audit trail.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/payportal/pkg/domain/audit"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/metrics"
	"github.com/amirasaad/payportal/pkg/repository"
	"github.com/amirasaad/payportal/pkg/repository/loginattempt"
)

const (
	DefaultWriteTimeout = 5 * time.Second
	DefaultRetention    = 30 * 24 * time.Hour
)

// Recorder writes login attempts off the request path. Write failures are
// logged and counted, never surfaced to the caller.
type Recorder struct {
	uow          repository.UnitOfWork
	writeTimeout time.Duration
	retention    time.Duration
	logger       *slog.Logger
	wg           sync.WaitGroup
}

func New(
	uow repository.UnitOfWork,
	writeTimeout, retention time.Duration,
	logger *slog.Logger,
) *Recorder {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Recorder{
		uow:          uow,
		writeTimeout: writeTimeout,
		retention:    retention,
		logger:       logger,
	}
}

// Record persists attempt asynchronously.
func (r *Recorder) Record(attempt *audit.LoginAttempt) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		defer cancel()
		if err := r.write(ctx, attempt); err != nil {
			metrics.AuditWriteFailuresTotal.Inc()
			r.logger.Error(
				"failed to record login attempt",
				"username", attempt.Username,
				"ip", attempt.IPAddress,
				"error", err,
			)
		}
	}()
}

func (r *Recorder) write(ctx context.Context, attempt *audit.LoginAttempt) error {
	return r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[loginattempt.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.LoginAttemptCreate{
			ID:              attempt.ID,
			Username:        attempt.Username,
			AccountNumber:   attempt.AccountNumber,
			IPAddress:       attempt.IPAddress,
			SuccessfulLogin: attempt.SuccessfulLogin,
			Timestamp:       attempt.Timestamp,
		})
	})
}

// Wait blocks until every pending write has finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Purge deletes attempts older than the retention window relative to now.
func (r *Recorder) Purge(ctx context.Context, now time.Time) (removed int64, err error) {
	cutoff := now.Add(-r.retention)
	err = r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[loginattempt.Repository](uow)
		if err != nil {
			return err
		}
		removed, err = repo.DeleteOlderThan(ctx, cutoff)
		return err
	})
	return
}

// RunRetention purges expired attempts every interval until ctx is done.
func (r *Recorder) RunRetention(ctx context.Context, interval time.Duration) {
	log := r.logger.With("context", "RunRetention")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("login attempt retention stopped")
			return
		case now := <-ticker.C:
			removed, err := r.Purge(ctx, now)
			if err != nil {
				log.Error("login attempt purge failed", "error", err)
				continue
			}
			if removed > 0 {
				log.Info("purged expired login attempts", "removed", removed)
			}
		}
	}
}
