package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"tujenge.backend/pkg/logger"
)

// ApplicationExpirer rejects submitted applications nobody reviewed
type ApplicationExpirer interface {
	ExpireStaleApplications(ctx context.Context, olderThan time.Duration) (int, error)
}

// ApplicationExpiryJob periodically expires stale loan applications
type ApplicationExpiryJob struct {
	expirer  ApplicationExpirer
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewApplicationExpiryJob(expirer ApplicationExpirer, maxAge time.Duration) *ApplicationExpiryJob {
	return &ApplicationExpiryJob{
		expirer:  expirer,
		maxAge:   maxAge,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

func (j *ApplicationExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "application expiry job started",
		zap.Duration("max_age", j.maxAge),
		zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "application expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "application expiry job stopped")
			return
		case <-ticker.C:
			j.expireStale(ctx)
		}
	}
}

func (j *ApplicationExpiryJob) Stop() {
	close(j.stop)
}

func (j *ApplicationExpiryJob) expireStale(ctx context.Context) {
	expired, err := j.expirer.ExpireStaleApplications(ctx, j.maxAge)
	if err != nil {
		logger.Error(ctx, "failed to expire stale applications", zap.Error(err))
		return
	}
	if expired > 0 {
		logger.Info(ctx, "expired stale applications", zap.Int("count", expired))
	}
}
