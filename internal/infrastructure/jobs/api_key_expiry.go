package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"site-weaver.backend/internal/infrastructure/repositories"
	"site-weaver.backend/pkg/logger"
)

// ApiKeyExpiryJob periodically deactivates keys whose expiry has passed.
// Authentication already rejects expired keys on lookup; the sweep keeps the
// stored is_active flag honest for dashboard listings.
type ApiKeyExpiryJob struct {
	repo     *repositories.ApiKeyRepository
	interval time.Duration
	stop     chan struct{}
}

func NewApiKeyExpiryJob(repo *repositories.ApiKeyRepository) *ApiKeyExpiryJob {
	return &ApiKeyExpiryJob{
		repo:     repo,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *ApiKeyExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting API key expiry job")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "API key expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "API key expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *ApiKeyExpiryJob) Stop() {
	close(j.stop)
}

func (j *ApiKeyExpiryJob) sweep(ctx context.Context) {
	count, err := j.repo.DeactivateExpired(ctx)
	if err != nil {
		logger.Error(ctx, "failed to deactivate expired API keys", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Info(ctx, "deactivated expired API keys", zap.Int64("count", count))
	}
}
