package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pixshare/internal/logger"
)

// StartCleanupJob periodically removes expired verification codes and stale
// refresh tokens. It returns when ctx is cancelled.
func (s *Service) StartCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Cleanup job started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			s.runCleanup(ctx)
		}
	}
}

func (s *Service) runCleanup(ctx context.Context) {
	if err := s.codeRepo.DeleteExpired(ctx); err != nil {
		logger.Error("Failed to delete expired verification codes", zap.Error(err))
	}

	// Expired tokens are kept for a grace period for auditing.
	if err := s.tokenRepo.DeleteExpired(ctx, 24*time.Hour); err != nil {
		logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
	}
}
