package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
)

// RunExpirySweeper calls SweepExpired every interval until ctx is cancelled.
// A sweep that fails is logged and retried on the next tick.
func RunExpirySweeper(ctx context.Context, lifecycle portssvc.DocumentLifecycleSvc, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		logger.Info("Expiry sweeper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("Expiry sweeper started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case tick := <-ticker.C:
			result, err := lifecycle.SweepExpired(ctx, tick)
			if err != nil {
				logger.Error("Expiry sweep failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("Expiry sweep completed", slog.Int("overdue", result.Overdue), slog.Int("expired", result.Expired))
		}
	}
}
