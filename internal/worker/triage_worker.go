package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartTriageSweep runs the automatic processing pass on a fixed cadence
// until the context is cancelled. A zero interval disables the sweep;
// tickets are then only processed at creation time and via the /process
// endpoint.
func StartTriageSweep(ctx context.Context, svc *service.TriageService, interval time.Duration, logger *zap.Logger) {
	if svc == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed, err := svc.ProcessOpenTickets(ctx)
				if err != nil {
					logger.Error("triage sweep failed", zap.Error(err))
					continue
				}
				if processed > 0 {
					logger.Info("triage sweep completed", zap.Int("processed", processed))
				}
			}
		}
	}()
}
