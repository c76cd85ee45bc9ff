package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"promo-engine/internal/pkg/config"
	"promo-engine/internal/usecase"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Invoke(startAuditPruner),
)

// startAuditPruner deletes decisions past the retention window on a
// fixed interval for the lifetime of the process.
func startAuditPruner(lc fx.Lifecycle, auditUseCase usecase.AuditUseCase, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Audit.PruneInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if _, err := auditUseCase.PruneExpired(ctx); err != nil {
							slog.Warn("audit pruning failed", "error", err.Error())
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
