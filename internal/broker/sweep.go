package broker

import (
	"context"
	"time"
)

func (b *Broker) sweepLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.SweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sweepSessions(ctx)
		}
	}
}

func (b *Broker) sweepSessions(ctx context.Context) {
	removed, err := b.sessions.Sweep(ctx)
	if err != nil {
		b.logger.Error("failed to sweep sessions", "error", err)
		return
	}
	if removed > 0 {
		b.metrics.SessionsSwept(removed)
		b.logger.Info("swept idle sessions", "count", removed)
	}
}
