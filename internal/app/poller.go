package app

import (
	"context"
	"time"

	"pkt.systems/pslog"

	"github.com/five82/logterm/internal/ingest"
)

const (
	defaultStatsInterval = 5 * time.Second

	// backlogWarn is the undelivered message count worth a warning.
	backlogWarn = 10_000
)

// StatsSource reports ingest traffic. *logterm.Terminal satisfies it.
type StatsSource interface {
	Stats() ingest.Stats
}

// StartStatsPoller launches a background goroutine that watches ingest
// traffic at a fixed cadence and logs drops and backlog. It returns
// immediately.
func StartStatsPoller(ctx context.Context, source StatsSource, interval time.Duration) {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last ingest.Stats
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			last = checkStats(ctx, source.Stats(), last)
		}
	}()
}

// checkStats logs what changed since prev and returns cur.
func checkStats(ctx context.Context, cur, prev ingest.Stats) ingest.Stats {
	log := pslog.Ctx(ctx)
	if cur.Dropped != prev.Dropped {
		log.Debug("records filtered", "dropped", cur.Dropped-prev.Dropped, "total", cur.Dropped)
	}
	if backlog := cur.Pushed - cur.Delivered; backlog >= backlogWarn {
		log.Warn("ingest backlog growing", "pending", backlog)
	}
	return cur
}
