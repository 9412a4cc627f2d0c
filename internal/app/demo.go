package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

const defaultDemoInterval = 250 * time.Millisecond

type demoEvent struct {
	level     slog.Level
	component string
	msg       string
	attrs     func(r *rand.Rand) []any
}

var demoEvents = []demoEvent{
	{slog.LevelInfo, "api.http", "request served", func(r *rand.Rand) []any {
		paths := []string{"/health", "/v1/users", "/v1/orders", "/v1/orders/42"}
		return []any{slog.Group("req",
			slog.String("method", "GET"),
			slog.String("path", paths[r.IntN(len(paths))]),
			slog.Int("status", 200),
			slog.Duration("took", time.Duration(r.IntN(900))*time.Millisecond),
		)}
	}},
	{slog.LevelWarn, "api.http", "slow request", func(r *rand.Rand) []any {
		return []any{"path", "/v1/reports", "took", time.Duration(2+r.IntN(5)) * time.Second}
	}},
	{slog.LevelDebug, "db.pool", "connection checked out", func(r *rand.Rand) []any {
		return []any{"open", r.IntN(20), "idle", r.IntN(5)}
	}},
	{slog.LevelInfo, "db.query", "query finished", func(r *rand.Rand) []any {
		return []any{"table", "orders", "rows", r.IntN(500)}
	}},
	{slog.LevelError, "db.query", "query failed", func(r *rand.Rand) []any {
		return []any{"table", "orders", "error", "deadline exceeded"}
	}},
	{slog.LevelInfo, "worker", "job complete", func(r *rand.Rand) []any {
		return []any{"job", r.IntN(10_000), "queue", "email"}
	}},
	{slog.LevelInfo, "worker", "payload", func(r *rand.Rand) []any {
		return []any{"body", strings.Repeat("lorem ipsum ", 4+r.IntN(12))}
	}},
	{slog.LevelDebug, "scheduler", "tick", func(r *rand.Rand) []any {
		return []any{"pending", r.IntN(8)}
	}},
}

// Demo logs synthetic traffic from several components until ctx ends.
func Demo(ctx context.Context, log *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultDemoInterval
	}
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		emitDemo(ctx, log, r)
	}
}

func emitDemo(ctx context.Context, log *slog.Logger, r *rand.Rand) {
	ev := demoEvents[r.IntN(len(demoEvents))]
	args := append([]any{"component", ev.component}, ev.attrs(r)...)
	log.Log(ctx, ev.level, ev.msg, args...)
}
