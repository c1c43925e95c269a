// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/minhdao/carlex/internal/job"
	"github.com/minhdao/carlex/internal/platform/config"
	"github.com/minhdao/carlex/internal/platform/constants"
	pgstore "github.com/minhdao/carlex/internal/platform/postgres"
	redisstore "github.com/minhdao/carlex/internal/platform/redis"
	"github.com/minhdao/carlex/pkg/slice"
)

// runtime bundles the shared process dependencies every subcommand wires:
// configuration, a structured logger, and the two stores.
//
// # Startup Sequence
//
//  1. Initialize structured logger (stderr, so stdout stays for output).
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client
}

// newRuntime builds the shared dependencies. The returned close function
// is safe to defer immediately; it releases whatever was opened.
func newRuntime(ctx context.Context) (*runtime, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr: stdout is reserved for summaries and reports so
	// runs stay pipeable.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "carlex"))
	slog.SetDefault(logger)

	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger, pool: pool, redis: rdb}
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", slog.Any("error", err))
		}
		pool.Close()
	}
	return rt, cleanup, nil
}

// jobContext returns a context cancelled by SIGINT/SIGTERM, so a killed
// run stops at a batch boundary and keeps its checkpoint.
func jobContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// batchSize clamps the configured batch size into the supported range.
func (rt *runtime) batchSize() int {
	size := rt.cfg.BatchSize
	if size < constants.MinBatchSize {
		return constants.MinBatchSize
	}
	if size > constants.MaxBatchSize {
		return constants.MaxBatchSize
	}
	return size
}

// storeLimiter paces store round trips per the configured rate.
func (rt *runtime) storeLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(rt.cfg.StoreRPS), 1)
}

// checkpointTTL converts the configured hours into a duration.
func (rt *runtime) checkpointTTL() time.Duration {
	return time.Duration(rt.cfg.CheckpointTTLHours) * time.Hour
}

// printSummary renders a job summary to stdout.
func printSummary(summary *job.Summary) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	header.Printf("\n%s run %s finished in %s\n", summary.Job, summary.RunID, summary.Elapsed.Round(time.Millisecond))

	if summary.Resolved > 0 {
		good.Printf("  resolved:    %d\n", summary.Resolved)
	}
	if summary.ReviewTier > 0 {
		warn.Printf("  fuzzy links: %d (review recommended)\n", summary.ReviewTier)
	}
	if summary.Unresolved > 0 {
		warn.Printf("  unresolved:  %d\n", summary.Unresolved)
	}
	if summary.Skipped > 0 {
		warn.Printf("  skipped:     %d\n", summary.Skipped)
	}
	if summary.Merged > 0 {
		good.Printf("  merged:      %d groups\n", summary.Merged)
	}
	if summary.Repointed > 0 {
		good.Printf("  repointed:   %d rows\n", summary.Repointed)
	}
	if summary.Deleted > 0 {
		good.Printf("  deleted:     %d rows\n", summary.Deleted)
	}
	if summary.Cleaned > 0 {
		good.Printf("  cleaned:     %d rows\n", summary.Cleaned)
	}
	if summary.Errored > 0 {
		bad.Printf("  errored:     %d (see logs)\n", summary.Errored)
	}

	if len(summary.UnresolvedSamples) > 0 {
		warn.Println("\n  unresolved samples:")
		lines := slice.Map(summary.UnresolvedSamples, func(s job.UnresolvedSample) string {
			return fmt.Sprintf("    %s  make=%q model=%q chassis=%q",
				s.AppearanceID, s.VehicleMake, s.VehicleModel, s.ChassisCode)
		})
		for _, line := range lines {
			fmt.Println(line)
		}
	}
}
