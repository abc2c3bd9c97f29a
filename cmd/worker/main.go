/**
 * @description
 * Worker Service Entry Point.
 * Long-running deployment form of the scraper: runs the full ingestion
 * pipeline on a fixed interval instead of relying on an external scheduler.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/db
 * - backend/internal/lottery
 * - backend/internal/services
 *
 * @notes
 * - Runs are strictly serialized: the ticker is only consumed between runs,
 *   so at most one pipeline run is in flight and missed ticks are dropped.
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackpotwatch/backend/internal/config"
	"github.com/jackpotwatch/backend/internal/db"
	"github.com/jackpotwatch/backend/internal/logger"
	"github.com/jackpotwatch/backend/internal/lottery"
	"github.com/jackpotwatch/backend/internal/services"
)

func main() {
	logger.Info("🔥 Starting Jackpot Watch worker...")

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect DB
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Postgres connection failed: %v", err)
	}

	// 3. Initialize Service
	service := services.NewPrizeService(pgDB, lottery.NewClient(), cfg)

	// 4. Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Pipeline Loop
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(cfg.Scraper.Interval)
		defer ticker.Stop()

		// Initial run
		service.RunOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.RunOnce(ctx)
			}
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	<-done
	logger.Info("Worker exited.")
}
