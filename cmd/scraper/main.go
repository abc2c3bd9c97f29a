package main

import (
	"context"
	"log"
	"os"

	"github.com/jackpotwatch/backend/internal/config"
	"github.com/jackpotwatch/backend/internal/db"
	"github.com/jackpotwatch/backend/internal/lottery"
	"github.com/jackpotwatch/backend/internal/services"
)

// One complete ingestion run, then exit. This is the unit an external
// scheduler (cron, Heroku Scheduler, ...) invokes; back-to-back runs
// serialize naturally because a new process only starts after this one
// exits.
func main() {
	log.Println("🎰 Starting live prize scraper run...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	service := services.NewPrizeService(pgDB, lottery.NewClient(), cfg)

	summary := service.RunOnce(context.Background())
	if summary.URLs > 0 && summary.Errors == summary.URLs {
		log.Printf("⚠️ Every tracked url failed this run")
		os.Exit(1)
	}

	log.Println("✅ Scraper run completed.")
}
