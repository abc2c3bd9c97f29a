/**
 * @description
 * Ingestion pipeline for live progressive jackpot data.
 * One run walks every tracked URL: fetch -> parse -> estimate -> persist,
 * with per-URL error isolation and duplicate-timestamp skipping so the run
 * is idempotent against an unchanged upstream page.
 *
 * @dependencies
 * - backend/internal/lottery
 * - backend/internal/models
 * - backend/internal/config
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackpotwatch/backend/internal/config"
	"github.com/jackpotwatch/backend/internal/logger"
	"github.com/jackpotwatch/backend/internal/lottery"
	"github.com/jackpotwatch/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	recentEntriesLogLimit = 5

	cacheKeyRecentPrefix = "prizes:recent:"
	cacheTTL             = 30 * time.Second
)

// Scraper fetches one game page and extracts a snapshot from it
type Scraper interface {
	Scrape(ctx context.Context, url string) (*lottery.Snapshot, error)
}

// Sink is the persist step. The real pipeline writes to Postgres; dry runs
// swap in a reporter that only logs the would-be row.
type Sink interface {
	Insert(ctx context.Context, row *models.LivePrize) error
}

// RunSummary counts per-URL outcomes of a single pipeline run
type RunSummary struct {
	RunID             string
	URLs              int
	Inserted          int
	SkippedDuplicates int
	NoSnapshot        int
	Errors            int
}

type PrizeService struct {
	DB       *gorm.DB
	Scraper  Scraper
	Sink     Sink
	Games    map[string]config.GameProperties
	SeedURLs []string
	DryRun   bool
	// Redis is optional; the API wires it for read caching, the scraper
	// and worker leave it nil
	Redis *redis.Client
}

func NewPrizeService(db *gorm.DB, scraper Scraper, cfg *config.Config) *PrizeService {
	s := &PrizeService{
		DB:       db,
		Scraper:  scraper,
		Games:    cfg.Scraper.Games,
		SeedURLs: cfg.Scraper.SeedURLs,
		DryRun:   cfg.Scraper.DryRun,
	}
	if cfg.Scraper.DryRun {
		s.Sink = &dryRunSink{}
	} else {
		s.Sink = &dbSink{db: db}
	}
	return s
}

// TrackedURLs returns every distinct URL already present in the store, or
// the configured seed URLs while the store is still empty
func (s *PrizeService) TrackedURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := s.DB.WithContext(ctx).
		Model(&models.LivePrize{}).
		Distinct("url").
		Pluck("url", &urls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tracked urls: %w", err)
	}
	if len(urls) == 0 {
		return s.SeedURLs, nil
	}
	return urls, nil
}

// RunOnce executes one complete pipeline run over all tracked URLs. Every
// failure is confined to its URL; the enumeration always completes.
func (s *PrizeService) RunOnce(ctx context.Context) RunSummary {
	summary := RunSummary{RunID: uuid.NewString()}

	urls, err := s.TrackedURLs(ctx)
	if err != nil {
		logger.Error("[run %s] %v", summary.RunID, err)
		summary.Errors++
		return summary
	}
	summary.URLs = len(urls)
	logger.Info("[run %s] scraping %d tracked urls (dry_run=%t)", summary.RunID, len(urls), s.DryRun)

	for _, url := range urls {
		switch outcome, err := s.processURL(ctx, url); {
		case err != nil:
			summary.Errors++
			logger.Error("[run %s] %s: %v", summary.RunID, url, err)
		case outcome == outcomeInserted:
			summary.Inserted++
		case outcome == outcomeSkippedDuplicate:
			summary.SkippedDuplicates++
		case outcome == outcomeNoSnapshot:
			summary.NoSnapshot++
		}
	}

	s.logRecentEntries(ctx, summary.RunID)

	logger.Info("[run %s] done: %d inserted, %d duplicate, %d no-snapshot, %d errors",
		summary.RunID, summary.Inserted, summary.SkippedDuplicates, summary.NoSnapshot, summary.Errors)
	return summary
}

type urlOutcome int

const (
	outcomeInserted urlOutcome = iota
	outcomeSkippedDuplicate
	outcomeNoSnapshot
)

// processURL runs the per-URL state machine: scrape, attach static game
// properties, dedupe against the prior row, estimate, persist
func (s *PrizeService) processURL(ctx context.Context, url string) (urlOutcome, error) {
	snap, err := s.Scraper.Scrape(ctx, url)
	if err != nil {
		if errors.Is(err, lottery.ErrNoJackpotInfo) {
			logger.Info("no jackpot info at %s, skipping", url)
			return outcomeNoSnapshot, nil
		}
		return 0, err
	}

	if snap.TimestampDegraded {
		logger.Info("%s: page timestamp missing or unparseable, using local time", snap.GameName)
	}

	// Unknown games simply carry nil increment/price
	if props, ok := s.Games[snap.GameName]; ok {
		snap.Increment = props.Increment
		snap.Price = props.Price
	}

	prior, err := s.priorRecord(ctx, snap.GameName)
	if err != nil {
		return 0, err
	}

	if prior != nil && snap.ObservedAt.Equal(prior.Time) {
		logger.Info("%s: unchanged page timestamp %s, skipping duplicate",
			snap.GameName, snap.ObservedAt.Format("2006-01-02 15:04:05"))
		return outcomeSkippedDuplicate, nil
	}

	actualSales, impliedHourlySales := EstimateSales(snap, prior)

	// A concurrent writer may have landed the same (time, game) pair since
	// the prior lookup; re-check right before the insert
	duplicate, err := s.timestampExists(ctx, snap.GameName, snap)
	if err != nil {
		return 0, err
	}
	if duplicate {
		logger.Info("%s: row for %s already present, skipping duplicate",
			snap.GameName, snap.ObservedAt.Format("2006-01-02 15:04:05"))
		return outcomeSkippedDuplicate, nil
	}

	row := s.buildRow(snap, actualSales, impliedHourlySales)
	if err := s.Sink.Insert(ctx, row); err != nil {
		return 0, fmt.Errorf("failed to persist %s snapshot: %w", snap.GameName, err)
	}

	logger.Info("%s: recorded top prize $%s at %s",
		snap.GameName, snap.TopPrize, snap.ObservedAt.Format("2006-01-02 15:04:05"))
	return outcomeInserted, nil
}

// priorRecord loads the most recent persisted row for a game, nil when the
// game has never been observed
func (s *PrizeService) priorRecord(ctx context.Context, gameName string) (*models.LivePrize, error) {
	var prior models.LivePrize
	err := s.DB.WithContext(ctx).
		Where("game_name = ?", gameName).
		Order("time DESC").
		First(&prior).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prior record for %s: %w", gameName, err)
	}
	return &prior, nil
}

func (s *PrizeService) timestampExists(ctx context.Context, gameName string, snap *lottery.Snapshot) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.LivePrize{}).
		Where("time = ? AND game_name = ?", snap.ObservedAt, gameName).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed duplicate check for %s: %w", gameName, err)
	}
	return count > 0, nil
}

func (s *PrizeService) buildRow(snap *lottery.Snapshot, actualSales, impliedHourlySales *float64) *models.LivePrize {
	return &models.LivePrize{
		Time:               snap.ObservedAt,
		GameName:           snap.GameName,
		TopPrize:           snap.TopPrize,
		URL:                snap.SourceURL,
		Increment:          snap.Increment,
		Price:              snap.Price,
		ActualSales:        actualSales,
		ImpliedHourlySales: impliedHourlySales,
		Prize1:             snap.TierRemaining[0],
		Prize2:             snap.TierRemaining[1],
		Prize3:             snap.TierRemaining[2],
		Prize4:             snap.TierRemaining[3],
		Prize5:             snap.TierRemaining[4],
		Prize6:             snap.TierRemaining[5],
		Prize1Value:        snap.TierValue[0],
		Prize2Value:        snap.TierValue[1],
		Prize3Value:        snap.TierValue[2],
		Prize4Value:        snap.TierValue[3],
		Prize5Value:        snap.TierValue[4],
		Prize6Value:        snap.TierValue[5],
	}
}

// RecentEntries returns the newest persisted rows across all games
func (s *PrizeService) RecentEntries(ctx context.Context, limit int) ([]models.LivePrize, error) {
	var rows []models.LivePrize
	err := s.DB.WithContext(ctx).
		Order("time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent entries: %w", err)
	}
	return rows, nil
}

// RecentEntriesCached returns the newest rows, preferring Cache -> DB when
// a Redis client is wired
func (s *PrizeService) RecentEntriesCached(ctx context.Context, limit int) ([]models.LivePrize, error) {
	if s.Redis == nil {
		return s.RecentEntries(ctx, limit)
	}

	key := fmt.Sprintf("%s%d", cacheKeyRecentPrefix, limit)
	if data, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
		var rows []models.LivePrize
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.RecentEntries(ctx, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := s.Redis.Set(ctx, key, data, cacheTTL).Err(); err != nil {
			logger.Error("failed to cache recent entries: %v", err)
		}
	}
	return rows, nil
}

// LatestForGame returns the most recent row for one game, nil when the game
// has never been observed
func (s *PrizeService) LatestForGame(ctx context.Context, gameName string) (*models.LivePrize, error) {
	return s.priorRecord(ctx, gameName)
}

func (s *PrizeService) logRecentEntries(ctx context.Context, runID string) {
	rows, err := s.RecentEntries(ctx, recentEntriesLogLimit)
	if err != nil {
		logger.Error("[run %s] %v", runID, err)
		return
	}
	for _, row := range rows {
		sales := "N/A"
		if row.ActualSales != nil {
			sales = fmt.Sprintf("%.2f", *row.ActualSales)
		}
		hourly := "N/A"
		if row.ImpliedHourlySales != nil {
			hourly = fmt.Sprintf("%.2f", *row.ImpliedHourlySales)
		}
		logger.Info("[run %s]   %s  %-20s $%-12s sales=%s hourly=%s",
			runID, row.Time.Format("2006-01-02 15:04:05"), row.GameName, row.TopPrize, sales, hourly)
	}
}

// dbSink appends one row per insert; each Create runs in its own
// transaction so a failed write never taints the rest of the batch
type dbSink struct {
	db *gorm.DB
}

func (s *dbSink) Insert(ctx context.Context, row *models.LivePrize) error {
	return s.db.WithContext(ctx).Create(row).Error
}

// dryRunSink reports the row that would have been written and writes nothing
type dryRunSink struct{}

func (s *dryRunSink) Insert(_ context.Context, row *models.LivePrize) error {
	logger.Info("DRY RUN: would insert %s %s $%s (url=%s)",
		row.GameName, row.Time.Format("2006-01-02 15:04:05"), row.TopPrize, row.URL)
	return nil
}
