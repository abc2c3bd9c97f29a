package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/jackpotwatch/backend/internal/models"
	"github.com/jackpotwatch/backend/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.LivePrize{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	service := &services.PrizeService{DB: db, Redis: redisClient}
	handler := NewPrizeHandler(service)

	app := fiber.New()
	app.Get("/api/v1/prizes/recent", handler.GetRecent)
	app.Get("/api/v1/prizes/:game/latest", handler.GetLatest)
	app.Get("/api/v1/urls", handler.GetURLs)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func seedRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	sales := 20.83
	rows := []models.LivePrize{
		{
			Time:     time.Date(2025, 5, 28, 13, 0, 0, 0, time.UTC),
			GameName: "DIAMONDS AND GOLD",
			TopPrize: "1,000,000",
			URL:      "https://example.com/game?id=5217",
		},
		{
			Time:        time.Date(2025, 5, 28, 13, 30, 0, 0, time.UTC),
			GameName:    "DIAMONDS AND GOLD",
			TopPrize:    "1,000,050",
			URL:         "https://example.com/game?id=5217",
			ActualSales: &sales,
		},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed rows: %v", err)
	}
}

func TestGetRecent(t *testing.T) {
	app, db := setupApp(t)
	seedRows(t, db)

	resp := doRequest(t, app, "/api/v1/prizes/recent?limit=1")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var rows []models.LivePrize
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].TopPrize != "1,000,050" {
		t.Errorf("expected the newest row first, got %q", rows[0].TopPrize)
	}
}

func TestGetLatest(t *testing.T) {
	app, db := setupApp(t)
	seedRows(t, db)

	path := "/api/v1/prizes/" + strings.ReplaceAll("DIAMONDS AND GOLD", " ", "%20") + "/latest"
	resp := doRequest(t, app, path)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var row models.LivePrize
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if row.TopPrize != "1,000,050" || row.ActualSales == nil {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestGetLatestUnknownGame(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, "/api/v1/prizes/NOPE/latest")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetURLs(t *testing.T) {
	app, db := setupApp(t)
	seedRows(t, db)

	resp := doRequest(t, app, "/api/v1/urls")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var urls []string
	if err := json.NewDecoder(resp.Body).Decode(&urls); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://example.com/game?id=5217" {
		t.Fatalf("urls = %v", urls)
	}
}
