/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/services
 * - backend/internal/lottery
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackpotwatch/backend/internal/api/handlers"
	"github.com/jackpotwatch/backend/internal/config"
	"github.com/jackpotwatch/backend/internal/lottery"
	"github.com/jackpotwatch/backend/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Services
	prizeService := services.NewPrizeService(db, lottery.NewClient(), cfg)
	prizeService.Redis = rdb

	// 2. Initialize Handlers
	prizeHandler := handlers.NewPrizeHandler(prizeService)

	// 3. Define Routes
	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	prizes := v1.Group("/prizes")
	prizes.Get("/recent", prizeHandler.GetRecent)
	prizes.Get("/:game/latest", prizeHandler.GetLatest)

	v1.Get("/urls", prizeHandler.GetURLs)
}
