/**
 * @description
 * Live prize API handlers.
 * Read-only observability endpoints over the persisted live_prizes rows.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackpotwatch/backend/internal/services"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 100
)

type PrizeHandler struct {
	Service *services.PrizeService
}

func NewPrizeHandler(service *services.PrizeService) *PrizeHandler {
	return &PrizeHandler{Service: service}
}

// GetRecent returns the newest persisted rows across all games
// GET /api/v1/prizes/recent?limit=5
func (h *PrizeHandler) GetRecent(c *fiber.Ctx) error {
	ctx := c.Context()

	limit := c.QueryInt("limit", defaultRecentLimit)
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := h.Service.RecentEntriesCached(ctx, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch recent entries",
		})
	}
	return c.JSON(rows)
}

// GetLatest returns the most recent row for one game
// GET /api/v1/prizes/:game/latest
func (h *PrizeHandler) GetLatest(c *fiber.Ctx) error {
	ctx := c.Context()

	game := c.Params("game")
	if decoded, err := url.PathUnescape(game); err == nil {
		game = decoded
	}
	if game == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Game name is required",
		})
	}

	row, err := h.Service.LatestForGame(ctx, strings.ToUpper(game))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch latest entry",
		})
	}
	if row == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No observations for game",
		})
	}
	return c.JSON(row)
}

// GetURLs returns every distinct tracked URL
// GET /api/v1/urls
func (h *PrizeHandler) GetURLs(c *fiber.Ctx) error {
	urls, err := h.Service.TrackedURLs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tracked urls",
		})
	}
	if urls == nil {
		urls = []string{}
	}
	return c.JSON(urls)
}
