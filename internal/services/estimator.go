/**
 * @description
 * Sales estimator for progressive jackpot observations.
 * A Fast Play progressive grows by a fixed increment per ticket sold, so the
 * top-prize delta between two observations is a proxy for ticket volume.
 *
 * @dependencies
 * - github.com/shopspring/decimal: exact arithmetic on the currency amounts
 * - backend/internal/models
 * - backend/internal/lottery
 */

package services

import (
	"strings"

	"github.com/jackpotwatch/backend/internal/lottery"
	"github.com/jackpotwatch/backend/internal/models"
	"github.com/shopspring/decimal"
)

// EstimateSales derives actual_sales and implied_hourly_sales for a new
// snapshot against the most recent prior row for the same game. Either or
// both come back nil when the derivation preconditions fail:
//
//   - no prior row: expected for a game's first-ever observation
//   - equal timestamps: a duplicate, nothing to derive (the pipeline skips
//     ingestion outright before calling this; handled here too)
//   - no resolvable increment or unparseable amounts: actual_sales nil
//   - non-positive time delta (out-of-order observation): hourly nil
//
// A negative prize delta after a jackpot win produces a negative
// actual_sales on purpose; downstream consumers read it as a reset event.
func EstimateSales(snap *lottery.Snapshot, prior *models.LivePrize) (actualSales, impliedHourlySales *float64) {
	if prior == nil {
		return nil, nil
	}
	if snap.ObservedAt.Equal(prior.Time) {
		return nil, nil
	}

	currPrize, err := parsePrizeAmount(snap.TopPrize)
	if err != nil {
		return nil, nil
	}
	prevPrize, err := parsePrizeAmount(prior.TopPrize)
	if err != nil {
		return nil, nil
	}
	prizeDiff := currPrize.Sub(prevPrize)

	// The increment persisted with the prior row wins; the static per-game
	// value attached to the new snapshot is the fallback. A zero increment
	// counts as absent, it can never divide the prize delta.
	increment := prior.Increment
	if increment == nil || *increment == 0 {
		increment = snap.Increment
	}
	if increment == nil || *increment == 0 {
		return nil, nil
	}

	sales, _ := prizeDiff.Div(decimal.NewFromFloat(*increment)).Float64()
	actualSales = &sales

	timeDiffMinutes := snap.ObservedAt.Sub(prior.Time).Minutes()
	if timeDiffMinutes > 0 {
		hourly := sales * (60 / timeDiffMinutes)
		impliedHourlySales = &hourly
	}

	return actualSales, impliedHourlySales
}

// parsePrizeAmount converts the site's comma-formatted amount text into a
// decimal ("1,000,050" -> 1000050)
func parsePrizeAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
}
