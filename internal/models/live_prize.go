/**
 * @description
 * Live prize database model.
 * Maps to the append-only 'live_prizes' table in PostgreSQL: one row per
 * observation of a Fast Play game's progressive jackpot state, plus the
 * sales metrics derived against the previous observation.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package models

import (
	"time"
)

// LivePrize is one observation of a game's live jackpot state.
// Rows are insert-only; (time, game_name) is unique and a row is never
// updated or deleted once written.
type LivePrize struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Time     time.Time `gorm:"column:time;uniqueIndex:idx_live_prizes_time_game" json:"time"`
	GameName string    `gorm:"column:game_name;uniqueIndex:idx_live_prizes_time_game;index" json:"game_name"`
	// TopPrize keeps the site's comma-formatted text verbatim ("1,000,050")
	TopPrize string `gorm:"column:top_prize" json:"top_prize"`
	URL      string `gorm:"column:url;index" json:"url"`

	// Static per-game attributes, nil for games missing from the table
	Increment *float64 `gorm:"column:increment;type:decimal(10,4)" json:"increment"`
	Price     *float64 `gorm:"column:price;type:decimal(10,2)" json:"price"`

	// Derived at ingestion time; nil when no valid prior observation exists
	ActualSales        *float64 `gorm:"column:actual_sales;type:decimal(20,4)" json:"actual_sales"`
	ImpliedHourlySales *float64 `gorm:"column:implied_hourly_sales;type:decimal(20,4)" json:"implied_hourly_sales"`

	// Prize table: remaining-win counts and prize-value labels per tier,
	// stored as the free-form text the page shows
	Prize1 *string `gorm:"column:prize1" json:"prize1"`
	Prize2 *string `gorm:"column:prize2" json:"prize2"`
	Prize3 *string `gorm:"column:prize3" json:"prize3"`
	Prize4 *string `gorm:"column:prize4" json:"prize4"`
	Prize5 *string `gorm:"column:prize5" json:"prize5"`
	Prize6 *string `gorm:"column:prize6" json:"prize6"`

	Prize1Value *string `gorm:"column:prize1value" json:"prize1value"`
	Prize2Value *string `gorm:"column:prize2value" json:"prize2value"`
	Prize3Value *string `gorm:"column:prize3value" json:"prize3value"`
	Prize4Value *string `gorm:"column:prize4value" json:"prize4value"`
	Prize5Value *string `gorm:"column:prize5value" json:"prize5value"`
	Prize6Value *string `gorm:"column:prize6value" json:"prize6value"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by LivePrize to `live_prizes`
func (LivePrize) TableName() string {
	return "live_prizes"
}

// TierRemaining returns the six remaining-count columns for positional access
func (p *LivePrize) TierRemaining() [6]*string {
	return [6]*string{p.Prize1, p.Prize2, p.Prize3, p.Prize4, p.Prize5, p.Prize6}
}

// TierValues returns the six prize-value columns for positional access
func (p *LivePrize) TierValues() [6]*string {
	return [6]*string{p.Prize1Value, p.Prize2Value, p.Prize3Value, p.Prize4Value, p.Prize5Value, p.Prize6Value}
}
