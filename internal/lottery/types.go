/**
 * @description
 * Data types shared across the lottery site client and parser.
 *
 * @dependencies
 * - standard "time"
 */

package lottery

import "time"

// Snapshot is one observation of a Fast Play game's live state, extracted
// from the operator's game page. It is built fresh per scrape cycle and
// immutable afterwards.
type Snapshot struct {
	// GameName is the canonical uppercase identifier
	GameName string
	// TopPrize is the comma-formatted amount without the currency symbol
	TopPrize string
	// ObservedAt is the operator-published timestamp, or local wall clock
	// when the page carries none
	ObservedAt time.Time
	// TimestampDegraded is set when ObservedAt fell back to the local
	// clock because the page's timestamp was missing or unparseable
	TimestampDegraded bool

	// Static per-game attributes, attached from configuration
	Increment *float64
	Price     *float64

	// Prize table, six tiers: remaining-win counts and prize-value labels
	TierRemaining [6]*string
	TierValue     [6]*string

	SourceURL string
}
