/**
 * @description
 * Snapshot parser for Fast Play game pages.
 * Extracts the progressive jackpot amount, game name, operator timestamp,
 * and the 6-row prize table from a fetched document.
 *
 * @dependencies
 * - github.com/PuerkitoBio/goquery
 */

package lottery

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoJackpotInfo is returned when the page has no progressive jackpot
// block. Non-progressive games render without it, so callers treat this as
// "no snapshot", not as a failure.
var ErrNoJackpotInfo = errors.New("progressive jackpot info section not found")

// Matches "$1,000,050" inside text like "Est. $1,000,050*"
var prizeAmountPattern = regexp.MustCompile(`\$([\d,]+)`)

// ParseSnapshot extracts a Snapshot from a fetched game page. Increment and
// Price are left nil; the pipeline attaches them from the per-game table.
func ParseSnapshot(doc *goquery.Document, url string) (*Snapshot, error) {
	jackpotInfo := doc.Find("div.fp-progressive-jackpot-info").First()
	if jackpotInfo.Length() == 0 {
		return nil, ErrNoJackpotInfo
	}

	snap := &Snapshot{SourceURL: url}

	// Amount lives in a strong tag, wrapped in "Est. $..." text
	amountText := strings.TrimSpace(jackpotInfo.Find("strong").First().Text())
	if m := prizeAmountPattern.FindStringSubmatch(amountText); m != nil {
		snap.TopPrize = m[1]
	}

	snap.GameName = strings.ToUpper(extractGameName(doc))

	// Operator-published timestamp; local wall clock when absent
	tsText := strings.TrimSpace(jackpotInfo.Find("span.fp-progressive-jackpot-datetime").First().Text())
	if tsText != "" {
		observed, exact := ParseSiteTime(tsText)
		snap.ObservedAt = observed
		snap.TimestampDegraded = !exact
	} else {
		snap.ObservedAt = time.Now()
		snap.TimestampDegraded = true
	}

	parsePrizeTable(doc, snap)

	return snap, nil
}

// extractGameName prefers the detail heading, then the page title tail,
// then any h3
func extractGameName(doc *goquery.Document) string {
	if name := strings.TrimSpace(doc.Find("#fp-detail h3").First().Text()); name != "" {
		return name
	}

	// Title format: "Pennsylvania Lottery - Fast Play - Diamonds and Gold"
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		if idx := strings.LastIndex(title, "-"); idx >= 0 {
			return strings.TrimSpace(title[idx+1:])
		}
		return title
	}

	return strings.TrimSpace(doc.Find("h3").First().Text())
}

// parsePrizeTable fills the six tier value/remaining pairs from the global
// prize table. A missing table leaves every tier nil.
func parsePrizeTable(doc *goquery.Document, snap *Snapshot) {
	rows := doc.Find("table.table-global tbody tr")
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= len(snap.TierRemaining) {
			return false
		}
		cols := row.Find("td")
		if cols.Length() < 2 {
			return true
		}
		value := strings.TrimSpace(cols.Eq(0).Text())
		remaining := strings.TrimSpace(cols.Eq(1).Text())
		snap.TierValue[i] = &value
		snap.TierRemaining[i] = &remaining
		return true
	})
}
