/**
 * @description
 * Timestamp normalizer for the operator's "As of M/D/YYYY h:MM:SS AM/PM"
 * strings. The site reports local civil time; no timezone conversion is
 * applied.
 *
 * @dependencies
 * - standard "time"
 * - standard "strings"
 */

package lottery

import (
	"strings"
	"time"
)

const asOfMarker = "As of "

// Site layouts, seconds precision first. Unpadded month/day, 12-hour clock.
var siteTimeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// ParseSiteTime converts the site's timestamp string into a time.Time,
// preserving the civil time as-is. The second return value is false when
// neither recognized pattern matched and the current local time was used
// instead; callers log that as a reduced-fidelity observation. It never
// fails: a usable instant comes back in all cases.
func ParseSiteTime(raw string) (time.Time, bool) {
	cleaned := strings.ReplaceAll(raw, asOfMarker, "")
	cleaned = strings.TrimSpace(cleaned)

	for _, layout := range siteTimeLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return t, true
		}
	}

	return time.Now(), false
}
