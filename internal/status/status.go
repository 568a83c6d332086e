// Package status derives the urgency tier and stall state of a pending item
// from its deadline. Both functions are pure: the caller supplies the
// reference time, so one captured "now" can judge a whole ingestion pass.
package status

import (
	"time"

	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/timex"
)

// stallGraceDays is how far past the deadline an item may sit before it
// counts as stalled. The threshold compares against deadline+grace, but the
// reported age counts from the raw deadline.
const stallGraceDays = 10

// Classify maps a deadline onto one of the four urgency tiers, checked in
// strict priority order. A deadline that does not parse falls through to
// NO_PRAZO.
func Classify(deadline string, ref timex.ReferenceWindow) models.Tier {
	limit, ok := timex.ParseDate(deadline)
	if !ok {
		return models.TierNoPrazo
	}
	switch {
	case limit.Before(ref.Today):
		return models.TierForaPrazo
	case limit.Equal(ref.Today):
		return models.TierPrioridade
	case limit.Equal(ref.Tomorrow):
		return models.TierVenceAmanha
	default:
		return models.TierNoPrazo
	}
}

// Stalled reports whether the deadline is more than stallGraceDays behind
// today, and if so how many whole days past the deadline the item is.
// Inputs are compared at day granularity; an unparsable deadline is never
// stalled.
func Stalled(deadline string, today time.Time) (bool, int) {
	limit, ok := timex.ParseDate(deadline)
	if !ok {
		return false, 0
	}
	today = timex.Midnight(today)
	if !today.After(timex.AddDays(limit, stallGraceDays)) {
		return false, 0
	}
	return true, timex.DaysBetween(limit, today)
}
