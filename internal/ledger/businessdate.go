// Package ledger derives the daily running-balance view from the record
// set: business-date attribution first, then filtering, ordering and
// accumulation. The ledger is always computed, never stored.
package ledger

import (
	"time"

	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// BusinessDate returns the calendar day a sale is attributed to under the
// configured opening/closing window.
//
// Only a spanning window (closing < opening, e.g. open 4 PM close 2 AM)
// shifts anything: sales at or before closing time belong to the previous
// day's shift. When the window does not span midnight, business date always
// equals calendar date: a sale before opening time on a non-spanning day
// is NOT pushed to the prior day. That asymmetry is intentional; do not
// "fix" it by shifting pre-opening sales.
func BusinessDate(saleTime time.Time, s domain.Settings) string {
	m := timeutil.MinutesSinceMidnight(saleTime)
	if s.SpansMidnight() && m <= s.ClosingMin {
		return timeutil.DateString(saleTime.AddDate(0, 0, -1))
	}
	return timeutil.DateString(saleTime)
}

// EffectiveBusinessDate recomputes a record's business date from its sale
// instant under the current settings, so the ledger reclassifies history
// after a window change. Records with no timestamp (older data) fall back
// to the stored snapshot.
func EffectiveBusinessDate(r domain.SaleRecord, s domain.Settings) string {
	if r.SaleTimeEpochMS == 0 {
		return r.BusinessDate
	}
	return BusinessDate(timeutil.FromEpochMillis(r.SaleTimeEpochMS), s)
}
