package sales

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// TimeParts is an optional sale-time change on an edit: the record keeps
// its calendar date, only the time of day moves.
type TimeParts struct {
	Hour12 int
	Minute int
	AmPm   string
}

// Patch carries the editable fields of a sale record.
type Patch struct {
	ItemID        string
	ItemLabel     string
	UnitPrice     decimal.Decimal
	Quantity      int
	PaymentMethod string
	CustomerName  string
	Time          *TimeParts
}

// Edit re-resolves the item identity against the current catalog,
// recomputes totals and snapshot fields, and replaces the record in place.
// An edit that would leave the record without an item label is rejected
// and the record stays unchanged. The stored business_date is not touched;
// ledger views recompute it live.
func (s *Service) Edit(entryID string, p Patch) (domain.SaleRecord, error) {
	rec, ok := s.Store.Record(entryID)
	if !ok {
		return domain.SaleRecord{}, domain.ErrNotFound
	}

	active := s.Store.ActiveItems()
	typed := strings.TrimSpace(p.ItemLabel)
	chosen := catalog.Match(active, p.ItemID, typed)
	if chosen == nil && typed == "" {
		return domain.SaleRecord{}, domain.ErrItemRequired
	}

	price := p.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}
	price = domain.Round2(price)
	qty := p.Quantity
	if qty < 1 {
		qty = 1
	}
	if qty > 9999 {
		qty = 9999
	}

	if chosen != nil {
		rec.ItemID = chosen.ID
		rec.ItemLabel = chosen.Label
		rec.CategoryPath = chosen.CategoryPath
	} else {
		rec.ItemID = ""
		rec.ItemLabel = typed
		rec.CategoryPath = catalog.ManualLabel
	}
	rec.UnitPrice = price
	rec.Quantity = qty
	rec.TotalPrice = domain.Round2(price.Mul(decimal.NewFromInt(int64(qty))))
	if p.PaymentMethod != "" {
		rec.PaymentMethod = p.PaymentMethod
	}
	rec.CustomerName = strings.TrimSpace(p.CustomerName)

	if p.Time != nil {
		old := timeutil.FromEpochMillis(rec.SaleTimeEpochMS)
		next := timeutil.Compose(old, p.Time.Hour12, p.Time.Minute, p.Time.AmPm)
		rec.SaleTimeEpochMS = next.UnixMilli()
		rec.SaleTimeLocal = timeutil.FormatClock(next)
		rec.SaleTimestampLocal = timeutil.DateString(next) + " " + timeutil.FormatClock(next)
	}

	now := s.now()
	rec.UpdatedAtEpochMS = now.UnixMilli()
	rec.UpdatedAtLocal = timeutil.FormatTimestamp(now)

	if err := s.Store.ReplaceRecord(rec); err != nil {
		return domain.SaleRecord{}, err
	}
	return rec, nil
}

// Void marks a record void, keeping it for audit. One-way: there is no
// un-void operation.
func (s *Service) Void(entryID, reason string) error {
	rec, ok := s.Store.Record(entryID)
	if !ok {
		return domain.ErrNotFound
	}
	if rec.IsVoid {
		return nil
	}
	if strings.TrimSpace(reason) == "" {
		reason = "Voided"
	}
	rec.IsVoid = true
	rec.VoidReason = reason
	now := s.now()
	rec.UpdatedAtEpochMS = now.UnixMilli()
	rec.UpdatedAtLocal = timeutil.FormatTimestamp(now)
	return s.Store.ReplaceRecord(rec)
}

// Delete hard-removes a record. Reachable from the ledger-edit surface
// only; void never deletes.
func (s *Service) Delete(entryID string) error {
	return s.Store.DeleteRecord(entryID)
}

// ClearAll wipes the record set after the UI's confirmation step.
func (s *Service) ClearAll() {
	s.Store.ClearRecords()
}
