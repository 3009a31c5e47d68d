// Package sales implements sale entry and the per-record lifecycle:
// finalize a draft into an immutable record, edit, void, hard delete.
package sales

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/ledger"
	"github.com/kavaroom/tillbook/internal/state"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// Service runs sale operations against the in-process store.
type Service struct {
	Store *state.Store
	Now   func() time.Time // defaults to time.Now
}

func New(st *state.Store) *Service {
	return &Service{Store: st, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Draft carries the entry-screen inputs for one sale.
type Draft struct {
	Date          time.Time // target calendar date (operator-chosen or today)
	Hour12        int
	Minute        int
	AmPm          string
	ItemID        string
	ItemLabel     string // free-typed, may be empty when ItemID is set
	UnitPrice     decimal.Decimal
	Quantity      int
	PaymentMethod string
	CustomerName  string
}

// ParsePrice coerces typed input to a non-negative price. Invalid or
// negative input becomes 0.
func ParsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity coerces typed input to an integer >= 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Finalize resolves the draft's item identity against the active catalog,
// composes the sale instant, and appends the finished record to the store.
//
// Item resolution order: exact id match, then case-insensitive trimmed
// label or full-path match, then, when any text was typed at all, a
// manual item with an empty id and category path "Manual". Only an empty
// identity fails.
func (s *Service) Finalize(d Draft) (domain.SaleRecord, error) {
	active := s.Store.ActiveItems()
	typed := strings.TrimSpace(d.ItemLabel)
	chosen := catalog.Match(active, d.ItemID, typed)
	if chosen == nil && typed == "" {
		return domain.SaleRecord{}, domain.ErrItemRequired
	}

	price := d.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}
	price = domain.Round2(price)
	qty := d.Quantity
	if qty < 1 {
		qty = 1
	}

	saleTime := timeutil.Compose(d.Date, d.Hour12, d.Minute, d.AmPm)
	now := s.now()
	method := d.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	rec := domain.SaleRecord{
		EntryID:            uuid.NewString(),
		BusinessDate:       ledger.BusinessDate(saleTime, s.Store.Settings()),
		SaleTimeLocal:      timeutil.FormatClock(saleTime),
		SaleTimestampLocal: timeutil.DateString(saleTime) + " " + timeutil.FormatClock(saleTime),
		UnitPrice:          price,
		Quantity:           qty,
		TotalPrice:         domain.Round2(price.Mul(decimal.NewFromInt(int64(qty)))),
		PaymentMethod:      method,
		CustomerName:       strings.TrimSpace(d.CustomerName),
		CreatedAtLocal:     timeutil.FormatTimestamp(now),
		CreatedAtEpochMS:   now.UnixMilli(),
		SaleTimeEpochMS:    saleTime.UnixMilli(),
	}
	if chosen != nil {
		rec.ItemID = chosen.ID
		rec.ItemLabel = chosen.Label
		rec.CategoryPath = chosen.CategoryPath
	} else {
		rec.ItemLabel = typed
		rec.CategoryPath = catalog.ManualLabel
	}

	s.Store.AppendRecord(rec)
	return rec, nil
}
