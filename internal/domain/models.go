// Package domain defines the persisted data model: the item catalog, the
// business-window settings, and the immutable sale records the ledger is
// derived from. JSON tags match the on-disk collection shape.
package domain

import "github.com/shopspring/decimal"

// Payment methods accepted on a sale record.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// Category is a folder node in the catalog tree. Inactive categories are
// hidden from selection surfaces but kept for historical path resolution.
type Category struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	ParentID  string `json:"parent_id,omitempty"` // empty = root
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// Item is a menu entry. An empty CategoryID means it lives at the root.
type Item struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CategoryID string          `json:"category_id,omitempty"`
	SortOrder  int             `json:"sort_order"`
	IsActive   bool            `json:"is_active"`
}

// Settings defines the business-day window in minutes since midnight.
// ClosingMin < OpeningMin means the window spans midnight.
type Settings struct {
	OpeningMin int `json:"opening_min"`
	ClosingMin int `json:"closing_min"`
}

// DefaultSettings is the full-calendar-day window: no business-date shifting.
func DefaultSettings() Settings {
	return Settings{OpeningMin: 0, ClosingMin: 23*60 + 59}
}

// SpansMidnight reports whether the window crosses midnight. Equal opening
// and closing minutes do not span; the comparison is strict.
func (s Settings) SpansMidnight() bool {
	return s.ClosingMin < s.OpeningMin
}

// SaleRecord is one ledger entity. Catalog identity (ItemLabel,
// CategoryPath, UnitPrice) is snapshotted at creation/edit time, so later
// catalog changes never rewrite history. BusinessDate is the at-creation
// audit value; ledger views recompute it live from SaleTimeEpochMS so that
// a settings change reclassifies old records without a migration.
type SaleRecord struct {
	EntryID            string          `json:"entry_id"`
	BusinessDate       string          `json:"business_date"`
	SaleTimeLocal      string          `json:"sale_time_local"`
	SaleTimestampLocal string          `json:"sale_timestamp_local"`
	ItemID             string          `json:"item_id"` // empty for manual items
	ItemLabel          string          `json:"item_label"`
	CategoryPath       string          `json:"category_path"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	PaymentMethod      string          `json:"payment_method"`
	CustomerName       string          `json:"customer_name"`
	IsVoid             bool            `json:"is_void"`
	VoidReason         string          `json:"void_reason"`
	CreatedAtLocal     string          `json:"created_at_local"`
	CreatedAtEpochMS   int64           `json:"created_at_epoch_ms"`
	SaleTimeEpochMS    int64           `json:"sale_time_epoch_ms"`
	UpdatedAtLocal     string          `json:"updated_at_local,omitempty"`
	UpdatedAtEpochMS   int64           `json:"updated_at_epoch_ms,omitempty"`
}

// IsCredit reports whether the record was paid on credit. A missing
// payment method counts as cash, matching older persisted data.
func (r SaleRecord) IsCredit() bool {
	return r.PaymentMethod == PaymentCredit
}

// Round2 rounds a money value to display precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
