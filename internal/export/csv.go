// Package export renders sale records to CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/ledger"
)

var rawHeader = []string{
	"entry_id",
	"business_date",
	"sale_time_local",
	"sale_timestamp_local",
	"item_id",
	"item_label",
	"category_path",
	"unit_price",
	"quantity",
	"total_price",
	"payment_method",
	"customer_name",
	"is_void",
	"void_reason",
	"created_at_local",
	"created_at_epoch_ms",
	"sale_time_epoch_ms",
}

var ledgerHeader = []string{
	"time",
	"item",
	"unit_price",
	"quantity",
	"total_price",
	"running_balance",
	"payment_method",
	"customer_name",
}

// RawCSV writes every record, voids included, one row per record in the
// given order. This is the audit dump: nothing recomputed, nothing
// filtered.
func RawCSV(w io.Writer, records []domain.SaleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		isVoid := "0"
		if r.IsVoid {
			isVoid = "1"
		}
		row := []string{
			r.EntryID,
			r.BusinessDate,
			r.SaleTimeLocal,
			r.SaleTimestampLocal,
			r.ItemID,
			r.ItemLabel,
			r.CategoryPath,
			r.UnitPrice.StringFixed(2),
			strconv.Itoa(r.Quantity),
			r.TotalPrice.StringFixed(2),
			r.PaymentMethod,
			r.CustomerName,
			isVoid,
			r.VoidReason,
			r.CreatedAtLocal,
			strconv.FormatInt(r.CreatedAtEpochMS, 10),
			strconv.FormatInt(r.SaleTimeEpochMS, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.EntryID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// LedgerCSV writes a computed ledger view: the rows in view order with
// their running balances, matching what the ledger screen shows.
func LedgerCSV(w io.Writer, v ledger.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range v.Rows {
		out := []string{
			row.SaleTimeLocal,
			row.ItemLabel,
			row.UnitPrice.StringFixed(2),
			strconv.Itoa(row.Quantity),
			row.TotalPrice.StringFixed(2),
			row.RunningBalance.StringFixed(2),
			row.PaymentMethod,
			row.CustomerName,
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write row %s: %w", row.EntryID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename is the suggested export name for a business date.
func Filename(day string) string {
	return "sales_" + day + ".csv"
}
