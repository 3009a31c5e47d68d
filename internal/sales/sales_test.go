package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/ledger"
	"github.com/kavaroom/tillbook/internal/state"
	"github.com/kavaroom/tillbook/internal/store"
)

var fixedNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.Local)

func newService(t *testing.T) *Service {
	t.Helper()
	st := state.Load(context.Background(), store.NewMemory())
	svc := New(st)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func draft(itemID, label string, price float64, qty int) Draft {
	return Draft{
		Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		Hour12:    2, Minute: 15, AmPm: "PM",
		ItemID: itemID, ItemLabel: label,
		UnitPrice: decimal.NewFromFloat(price), Quantity: qty,
		PaymentMethod: domain.PaymentCash,
	}
}

func TestFinalizeCatalogItem(t *testing.T) {
	svc := newService(t)
	rec, err := svc.Finalize(draft("kava_strong", "", 25, 2))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rec.ItemID != "kava_strong" || rec.ItemLabel != "Kava Strong" {
		t.Errorf("item = %s %q", rec.ItemID, rec.ItemLabel)
	}
	if rec.CategoryPath != "K > Kava" {
		t.Errorf("category_path = %q", rec.CategoryPath)
	}
	if rec.TotalPrice.StringFixed(2) != "50.00" {
		t.Errorf("total = %s", rec.TotalPrice.StringFixed(2))
	}
	if rec.SaleTimeLocal != "02:15 PM" {
		t.Errorf("sale_time_local = %q", rec.SaleTimeLocal)
	}
	if rec.BusinessDate != "2024-03-10" {
		t.Errorf("business_date = %q", rec.BusinessDate)
	}
	if len(svc.Store.Records()) != 1 {
		t.Errorf("record not appended")
	}
}

func TestFinalizeResolvesTypedLabelToCatalogItem(t *testing.T) {
	svc := newService(t)
	rec, err := svc.Finalize(draft("", "  coffee ", 15, 1))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rec.ItemID != "coffee" || rec.CategoryPath != "C" {
		t.Errorf("typed label did not link: %s %q", rec.ItemID, rec.CategoryPath)
	}
}

func TestFinalizeManualItemRoundTrip(t *testing.T) {
	svc := newService(t)
	rec, err := svc.Finalize(draft("", "Birthday Cake", 30, 1))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rec.ItemID != "" || rec.ItemLabel != "Birthday Cake" || rec.CategoryPath != "Manual" {
		t.Fatalf("manual item = %q %q %q", rec.ItemID, rec.ItemLabel, rec.CategoryPath)
	}

	v := ledger.Build(svc.Store.Records(), rec.BusinessDate, svc.Store.Settings(), true, ledger.BalanceAll)
	if len(v.Rows) != 1 {
		t.Fatalf("ledger rows = %d", len(v.Rows))
	}
	got := v.Rows[0]
	if got.ItemLabel != "Birthday Cake" || got.CategoryPath != "Manual" || got.ItemID != "" {
		t.Errorf("ledger row altered the record: %+v", got.SaleRecord)
	}
}

func TestFinalizeRejectsEmptyIdentity(t *testing.T) {
	svc := newService(t)
	_, err := svc.Finalize(draft("no_such_id", "   ", 5, 1))
	if err != domain.ErrItemRequired {
		t.Fatalf("err = %v, want ErrItemRequired", err)
	}
	if len(svc.Store.Records()) != 0 {
		t.Error("record created despite validation failure")
	}
}

func TestFinalizeNormalizesPriceAndQuantity(t *testing.T) {
	svc := newService(t)
	d := draft("tea", "", 0, 0)
	d.UnitPrice = decimal.NewFromInt(-3)
	d.Quantity = -2
	rec, err := svc.Finalize(d)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !rec.UnitPrice.IsZero() {
		t.Errorf("negative price = %s, want 0", rec.UnitPrice)
	}
	if rec.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", rec.Quantity)
	}
}

func TestFinalizeDecimalTotals(t *testing.T) {
	svc := newService(t)
	d := draft("tea", "", 0, 3)
	d.UnitPrice = decimal.RequireFromString("0.10")
	rec, err := svc.Finalize(d)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rec.TotalPrice.StringFixed(2) != "0.30" {
		t.Errorf("total = %s, want 0.30 (no float drift)", rec.TotalPrice.StringFixed(2))
	}
}

func TestFinalizeComposesAMTimes(t *testing.T) {
	svc := newService(t)
	d := draft("tea", "", 10, 1)
	d.Hour12, d.Minute, d.AmPm = 12, 5, "AM"
	rec, err := svc.Finalize(d)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	st := time.UnixMilli(rec.SaleTimeEpochMS)
	if st.Hour() != 0 || st.Minute() != 5 {
		t.Errorf("12:05 AM composed to %02d:%02d", st.Hour(), st.Minute())
	}
}

func TestFinalizeSpanningWindowShiftsBusinessDate(t *testing.T) {
	svc := newService(t)
	svc.Store.UpdateSettings(domain.Settings{OpeningMin: 1020, ClosingMin: 120})
	d := draft("tea", "", 10, 1)
	d.Hour12, d.Minute, d.AmPm = 1, 30, "AM"
	rec, err := svc.Finalize(d)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rec.BusinessDate != "2024-03-09" {
		t.Errorf("business_date = %q, want 2024-03-09", rec.BusinessDate)
	}
}

func TestParsePriceAndQuantityCoercion(t *testing.T) {
	if got := ParsePrice("abc"); !got.IsZero() {
		t.Errorf("ParsePrice(abc) = %s", got)
	}
	if got := ParsePrice("-4"); !got.IsZero() {
		t.Errorf("ParsePrice(-4) = %s", got)
	}
	if got := ParsePrice(" 12.50 "); got.StringFixed(2) != "12.50" {
		t.Errorf("ParsePrice(12.50) = %s", got)
	}
	if got := ParseQuantity("x"); got != 1 {
		t.Errorf("ParseQuantity(x) = %d", got)
	}
	if got := ParseQuantity("0"); got != 1 {
		t.Errorf("ParseQuantity(0) = %d", got)
	}
	if got := ParseQuantity("7"); got != 7 {
		t.Errorf("ParseQuantity(7) = %d", got)
	}
}

func TestEditRelinksItemAndRecomputesTotal(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 10, 1))

	got, err := svc.Edit(rec.EntryID, Patch{
		ItemLabel: "Kava Strong", UnitPrice: decimal.NewFromInt(25), Quantity: 2,
		PaymentMethod: domain.PaymentCredit, CustomerName: "Moana",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.ItemID != "kava_strong" || got.CategoryPath != "K > Kava" {
		t.Errorf("relink = %s %q", got.ItemID, got.CategoryPath)
	}
	if got.TotalPrice.StringFixed(2) != "50.00" {
		t.Errorf("total = %s", got.TotalPrice.StringFixed(2))
	}
	if got.UpdatedAtEpochMS != fixedNow.UnixMilli() {
		t.Error("updated_at not stamped")
	}
	stored, _ := svc.Store.Record(rec.EntryID)
	if stored.PaymentMethod != domain.PaymentCredit || stored.CustomerName != "Moana" {
		t.Errorf("stored edit = %s %q", stored.PaymentMethod, stored.CustomerName)
	}
}

func TestEditRejectsEmptyLabelAndKeepsRecord(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 10, 1))

	_, err := svc.Edit(rec.EntryID, Patch{ItemID: "gone", ItemLabel: "  "})
	if err != domain.ErrItemRequired {
		t.Fatalf("err = %v, want ErrItemRequired", err)
	}
	stored, _ := svc.Store.Record(rec.EntryID)
	if stored.ItemLabel != "Tea" || stored.UpdatedAtEpochMS != 0 {
		t.Errorf("record changed by rejected edit: %+v", stored)
	}
}

func TestEditMovesTimeOnSameCalendarDate(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 10, 1))

	got, err := svc.Edit(rec.EntryID, Patch{
		ItemID: "tea", UnitPrice: decimal.NewFromInt(10), Quantity: 1,
		Time: &TimeParts{Hour12: 9, Minute: 45, AmPm: "AM"},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	st := time.UnixMilli(got.SaleTimeEpochMS)
	if st.Hour() != 9 || st.Minute() != 45 {
		t.Errorf("time = %02d:%02d", st.Hour(), st.Minute())
	}
	if st.Day() != 10 || st.Month() != time.March {
		t.Errorf("calendar date moved: %v", st)
	}
	if got.SaleTimeLocal != "09:45 AM" {
		t.Errorf("sale_time_local = %q", got.SaleTimeLocal)
	}
}

func TestVoidExcludesFromLedgerButKeepsRecord(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 20, 1))

	if err := svc.Void(rec.EntryID, ""); err != nil {
		t.Fatalf("void: %v", err)
	}
	stored, ok := svc.Store.Record(rec.EntryID)
	if !ok {
		t.Fatal("void removed the record")
	}
	if !stored.IsVoid || stored.VoidReason != "Voided" {
		t.Errorf("void state = %v %q", stored.IsVoid, stored.VoidReason)
	}

	v := ledger.Build(svc.Store.Records(), rec.BusinessDate, svc.Store.Settings(), true, ledger.BalanceAll)
	if len(v.Rows) != 0 || !v.TotalAmount.IsZero() {
		t.Errorf("voided record leaked into ledger: rows=%d total=%s", len(v.Rows), v.TotalAmount)
	}
}

func TestVoidTwiceIsNoop(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 20, 1))
	_ = svc.Void(rec.EntryID, "Mistake")
	if err := svc.Void(rec.EntryID, "Other"); err != nil {
		t.Fatalf("second void: %v", err)
	}
	stored, _ := svc.Store.Record(rec.EntryID)
	if stored.VoidReason != "Mistake" {
		t.Errorf("second void rewrote reason: %q", stored.VoidReason)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("tea", "", 20, 1))
	if err := svc.Delete(rec.EntryID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := svc.Store.Record(rec.EntryID); ok {
		t.Error("record still present")
	}
	if err := svc.Delete(rec.EntryID); err != domain.ErrNotFound {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestEditUnknownRecordIsNotFound(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Edit("nope", Patch{ItemLabel: "Tea"}); err != domain.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogItemDeletionLeavesRecordsUntouched(t *testing.T) {
	svc := newService(t)
	rec, _ := svc.Finalize(draft("kava_light", "", 20, 1))

	if err := svc.Store.DeleteItem("kava_light"); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	stored, _ := svc.Store.Record(rec.EntryID)
	if stored.ItemLabel != "Kava Light" || stored.CategoryPath != "K > Kava" {
		t.Errorf("record snapshot changed: %q %q", stored.ItemLabel, stored.CategoryPath)
	}
	if stored.UnitPrice.StringFixed(2) != "20.00" {
		t.Errorf("unit_price changed: %s", stored.UnitPrice)
	}
}
