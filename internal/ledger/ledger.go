package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/domain"
)

// BalanceMode selects which payment methods move the running balance.
type BalanceMode string

const (
	// BalanceAll accumulates every row.
	BalanceAll BalanceMode = "all"
	// BalanceCashOnly accumulates cash rows; credit rows still appear but
	// leave the balance unchanged.
	BalanceCashOnly BalanceMode = "cash"
)

// Row is one ledger line: the record plus its running balance at that
// point in the chosen order.
type Row struct {
	domain.SaleRecord
	RunningBalance decimal.Decimal
	Credit         bool
}

// View is the computed ledger for a single business date. TotalQty and
// TotalAmount cover every non-void row regardless of balance mode.
type View struct {
	Rows        []Row
	TotalQty    int
	TotalAmount decimal.Decimal
}

// Build filters records to the target business date (recomputed live via
// EffectiveBusinessDate), drops voids, orders by sale time, and walks the
// sequence accumulating the running balance.
//
// The sort is stable: rows with equal timestamps keep their store insertion
// order.
func Build(records []domain.SaleRecord, day string, s domain.Settings, sortAscending bool, mode BalanceMode) View {
	var kept []domain.SaleRecord
	for _, r := range records {
		if r.IsVoid {
			continue
		}
		if EffectiveBusinessDate(r, s) == day {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if sortAscending {
			return kept[i].SaleTimeEpochMS < kept[j].SaleTimeEpochMS
		}
		return kept[i].SaleTimeEpochMS > kept[j].SaleTimeEpochMS
	})

	v := View{TotalAmount: decimal.Zero}
	running := decimal.Zero
	for _, r := range kept {
		credit := r.IsCredit()
		if mode == BalanceAll || !credit {
			running = running.Add(r.TotalPrice)
		}
		v.Rows = append(v.Rows, Row{SaleRecord: r, RunningBalance: running, Credit: credit})
		v.TotalQty += r.Quantity
		v.TotalAmount = v.TotalAmount.Add(r.TotalPrice)
	}
	return v
}
