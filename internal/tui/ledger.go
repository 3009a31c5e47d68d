package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/ledger"
	"github.com/kavaroom/tillbook/internal/sales"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// ledgerState drives the per-day ledger: pageable by business date, with
// sort direction and balance mode toggles.
type ledgerState struct {
	day       string
	ascending bool
	mode      ledger.BalanceMode
	cursor    int
	editingID string
	edit      editSaleState
}

func newLedgerState(day string) ledgerState {
	return ledgerState{day: day, ascending: true, mode: ledger.BalanceAll}
}

func (a *App) openLedger(day string) {
	a.state = viewLedger
	a.status = ""
	a.ledger.day = day
	a.ledger.cursor = 0
}

func (a *App) ledgerView() ledger.View {
	return ledger.Build(a.store.Records(), a.ledger.day, a.store.Settings(), a.ledger.ascending, a.ledger.mode)
}

func (a *App) pageLedger(days int) {
	t, err := time.ParseInLocation(timeutil.DateLayout, a.ledger.day, time.Local)
	if err != nil {
		t = a.now
	}
	a.ledger.day = timeutil.DateString(t.AddDate(0, 0, days))
	a.ledger.cursor = 0
}

func (a *App) handleLedgerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleNavKey(m); ok {
		return a, cmd
	}
	l := &a.ledger
	v := a.ledgerView()
	l.cursor = clampCursor(l.cursor, len(v.Rows))
	switch m.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(v.Rows)-1 {
			l.cursor++
		}
	case "[":
		a.pageLedger(-1)
	case "]":
		a.pageLedger(1)
	case "t":
		a.openLedger(a.businessToday())
	case "o":
		l.ascending = !l.ascending
		l.cursor = 0
	case "c":
		if l.mode == ledger.BalanceAll {
			l.mode = ledger.BalanceCashOnly
		} else {
			l.mode = ledger.BalanceAll
		}
	case "e", "enter":
		if len(v.Rows) == 0 {
			return a, nil
		}
		a.openEditSale(v.Rows[l.cursor].EntryID)
	case "v":
		if len(v.Rows) == 0 {
			return a, nil
		}
		r := v.Rows[l.cursor]
		if err := a.sales.Void(r.EntryID, ""); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.status = "voided " + r.ItemLabel
	case "x":
		if len(v.Rows) == 0 {
			return a, nil
		}
		l.editingID = v.Rows[l.cursor].EntryID
		a.modal = modalConfirmDelete
	case "w":
		return a, a.exportLedgerCmd()
	case "W":
		return a, a.exportRawCmd()
	case "X":
		a.modal = modalConfirmClear
	case "esc":
		a.status = ""
	}
	return a, nil
}

func (a *App) renderLedger() string {
	l := &a.ledger
	v := a.ledgerView()

	dir := "oldest first"
	if !l.ascending {
		dir = "newest first"
	}
	modeLabel := "all payments"
	if l.mode == ledger.BalanceCashOnly {
		modeLabel = "cash balance only"
	}
	out := titleStyle.Render("Sales Ledger - "+l.day) + "  " + faintStyle.Render(dir+", "+modeLabel) + "\n"

	if len(v.Rows) == 0 {
		out += "No sales on this business day.\n"
	} else {
		out += faintStyle.Render(fmt.Sprintf("  %-9s %-28s %9s %4s %9s %10s %-6s %s",
			"time", "item", "unit", "qty", "total", "balance", "pay", "customer")) + "\n"
		for i, r := range v.Rows {
			marker := " "
			if i == l.cursor {
				marker = "▶"
			}
			line := fmt.Sprintf("%-9s %-28s %9s %4d %9s %10s %-6s %s",
				r.SaleTimeLocal, truncate(r.ItemLabel, 28),
				r.UnitPrice.StringFixed(2), r.Quantity, r.TotalPrice.StringFixed(2),
				r.RunningBalance.StringFixed(2), r.PaymentMethod, r.CustomerName)
			if r.Credit && l.mode == ledger.BalanceCashOnly {
				line = faintStyle.Render(line)
			}
			out += fmt.Sprintf("%s %s\n", marker, line)
		}
	}
	out += fmt.Sprintf("\nItems: %d   Total: %s%s\n", v.TotalQty, a.currency, v.TotalAmount.StringFixed(2))
	out += faintStyle.Render("[[/]] Prev/next day  [t] Today  [o] Sort  [c] Balance mode  [e] Edit  [v] Void  [x] Delete\n" +
		"[w] Export day CSV  [W] Export all CSV  [X] Clear all  [n] New sale  [b] Entries  [m] Menu  [s] Settings  [q] Quit")
	return out
}

// Edit-sale modal fields in focus order.
const (
	editFieldItem = iota
	editFieldPrice
	editFieldQty
	editFieldHour
	editFieldMinute
	editFieldAmPm
	editFieldPayment
	editFieldCustomer
	editFieldCount
)

type editSaleState struct {
	focus   int
	inputs  []textinput.Model // item, price, qty, customer
	hour12  int
	minute  int
	ampm    string
	payment string
}

func editInputIndex(field int) int {
	switch field {
	case editFieldItem:
		return inputItem
	case editFieldPrice:
		return inputPrice
	case editFieldQty:
		return inputQty
	case editFieldCustomer:
		return inputCustomer
	}
	return -1
}

func (a *App) openEditSale(entryID string) {
	rec, ok := a.store.Record(entryID)
	if !ok {
		a.status = "entry not found"
		return
	}
	inputs := make([]textinput.Model, inputCount)
	for i, label := range []string{"Item", "Price", "Qty", "Customer"} {
		inp := textinput.New()
		inp.Prompt = label + ": "
		inputs[i] = inp
	}
	inputs[inputItem].SetValue(rec.ItemLabel)
	inputs[inputPrice].SetValue(rec.UnitPrice.StringFixed(2))
	inputs[inputQty].SetValue(fmt.Sprintf("%d", rec.Quantity))
	inputs[inputCustomer].SetValue(rec.CustomerName)
	inputs[inputItem].Focus()
	inputs[inputItem].CursorEnd()

	st := timeutil.FromEpochMillis(rec.SaleTimeEpochMS)
	h, min, ap := timeutil.Clock12(st)
	a.ledger.editingID = entryID
	a.ledger.edit = editSaleState{
		inputs:  inputs,
		hour12:  h,
		minute:  min,
		ampm:    ap,
		payment: rec.PaymentMethod,
	}
	a.modal = modalEditSale
}

func (e *editSaleState) setFocus(field int) {
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	e.focus = field
	if idx := editInputIndex(field); idx >= 0 {
		e.inputs[idx].Focus()
	}
}

func (e *editSaleState) adjust(delta int) {
	switch e.focus {
	case editFieldHour:
		e.hour12 = (e.hour12-1+delta+12)%12 + 1
	case editFieldMinute:
		e.minute = (e.minute + delta + 60) % 60
	case editFieldAmPm:
		if e.ampm == "AM" {
			e.ampm = "PM"
		} else {
			e.ampm = "AM"
		}
	case editFieldPayment:
		if e.payment == domain.PaymentCash {
			e.payment = domain.PaymentCredit
		} else {
			e.payment = domain.PaymentCash
		}
	}
}

func (a *App) handleEditSaleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &a.ledger.edit
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "tab", "down":
		e.setFocus((e.focus + 1) % editFieldCount)
		return a, nil
	case "shift+tab", "up":
		e.setFocus((e.focus - 1 + editFieldCount) % editFieldCount)
		return a, nil
	case "left":
		if editInputIndex(e.focus) < 0 {
			e.adjust(-1)
			return a, nil
		}
	case "right":
		if editInputIndex(e.focus) < 0 {
			e.adjust(1)
			return a, nil
		}
	case "enter":
		patch := sales.Patch{
			ItemLabel:     e.inputs[inputItem].Value(),
			UnitPrice:     sales.ParsePrice(e.inputs[inputPrice].Value()),
			Quantity:      sales.ParseQuantity(e.inputs[inputQty].Value()),
			PaymentMethod: e.payment,
			CustomerName:  e.inputs[inputCustomer].Value(),
			Time:          &sales.TimeParts{Hour12: e.hour12, Minute: e.minute, AmPm: e.ampm},
		}
		rec, err := a.sales.Edit(a.ledger.editingID, patch)
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.modal = modalNone
		a.status = "updated " + rec.ItemLabel
		return a, nil
	}
	idx := editInputIndex(e.focus)
	if idx < 0 {
		return a, nil
	}
	var cmd tea.Cmd
	before := e.inputs[idx].Value()
	e.inputs[idx], cmd = e.inputs[idx].Update(m)
	if idx == inputItem && e.inputs[idx].Value() != before {
		// An exact label match re-links the catalog item and pre-fills
		// its current price. The save path re-resolves either way.
		if it := catalog.Match(a.store.ActiveItems(), "", e.inputs[idx].Value()); it != nil {
			e.inputs[inputPrice].SetValue(it.UnitPrice.StringFixed(2))
		}
	}
	return a, cmd
}

func (a *App) renderEditSale() string {
	e := &a.ledger.edit
	marker := func(field int) string {
		if e.focus == field {
			return "▶"
		}
		return " "
	}
	out := titleStyle.Render("Edit Entry") + "\n"
	out += fmt.Sprintf("%s %s\n", marker(editFieldItem), e.inputs[inputItem].View())
	out += fmt.Sprintf("%s %s\n", marker(editFieldPrice), e.inputs[inputPrice].View())
	out += fmt.Sprintf("%s %s\n", marker(editFieldQty), e.inputs[inputQty].View())
	out += fmt.Sprintf("%s Hour: %02d   %s Min: %02d   %s %s\n",
		marker(editFieldHour), e.hour12,
		marker(editFieldMinute), e.minute,
		marker(editFieldAmPm), e.ampm)
	out += fmt.Sprintf("%s Payment:  %s\n", marker(editFieldPayment), e.payment)
	out += fmt.Sprintf("%s %s\n", marker(editFieldCustomer), e.inputs[inputCustomer].View())
	out += faintStyle.Render("[enter] Save  [tab] Next field  [←/→] Adjust  [esc] Cancel")
	return out
}
