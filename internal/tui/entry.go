package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/sales"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// Entry form fields in focus order. Date and time are steppers adjusted
// with up/down; the rest are text inputs or toggles.
const (
	entryFieldDate = iota
	entryFieldHour
	entryFieldMinute
	entryFieldAmPm
	entryFieldItem
	entryFieldPrice
	entryFieldQty
	entryFieldPayment
	entryFieldCustomer
	entryFieldCount
)

const (
	inputItem = iota
	inputPrice
	inputQty
	inputCustomer
	inputCount
)

type entryState struct {
	date        time.Time
	hour12      int
	minute      int
	ampm        string
	dateTouched bool
	timeTouched bool
	focus       int
	inputs      []textinput.Model
	itemID      string
	payment     string
	suggestion  string
	picker      pickerState
}

// pickerState drills down the category tree: each level shows the
// subfolders of the current folder followed by its active items.
type pickerState struct {
	folderID string
	trail    []string // ancestor folder ids, for backing out
	rows     []pickerRow
	idx      int
}

type pickerRow struct {
	isItem bool
	cat    domain.Category
	item   catalog.ItemWithPath
}

func newEntryState(now time.Time) entryState {
	inputs := make([]textinput.Model, inputCount)
	for i, label := range []string{"Item", "Price", "Qty", "Customer"} {
		inp := textinput.New()
		inp.Prompt = label + ": "
		inputs[i] = inp
	}
	inputs[inputQty].SetValue("1")
	h, m, ap := timeutil.Clock12(now)
	return entryState{
		date:    now,
		hour12:  h,
		minute:  m,
		ampm:    ap,
		focus:   entryFieldItem,
		inputs:  inputs,
		payment: domain.PaymentCash,
	}
}

// followClock keeps the sale time pinned to the live clock until the
// operator touches a time or date field.
func (e *entryState) followClock(now time.Time) {
	if !e.timeTouched {
		e.hour12, e.minute, e.ampm = timeutil.Clock12(now)
	}
	if !e.dateTouched {
		e.date = now
	}
}

// inputIndex maps a focused field to its text input, or -1 for steppers.
func inputIndex(field int) int {
	switch field {
	case entryFieldItem:
		return inputItem
	case entryFieldPrice:
		return inputPrice
	case entryFieldQty:
		return inputQty
	case entryFieldCustomer:
		return inputCustomer
	}
	return -1
}

func (a *App) openEntry() {
	a.state = viewEntry
	a.status = ""
	a.entry = newEntryState(a.now)
	a.entry.setFocus(entryFieldItem)
}

func (e *entryState) setFocus(field int) {
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	e.focus = field
	if idx := inputIndex(field); idx >= 0 {
		e.inputs[idx].Focus()
	}
}

func (e *entryState) cycleFocus(dir int) {
	e.setFocus((e.focus + dir + entryFieldCount) % entryFieldCount)
}

// adjust moves the stepper under focus. Touching date or time unpins the
// form from the live clock.
func (e *entryState) adjust(delta int) {
	switch e.focus {
	case entryFieldDate:
		e.date = e.date.AddDate(0, 0, delta)
		e.dateTouched = true
	case entryFieldHour:
		e.hour12 = (e.hour12-1+delta+12)%12 + 1
		e.timeTouched = true
	case entryFieldMinute:
		e.minute = (e.minute + delta + 60) % 60
		e.timeTouched = true
	case entryFieldAmPm:
		if e.ampm == "AM" {
			e.ampm = "PM"
		} else {
			e.ampm = "AM"
		}
		e.timeTouched = true
	case entryFieldPayment:
		if e.payment == domain.PaymentCash {
			e.payment = domain.PaymentCredit
		} else {
			e.payment = domain.PaymentCash
		}
	}
}

func (a *App) handleEntryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &a.entry
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.openLedger(a.businessToday())
		return a, nil
	case "tab", "down":
		e.cycleFocus(1)
		return a, nil
	case "shift+tab":
		e.cycleFocus(-1)
		return a, nil
	case "up":
		e.cycleFocus(-1)
		return a, nil
	case "left":
		if inputIndex(e.focus) < 0 {
			e.adjust(-1)
			return a, nil
		}
	case "right":
		if inputIndex(e.focus) < 0 {
			e.adjust(1)
			return a, nil
		}
	case "ctrl+f":
		a.openPicker()
		return a, nil
	case "ctrl+y":
		if e.suggestion != "" {
			e.inputs[inputItem].SetValue(e.suggestion)
			e.inputs[inputItem].CursorEnd()
			e.itemID = ""
			e.suggestion = ""
		}
		return a, nil
	case "enter":
		return a, a.finalizeEntry()
	}

	idx := inputIndex(e.focus)
	if idx < 0 {
		return a, nil
	}
	var cmd tea.Cmd
	before := e.inputs[idx].Value()
	e.inputs[idx], cmd = e.inputs[idx].Update(m)
	if idx == inputItem && e.inputs[idx].Value() != before {
		// Typed text breaks the picker link; the finalizer re-resolves.
		e.itemID = ""
		e.refreshSuggestion(a.store.ActiveItems())
	}
	return a, cmd
}

func (e *entryState) refreshSuggestion(active []catalog.ItemWithPath) {
	typed := strings.TrimSpace(e.inputs[inputItem].Value())
	e.suggestion = ""
	if typed == "" || catalog.Match(active, "", typed) != nil {
		return
	}
	if s, ok := catalog.Suggest(active, typed); ok {
		e.suggestion = s.Label
	}
}

func (a *App) finalizeEntry() tea.Cmd {
	e := &a.entry
	d := sales.Draft{
		Date:          e.date,
		Hour12:        e.hour12,
		Minute:        e.minute,
		AmPm:          e.ampm,
		ItemID:        e.itemID,
		ItemLabel:     e.inputs[inputItem].Value(),
		UnitPrice:     sales.ParsePrice(e.inputs[inputPrice].Value()),
		Quantity:      sales.ParseQuantity(e.inputs[inputQty].Value()),
		PaymentMethod: e.payment,
		CustomerName:  e.inputs[inputCustomer].Value(),
	}
	rec, err := a.sales.Finalize(d)
	if err != nil {
		a.status = err.Error()
		return nil
	}
	a.status = fmt.Sprintf("recorded %s x%d  %s%s", rec.ItemLabel, rec.Quantity, a.currency, rec.TotalPrice.StringFixed(2))
	for _, idx := range []int{inputItem, inputPrice, inputCustomer} {
		e.inputs[idx].SetValue("")
	}
	e.inputs[inputQty].SetValue("1")
	e.itemID = ""
	e.suggestion = ""
	e.setFocus(entryFieldItem)
	return nil
}

func (a *App) pickerRows(folderID string) []pickerRow {
	var rows []pickerRow
	cats := a.store.Categories()
	for _, c := range cats {
		if c.ParentID == folderID && c.IsActive {
			rows = append(rows, pickerRow{cat: c})
		}
	}
	sortPickerFolders(rows)
	for _, it := range a.store.ActiveItems() {
		if it.CategoryID == folderID {
			rows = append(rows, pickerRow{isItem: true, item: it})
		}
	}
	return rows
}

func sortPickerFolders(rows []pickerRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].cat.SortOrder != rows[j].cat.SortOrder {
			return rows[i].cat.SortOrder < rows[j].cat.SortOrder
		}
		return rows[i].cat.Label < rows[j].cat.Label
	})
}

func (a *App) openPicker() {
	if len(a.store.ActiveItems()) == 0 {
		a.status = "no active menu items"
		return
	}
	a.entry.picker = pickerState{rows: a.pickerRows("")}
	a.modal = modalItemPicker
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &a.entry.picker
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if p.idx > 0 {
			p.idx--
		}
	case "down", "j":
		if p.idx < len(p.rows)-1 {
			p.idx++
		}
	case "left", "backspace":
		if len(p.trail) == 0 {
			a.modal = modalNone
			return a, nil
		}
		p.folderID = p.trail[len(p.trail)-1]
		p.trail = p.trail[:len(p.trail)-1]
		p.rows = a.pickerRows(p.folderID)
		p.idx = 0
	case "enter", "right":
		if len(p.rows) == 0 {
			return a, nil
		}
		row := p.rows[p.idx]
		if !row.isItem {
			p.trail = append(p.trail, p.folderID)
			p.folderID = row.cat.ID
			p.rows = a.pickerRows(p.folderID)
			p.idx = 0
			return a, nil
		}
		e := &a.entry
		e.itemID = row.item.ID
		e.inputs[inputItem].SetValue(row.item.Label)
		e.inputs[inputItem].CursorEnd()
		e.inputs[inputPrice].SetValue(row.item.UnitPrice.StringFixed(2))
		e.suggestion = ""
		a.modal = modalNone
		e.setFocus(entryFieldQty)
	}
	return a, nil
}

func (a *App) renderEntry() string {
	e := &a.entry
	marker := func(field int) string {
		if e.focus == field {
			return "▶"
		}
		return " "
	}

	dateLabel := timeutil.FormatPrettyDate(e.date)
	if timeutil.DateString(e.date) == timeutil.DateString(a.now) {
		dateLabel += " (today)"
	}

	out := titleStyle.Render("New Sale") + "\n"
	out += fmt.Sprintf("%s Date:     %s\n", marker(entryFieldDate), dateLabel)
	out += fmt.Sprintf("%s Hour:     %02d   %s Min: %02d   %s %s\n",
		marker(entryFieldHour), e.hour12,
		marker(entryFieldMinute), e.minute,
		marker(entryFieldAmPm), e.ampm)
	out += fmt.Sprintf("%s %s\n", marker(entryFieldItem), e.inputs[inputItem].View())
	if e.suggestion != "" {
		out += faintStyle.Render(fmt.Sprintf("  did you mean %q? [ctrl+y]", e.suggestion)) + "\n"
	}
	out += fmt.Sprintf("%s %s\n", marker(entryFieldPrice), e.inputs[inputPrice].View())
	out += fmt.Sprintf("%s %s\n", marker(entryFieldQty), e.inputs[inputQty].View())
	out += fmt.Sprintf("%s Payment:  %s\n", marker(entryFieldPayment), e.payment)
	out += fmt.Sprintf("%s %s\n", marker(entryFieldCustomer), e.inputs[inputCustomer].View())

	price := sales.ParsePrice(e.inputs[inputPrice].Value())
	qty := sales.ParseQuantity(e.inputs[inputQty].Value())
	total := domain.Round2(price.Mul(decimal.NewFromInt(int64(qty))))
	out += fmt.Sprintf("\nTotal: %s%s\n", a.currency, total.StringFixed(2))
	out += faintStyle.Render("[enter] Record  [ctrl+f] Menu  [tab] Next field  [←/→] Adjust  [esc] Ledger  [ctrl+c] Quit")
	return out
}

func (a *App) renderPicker() string {
	p := &a.entry.picker
	out := titleStyle.Render("Menu - "+catalog.Path(p.folderID, a.store.Categories())) + "\n"
	if len(p.rows) == 0 {
		out += "Empty folder.\n"
	}
	for i, r := range p.rows {
		marker := " "
		if i == p.idx {
			marker = "▶"
		}
		if r.isItem {
			out += fmt.Sprintf("%s %-24s %s%s\n", marker, truncate(r.item.Label, 24), a.currency, r.item.UnitPrice.StringFixed(2))
		} else {
			out += fmt.Sprintf("%s %s/\n", marker, r.cat.Label)
		}
	}
	out += faintStyle.Render("[enter] Select/open  [←] Up a level  [esc] Cancel")
	return out
}
