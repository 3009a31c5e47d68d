package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/ledger"
)

// tableState drives the raw record view for the current business day:
// every record including voids, in the order they were entered.
type tableState struct {
	cursor int
}

func (a *App) tableRows() []domain.SaleRecord {
	day := a.businessToday()
	s := a.store.Settings()
	var rows []domain.SaleRecord
	for _, r := range a.store.Records() {
		if ledger.EffectiveBusinessDate(r, s) == day {
			rows = append(rows, r)
		}
	}
	return rows
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleNavKey(m); ok {
		return a, cmd
	}
	rows := a.tableRows()
	a.table.cursor = clampCursor(a.table.cursor, len(rows))
	switch m.String() {
	case "up", "k":
		if a.table.cursor > 0 {
			a.table.cursor--
		}
	case "down", "j":
		if a.table.cursor < len(rows)-1 {
			a.table.cursor++
		}
	case "v":
		if len(rows) == 0 {
			return a, nil
		}
		r := rows[a.table.cursor]
		if r.IsVoid {
			a.status = "already voided"
			return a, nil
		}
		if err := a.sales.Void(r.EntryID, ""); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.status = "voided " + r.ItemLabel
	case "e", "enter":
		if len(rows) == 0 {
			return a, nil
		}
		a.openEditSale(rows[a.table.cursor].EntryID)
	case "w":
		return a, a.exportTodayRawCmd(rows)
	case "esc":
		a.status = ""
	}
	return a, nil
}

func (a *App) renderTable() string {
	rows := a.tableRows()
	out := titleStyle.Render("Today's Entries - "+a.businessToday()) + "\n"
	if len(rows) == 0 {
		out += "No entries yet.\n"
	}
	for i, r := range rows {
		marker := " "
		if i == a.table.cursor {
			marker = "▶"
		}
		line := fmt.Sprintf("%s  %-28s x%-4d %s%8s  %-6s %s",
			r.SaleTimeLocal, truncate(r.ItemLabel, 28), r.Quantity,
			a.currency, r.TotalPrice.StringFixed(2), r.PaymentMethod, r.CustomerName)
		if r.IsVoid {
			line = voidStyle.Render(line + "  [" + r.VoidReason + "]")
		}
		out += fmt.Sprintf("%s %s\n", marker, line)
	}
	out += faintStyle.Render("\n[v] Void  [e] Edit  [w] Export CSV  [n] New sale  [l] Ledger  [m] Menu  [s] Settings  [q] Quit")
	return out
}

// truncate shortens a label to n runes, ellipsis included. Rune-based so
// multi-byte labels never get cut mid-character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
