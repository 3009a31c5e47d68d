package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavaroom/tillbook/internal/config"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// settingsState drives the business-window editor plus the presentation
// preferences. Window changes apply and persist immediately; the ledger
// reclassifies old records on the fly.
type settingsState struct {
	cursor int // 0 opening, 1 closing, 2 currency
}

const settingsRowCount = 3

var currencyOptions = []string{"$", "€", "£", "¥"}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleNavKey(m); ok {
		return a, cmd
	}
	adjust := func(delta int) {
		if a.settings.cursor == 2 {
			if delta > 0 {
				a.cycleCurrency(1)
			} else {
				a.cycleCurrency(-1)
			}
			return
		}
		s := a.store.Settings()
		wrap := func(v int) int { return (v + delta + 1440) % 1440 }
		if a.settings.cursor == 0 {
			s.OpeningMin = wrap(s.OpeningMin)
		} else {
			s.ClosingMin = wrap(s.ClosingMin)
		}
		a.store.UpdateSettings(s)
	}
	switch m.String() {
	case "up", "k":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "down", "j":
		if a.settings.cursor < settingsRowCount-1 {
			a.settings.cursor++
		}
	case "left":
		adjust(-15)
	case "right":
		adjust(15)
	case "shift+left":
		adjust(-1)
	case "shift+right":
		adjust(1)
	case "r":
		a.store.UpdateSettings(domain.DefaultSettings())
		a.status = "window reset to full day"
	case "X":
		a.modal = modalConfirmClear
	case "esc":
		a.openEntry()
	}
	return a, nil
}

// cycleCurrency steps the display currency and writes it back to the
// config file, the same preference the next launch reads.
func (a *App) cycleCurrency(dir int) {
	idx := 0
	for i, c := range currencyOptions {
		if c == a.currency {
			idx = i
		}
	}
	idx = (idx + dir + len(currencyOptions)) % len(currencyOptions)
	a.currency = currencyOptions[idx]
	a.cfg.UI.CurrencySymbol = a.currency
	if err := config.Save(a.cfg); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = "currency saved"
}

func (a *App) renderSettings() string {
	s := a.store.Settings()
	marker := func(n int) string {
		if a.settings.cursor == n {
			return "▶"
		}
		return " "
	}
	clock := func(minutes int) string {
		return timeutil.FormatClockParts(timeutil.MinuteParts(minutes))
	}

	out := titleStyle.Render("Settings") + "\n"
	out += "Business day window\n"
	out += fmt.Sprintf("%s Opens:  %s\n", marker(0), clock(s.OpeningMin))
	out += fmt.Sprintf("%s Closes: %s\n", marker(1), clock(s.ClosingMin))
	if s.SpansMidnight() {
		out += "\nWindow spans midnight: sales up to closing time count toward the previous day.\n"
	} else {
		out += "\nWindow stays within the calendar day.\n"
	}
	out += fmt.Sprintf("\n%s Currency: ◀ %s ▶\n", marker(2), a.currency)
	out += faintStyle.Render("\n[←/→] Adjust 15 min  [shift+←/→] Adjust 1 min  [r] Reset  [X] Clear all sales\n" +
		"[n] New sale  [b] Entries  [l] Ledger  [m] Menu  [esc] Back  [q] Quit")
	return out
}
