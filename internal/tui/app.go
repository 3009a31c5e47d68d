// Package tui is the terminal front end: a handful of screens over the
// in-process store, rendered with bubbletea.
package tui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kavaroom/tillbook/internal/config"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/export"
	"github.com/kavaroom/tillbook/internal/ledger"
	"github.com/kavaroom/tillbook/internal/sales"
	"github.com/kavaroom/tillbook/internal/state"
	"github.com/kavaroom/tillbook/internal/timeutil"
)

// App ties together views.
type App struct {
	ctx      context.Context
	store    *state.Store
	sales    *sales.Service
	cfg      config.Config
	now      time.Time
	state    appState
	modal    modalState
	status   string
	currency string

	entry    entryState
	table    tableState
	ledger   ledgerState
	manage   manageState
	settings settingsState
}

type appState string

const (
	viewEntry    appState = "entry"
	viewTable    appState = "table"
	viewLedger   appState = "ledger"
	viewManage   appState = "manage"
	viewSettings appState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalItemPicker    modalState = "itemPicker"
	modalEditSale      modalState = "editSale"
	modalConfirmDelete modalState = "confirmDelete"
	modalConfirmClear  modalState = "confirmClear"
	modalFolderForm    modalState = "folderForm"
	modalItemForm      modalState = "itemForm"
)

func New(ctx context.Context, cfg config.Config, st *state.Store, svc *sales.Service) *App {
	a := &App{
		ctx:      ctx,
		store:    st,
		sales:    svc,
		cfg:      cfg,
		now:      time.Now(),
		state:    viewEntry,
		currency: cfg.UI.CurrencySymbol,
	}
	a.entry = newEntryState(a.now)
	a.ledger = newLedgerState(a.businessToday())
	return a
}

// businessToday is the business date the live clock falls in.
func (a *App) businessToday() string {
	return ledger.BusinessDate(a.now, a.store.Settings())
}

func (a *App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tickMsg:
		a.now = time.Time(m)
		if a.state == viewEntry {
			a.entry.followClock(a.now)
		}
		return a, tickCmd()
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	case exportDoneMsg:
		a.status = "exported " + m.path
		return a, nil
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewEntry:
			return a.handleEntryKey(m)
		case viewTable:
			return a.handleTableKey(m)
		case viewLedger:
			return a.handleLedgerKey(m)
		case viewManage:
			return a.handleManageKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		}
	}
	return a, nil
}

// handleNavKey covers the view-switch bindings shared by every non-entry
// screen. Reports whether the key was consumed.
func (a *App) handleNavKey(m tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(m, navKeys.Quit):
		return tea.Quit, true
	case key.Matches(m, navKeys.NewSale):
		a.openEntry()
		return nil, true
	case key.Matches(m, navKeys.Table):
		a.state = viewTable
		a.table.cursor = 0
		a.status = ""
		return nil, true
	case key.Matches(m, navKeys.Ledger):
		a.openLedger(a.businessToday())
		return nil, true
	case key.Matches(m, navKeys.Manage):
		a.state = viewManage
		a.manage.cursor = 0
		a.status = ""
		return nil, true
	case key.Matches(m, navKeys.Settings):
		a.state = viewSettings
		a.settings.cursor = 0
		a.status = ""
		return nil, true
	}
	return nil, false
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalItemPicker:
		return a.handlePickerKey(m)
	case modalEditSale:
		return a.handleEditSaleKey(m)
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if err := a.sales.Delete(a.ledger.editingID); err != nil {
				a.status = "error: " + err.Error()
			} else {
				a.status = "entry deleted"
			}
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalConfirmClear:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			a.sales.ClearAll()
			a.status = "all sales cleared"
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalFolderForm:
		return a.handleFolderFormKey(m)
	case modalItemForm:
		return a.handleItemFormKey(m)
	}
	return a, nil
}

func (a *App) View() string {
	header := titleStyle.Render("Tillbook") + "  " +
		faintStyle.Render(timeutil.FormatPrettyDate(a.now)+"  "+timeutil.FormatClock(a.now)+
			"  business day "+a.businessToday())

	var body string
	switch a.state {
	case viewTable:
		body = a.renderTable()
	case viewLedger:
		body = a.renderLedger()
	case viewManage:
		body = a.renderManage()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderEntry()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	out := header + "\n\n" + body
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalItemPicker:
		return a.renderPicker()
	case modalEditSale:
		return a.renderEditSale()
	case modalConfirmDelete:
		return titleStyle.Render("Delete this entry?") + "\nThe record is removed permanently; use void to keep it for audit.\n[y] Yes  [n] No"
	case modalConfirmClear:
		return titleStyle.Render("Clear ALL sales?") + "\nEvery sale record is deleted. The menu and settings stay.\n[y] Yes  [n] No"
	case modalFolderForm:
		return a.renderFolderForm()
	case modalItemForm:
		return a.renderItemForm()
	}
	return ""
}

// exportCmd writes a CSV into the working directory and reports the file
// name.
func exportCmd(name string, write func(f *os.File) error) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return errMsg{err}
		}
		defer f.Close()
		if err := write(f); err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{path: name}
	}
}

func (a *App) exportLedgerCmd() tea.Cmd {
	v := ledger.Build(a.store.Records(), a.ledger.day, a.store.Settings(), a.ledger.ascending, a.ledger.mode)
	return exportCmd(export.Filename(a.ledger.day), func(f *os.File) error {
		return export.LedgerCSV(f, v)
	})
}

// exportTodayRawCmd dumps the current business day's records as they are
// stored, voids included.
func (a *App) exportTodayRawCmd(rows []domain.SaleRecord) tea.Cmd {
	name := "sales_" + a.businessToday() + "_raw.csv"
	return exportCmd(name, func(f *os.File) error {
		return export.RawCSV(f, rows)
	})
}

func (a *App) exportRawCmd() tea.Cmd {
	records := a.store.Records()
	return exportCmd("sales_all.csv", func(f *os.File) error {
		return export.RawCSV(f, records)
	})
}

// clampCursor keeps a list cursor inside a row set that may have shrunk
// since the last keypress (deletes, voids, records edited off the day).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// messages
type tickMsg time.Time

type statusMsg string

type errMsg struct{ error }

type exportDoneMsg struct{ path string }

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Italic(true)
	voidStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
)
