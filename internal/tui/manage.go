package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/sales"
)

// manageState drives the menu editor: a flattened folder tree with the
// items inside each folder, plus root-level items at the end.
type manageState struct {
	cursor     int
	folderForm folderFormState
	itemForm   itemFormState
}

type manageRow struct {
	isItem bool
	depth  int
	cat    domain.Category
	item   domain.Item
}

func (a *App) manageRows() []manageRow {
	cats := a.store.Categories()
	items := a.store.Items()

	children := map[string][]domain.Category{}
	for _, c := range cats {
		children[c.ParentID] = append(children[c.ParentID], c)
	}
	byFolder := map[string][]domain.Item{}
	for _, it := range items {
		byFolder[it.CategoryID] = append(byFolder[it.CategoryID], it)
	}
	sortCats := func(list []domain.Category) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].SortOrder != list[j].SortOrder {
				return list[i].SortOrder < list[j].SortOrder
			}
			return list[i].Label < list[j].Label
		})
	}
	sortItems := func(list []domain.Item) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].SortOrder != list[j].SortOrder {
				return list[i].SortOrder < list[j].SortOrder
			}
			return list[i].Label < list[j].Label
		})
	}

	var rows []manageRow
	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		kids := children[parentID]
		sortCats(kids)
		for _, c := range kids {
			rows = append(rows, manageRow{depth: depth, cat: c})
			its := byFolder[c.ID]
			sortItems(its)
			for _, it := range its {
				rows = append(rows, manageRow{isItem: true, depth: depth + 1, item: it})
			}
			walk(c.ID, depth+1)
		}
	}
	walk("", 0)

	rootItems := byFolder[""]
	sortItems(rootItems)
	for _, it := range rootItems {
		rows = append(rows, manageRow{isItem: true, item: it})
	}
	return rows
}

func (a *App) handleManageKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.manageRows()
	cur := func() *manageRow {
		if len(rows) == 0 || a.manage.cursor >= len(rows) {
			return nil
		}
		return &rows[a.manage.cursor]
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.openEntry()
	case "l":
		a.openLedger(a.businessToday())
	case "up", "k":
		if a.manage.cursor > 0 {
			a.manage.cursor--
		}
	case "down", "j":
		if a.manage.cursor < len(rows)-1 {
			a.manage.cursor++
		}
	case "f":
		parent := ""
		if r := cur(); r != nil && !r.isItem {
			parent = r.cat.ID
		}
		a.openFolderForm("", "", parent)
	case "a":
		folder := ""
		if r := cur(); r != nil {
			if r.isItem {
				folder = r.item.CategoryID
			} else {
				folder = r.cat.ID
			}
		}
		a.openItemForm(nil, folder)
	case "enter", "e":
		r := cur()
		if r == nil {
			return a, nil
		}
		if r.isItem {
			it := r.item
			a.openItemForm(&it, it.CategoryID)
		} else {
			a.openFolderForm(r.cat.ID, r.cat.Label, r.cat.ParentID)
		}
	case " ", "space":
		r := cur()
		if r == nil || !r.isItem {
			return a, nil
		}
		if err := a.store.SetItemActive(r.item.ID, !r.item.IsActive); err != nil {
			a.status = "error: " + err.Error()
		}
	case "K":
		r := cur()
		if r == nil {
			return a, nil
		}
		if r.isItem {
			a.store.MoveItem(r.item.ID, -1)
		} else {
			a.store.MoveCategory(r.cat.ID, -1)
		}
	case "J":
		r := cur()
		if r == nil {
			return a, nil
		}
		if r.isItem {
			a.store.MoveItem(r.item.ID, 1)
		} else {
			a.store.MoveCategory(r.cat.ID, 1)
		}
	case "x", "backspace", "delete":
		r := cur()
		if r == nil {
			return a, nil
		}
		var err error
		if r.isItem {
			err = a.store.DeleteItem(r.item.ID)
		} else {
			err = a.store.DeleteCategory(r.cat.ID)
		}
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		if a.manage.cursor >= len(rows)-1 && a.manage.cursor > 0 {
			a.manage.cursor--
		}
		a.status = "deleted"
	}
	return a, nil
}

func (a *App) renderManage() string {
	rows := a.manageRows()
	out := titleStyle.Render("Menu") + "\n"
	if len(rows) == 0 {
		out += "Empty menu. Add a folder or an item.\n"
	}
	for i, r := range rows {
		marker := " "
		if i == a.manage.cursor {
			marker = "▶"
		}
		indent := strings.Repeat("  ", r.depth)
		var line string
		if r.isItem {
			line = fmt.Sprintf("%s- %-24s %s%s", indent, truncate(r.item.Label, 24), a.currency, r.item.UnitPrice.StringFixed(2))
			if !r.item.IsActive {
				line = voidStyle.Render(line + "  (inactive)")
			}
		} else {
			line = fmt.Sprintf("%s%s/", indent, r.cat.Label)
		}
		out += fmt.Sprintf("%s %s\n", marker, line)
	}
	out += faintStyle.Render("\n[f] New folder  [a] New item  [enter] Edit  [space] Toggle active  [K/J] Move  [x] Delete  [l] Ledger  [esc] Back  [q] Quit")
	return out
}

// folderFormState creates or edits a folder; left/right cycles its parent
// through the root plus every other folder. Cycle-forming choices are
// rejected on save.
type folderFormState struct {
	editingID string
	name      textinput.Model
	parents   []domain.Category
	parentIdx int // 0 = root, otherwise parents[parentIdx-1]
}

func (a *App) openFolderForm(editingID, label, parentID string) {
	name := textinput.New()
	name.Prompt = "Name: "
	name.SetValue(label)
	name.Focus()
	name.CursorEnd()

	var parents []domain.Category
	for _, c := range a.store.Categories() {
		if c.ID != editingID {
			parents = append(parents, c)
		}
	}
	idx := 0
	for i, c := range parents {
		if c.ID == parentID {
			idx = i + 1
		}
	}
	a.manage.folderForm = folderFormState{editingID: editingID, name: name, parents: parents, parentIdx: idx}
	a.modal = modalFolderForm
}

func (f *folderFormState) parentID() string {
	if f.parentIdx == 0 {
		return ""
	}
	return f.parents[f.parentIdx-1].ID
}

func (a *App) handleFolderFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.manage.folderForm
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "left":
		f.parentIdx = (f.parentIdx - 1 + len(f.parents) + 1) % (len(f.parents) + 1)
		return a, nil
	case "right":
		f.parentIdx = (f.parentIdx + 1) % (len(f.parents) + 1)
		return a, nil
	case "enter":
		var err error
		if f.editingID == "" {
			_, err = a.store.AddCategory(f.name.Value(), f.parentID())
		} else {
			err = a.store.UpdateCategory(f.editingID, f.name.Value(), f.parentID())
		}
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.modal = modalNone
		a.status = "folder saved"
		return a, nil
	}
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(m)
	return a, cmd
}

func (a *App) renderFolderForm() string {
	f := &a.manage.folderForm
	title := "New Folder"
	if f.editingID != "" {
		title = "Edit Folder"
	}
	parent := "(root)"
	if f.parentIdx > 0 {
		parent = f.parents[f.parentIdx-1].Label
	}
	return titleStyle.Render(title) + "\n" +
		f.name.View() + "\n" +
		fmt.Sprintf("Parent: ◀ %s ▶\n", parent) +
		faintStyle.Render("[enter] Save  [←/→] Parent  [esc] Cancel")
}

// itemFormState creates or edits a menu item.
type itemFormState struct {
	editingID string
	focus     int // 0 name, 1 price, 2 folder
	name      textinput.Model
	price     textinput.Model
	folders   []domain.Category
	folderIdx int // 0 = root
}

func (a *App) openItemForm(it *domain.Item, folderID string) {
	name := textinput.New()
	name.Prompt = "Name: "
	price := textinput.New()
	price.Prompt = "Price: "
	editingID := ""
	if it != nil {
		editingID = it.ID
		name.SetValue(it.Label)
		price.SetValue(it.UnitPrice.StringFixed(2))
	}
	name.Focus()
	name.CursorEnd()

	folders := a.store.Categories()
	idx := 0
	for i, c := range folders {
		if c.ID == folderID {
			idx = i + 1
		}
	}
	a.manage.itemForm = itemFormState{editingID: editingID, name: name, price: price, folders: folders, folderIdx: idx}
	a.modal = modalItemForm
}

func (f *itemFormState) folderID() string {
	if f.folderIdx == 0 {
		return ""
	}
	return f.folders[f.folderIdx-1].ID
}

func (f *itemFormState) setFocus(n int) {
	f.focus = n
	f.name.Blur()
	f.price.Blur()
	switch n {
	case 0:
		f.name.Focus()
	case 1:
		f.price.Focus()
	}
}

func (a *App) handleItemFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.manage.itemForm
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % 3)
		return a, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + 2) % 3)
		return a, nil
	case "left":
		if f.focus == 2 {
			f.folderIdx = (f.folderIdx - 1 + len(f.folders) + 1) % (len(f.folders) + 1)
			return a, nil
		}
	case "right":
		if f.focus == 2 {
			f.folderIdx = (f.folderIdx + 1) % (len(f.folders) + 1)
			return a, nil
		}
	case "enter":
		price := sales.ParsePrice(f.price.Value())
		var err error
		if f.editingID == "" {
			_, err = a.store.AddItem(f.name.Value(), price, f.folderID())
		} else {
			err = a.store.UpdateItem(f.editingID, f.name.Value(), price, f.folderID())
		}
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.modal = modalNone
		a.status = "item saved"
		return a, nil
	}
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(m)
	case 1:
		f.price, cmd = f.price.Update(m)
	}
	return a, cmd
}

func (a *App) renderItemForm() string {
	f := &a.manage.itemForm
	title := "New Item"
	if f.editingID != "" {
		title = "Edit Item"
	}
	folder := "(root)"
	if f.folderIdx > 0 {
		folder = f.folders[f.folderIdx-1].Label
	}
	marker := func(n int) string {
		if f.focus == n {
			return "▶"
		}
		return " "
	}
	return titleStyle.Render(title) + "\n" +
		fmt.Sprintf("%s %s\n", marker(0), f.name.View()) +
		fmt.Sprintf("%s %s\n", marker(1), f.price.View()) +
		fmt.Sprintf("%s Folder: ◀ %s ▶\n", marker(2), folder) +
		faintStyle.Render("[enter] Save  [tab] Next field  [←/→] Folder  [esc] Cancel")
}
