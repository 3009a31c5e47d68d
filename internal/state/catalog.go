package state

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
)

// AddCategory creates a folder under parentID (empty = root).
func (s *Store) AddCategory(label, parentID string) (domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Category{}, domain.ErrNameRequired
	}
	c := domain.Category{
		ID:        uuid.NewString(),
		Label:     label,
		ParentID:  parentID,
		SortOrder: len(s.categories) + 1,
		IsActive:  true,
	}
	next := append(append([]domain.Category(nil), s.categories...), c)
	s.categories = next
	s.persist(KeyCategories, s.categories)
	return c, nil
}

// UpdateCategory renames and/or re-parents a folder. Cycle-forming moves
// are rejected before any state changes.
func (s *Store) UpdateCategory(id, label, parentID string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.ErrNameRequired
	}
	if err := catalog.ValidateParent(id, parentID, s.categories); err != nil {
		return err
	}
	found := false
	next := make([]domain.Category, len(s.categories))
	for i, c := range s.categories {
		if c.ID == id {
			c.Label = label
			c.ParentID = parentID
			found = true
		}
		next[i] = c
	}
	if !found {
		return domain.ErrNotFound
	}
	s.categories = next
	s.persist(KeyCategories, s.categories)
	return nil
}

// DeleteCategory removes an empty folder. Never cascades.
func (s *Store) DeleteCategory(id string) error {
	if err := catalog.ValidateDelete(id, s.categories, s.items); err != nil {
		return err
	}
	next := make([]domain.Category, 0, len(s.categories))
	found := false
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.categories = next
	s.persist(KeyCategories, s.categories)
	return nil
}

// AddItem creates a menu item in categoryID (empty = root).
func (s *Store) AddItem(label string, unitPrice decimal.Decimal, categoryID string) (domain.Item, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Item{}, domain.ErrNameRequired
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	it := domain.Item{
		ID:         uuid.NewString(),
		Label:      label,
		UnitPrice:  domain.Round2(unitPrice),
		CategoryID: categoryID,
		SortOrder:  len(s.items) + 1,
		IsActive:   true,
	}
	s.items = append(append([]domain.Item(nil), s.items...), it)
	s.persist(KeyItems, s.items)
	return it, nil
}

// UpdateItem edits an item's label, price and folder. Existing sale
// records are untouched; they carry their own snapshot.
func (s *Store) UpdateItem(id, label string, unitPrice decimal.Decimal, categoryID string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.ErrNameRequired
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	found := false
	next := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		if it.ID == id {
			it.Label = label
			it.UnitPrice = domain.Round2(unitPrice)
			it.CategoryID = categoryID
			found = true
		}
		next[i] = it
	}
	if !found {
		return domain.ErrNotFound
	}
	s.items = next
	s.persist(KeyItems, s.items)
	return nil
}

// SetItemActive toggles an item in or out of the selection surfaces.
func (s *Store) SetItemActive(id string, active bool) error {
	found := false
	next := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		if it.ID == id {
			it.IsActive = active
			found = true
		}
		next[i] = it
	}
	if !found {
		return domain.ErrNotFound
	}
	s.items = next
	s.persist(KeyItems, s.items)
	return nil
}

// DeleteItem removes an item from the menu. Historical sale records keep
// their snapshotted label, price and path.
func (s *Store) DeleteItem(id string) error {
	next := make([]domain.Item, 0, len(s.items))
	found := false
	for _, it := range s.items {
		if it.ID == id {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.items = next
	s.persist(KeyItems, s.items)
	return nil
}

// MoveCategory swaps a folder with its neighbor among siblings of the same
// parent (direction -1 up, +1 down) and renumbers the siblings 1..n.
func (s *Store) MoveCategory(id string, direction int) {
	var parentID string
	for _, c := range s.categories {
		if c.ID == id {
			parentID = c.ParentID
		}
	}
	siblings := make([]domain.Category, 0)
	for _, c := range s.categories {
		if c.ParentID == parentID && c.IsActive {
			siblings = append(siblings, c)
		}
	}
	order := swapOrder(len(siblings), func(i int) (string, int, string) {
		return siblings[i].ID, siblings[i].SortOrder, siblings[i].Label
	}, id, direction)
	if order == nil {
		return
	}
	next := make([]domain.Category, len(s.categories))
	for i, c := range s.categories {
		if n, ok := order[c.ID]; ok {
			c.SortOrder = n
		}
		next[i] = c
	}
	s.categories = next
	s.persist(KeyCategories, s.categories)
}

// MoveItem reorders an item within its folder the same way.
func (s *Store) MoveItem(id string, direction int) {
	var categoryID string
	for _, it := range s.items {
		if it.ID == id {
			categoryID = it.CategoryID
		}
	}
	siblings := make([]domain.Item, 0)
	for _, it := range s.items {
		if it.CategoryID == categoryID {
			siblings = append(siblings, it)
		}
	}
	order := swapOrder(len(siblings), func(i int) (string, int, string) {
		return siblings[i].ID, siblings[i].SortOrder, siblings[i].Label
	}, id, direction)
	if order == nil {
		return
	}
	next := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		if n, ok := order[it.ID]; ok {
			it.SortOrder = n
		}
		next[i] = it
	}
	s.items = next
	s.persist(KeyItems, s.items)
}

// swapOrder sorts ids by (sort_order, label), swaps the target with its
// neighbor, and returns the renumbered 1..n order map. Nil when the move
// falls off either end.
func swapOrder(n int, at func(int) (id string, order int, label string), id string, direction int) map[string]int {
	type row struct {
		id    string
		order int
		label string
	}
	rows := make([]row, n)
	for i := 0; i < n; i++ {
		rid, ro, rl := at(i)
		rows[i] = row{rid, ro, rl}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		return rows[i].label < rows[j].label
	})
	idx := -1
	for i, r := range rows {
		if r.id == id {
			idx = i
			break
		}
	}
	j := idx + direction
	if idx < 0 || j < 0 || j >= len(rows) {
		return nil
	}
	rows[idx], rows[j] = rows[j], rows[idx]
	out := make(map[string]int, len(rows))
	for i, r := range rows {
		out[r.id] = i + 1
	}
	return out
}
