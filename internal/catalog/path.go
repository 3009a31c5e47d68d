// Package catalog provides read-side views over the category tree and item
// list: materialized label paths, the active item set with full labels,
// item matching for sale entry, and the write-time tree validations.
package catalog

import (
	"sort"
	"strings"

	"github.com/kavaroom/tillbook/internal/domain"
)

// RootLabel is the path shown for root-level (uncategorized) entries.
const RootLabel = "Root"

// ManualLabel is the path recorded for free-typed items with no catalog match.
const ManualLabel = "Manual"

// PathSeparator joins category labels in a materialized path.
const PathSeparator = " > "

// Path walks parent links upward from categoryID and returns the
// materialized label path. An empty or unknown id resolves to "Root".
//
// A visited set guards against a corrupted tree: on a cycle the walk stops
// and whatever partial path was built is returned. Cycle prevention proper
// happens at mutation time (ValidateParent); this is the read-side backstop
// and is never an error.
func Path(categoryID string, categories []domain.Category) string {
	if categoryID == "" {
		return RootLabel
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var parts []string
	seen := make(map[string]bool)
	cur, ok := byID[categoryID]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		parts = append([]string{cur.Label}, parts...)
		if cur.ParentID == "" {
			break
		}
		cur, ok = byID[cur.ParentID]
	}
	if len(parts) == 0 {
		return RootLabel
	}
	return strings.Join(parts, PathSeparator)
}

// ItemWithPath is an active item annotated with its materialized category
// path and fully-qualified label, as shown in pickers and used for matching.
type ItemWithPath struct {
	domain.Item
	CategoryPath string
	FullLabel    string
}

// ActiveItems returns the active items with resolved paths, sorted by
// (category path, sort order, label), the order pickers and the matcher see.
func ActiveItems(items []domain.Item, categories []domain.Category) []ItemWithPath {
	var out []ItemWithPath
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		p := Path(it.CategoryID, categories)
		out = append(out, ItemWithPath{
			Item:         it,
			CategoryPath: p,
			FullLabel:    p + PathSeparator + it.Label,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CategoryPath != out[j].CategoryPath {
			return out[i].CategoryPath < out[j].CategoryPath
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Label < out[j].Label
	})
	return out
}
