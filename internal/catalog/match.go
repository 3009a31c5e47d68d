package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match resolves an item identity for sale entry, in order:
// exact id match, then case-insensitive trimmed match against the bare
// label, then against the fully-qualified path label. Returns nil when
// nothing matches; the caller decides whether to treat the typed text as a
// manual item.
func Match(active []ItemWithPath, itemID, typedLabel string) *ItemWithPath {
	for i := range active {
		if itemID != "" && active[i].ID == itemID {
			return &active[i]
		}
	}
	typed := norm(typedLabel)
	if typed == "" {
		return nil
	}
	for i := range active {
		if norm(active[i].Label) == typed || norm(active[i].FullLabel) == typed {
			return &active[i]
		}
	}
	return nil
}

// suggestMaxDistance caps how far a fuzzy suggestion may drift from the
// typed text before it stops being useful.
const suggestMaxDistance = 3

// Suggest returns the nearest active item to the typed label by edit
// distance, for the picker's "did you mean" hint. Purely advisory: it
// never influences how a sale is finalized.
func Suggest(active []ItemWithPath, typedLabel string) (ItemWithPath, bool) {
	typed := norm(typedLabel)
	if typed == "" || len(active) == 0 {
		return ItemWithPath{}, false
	}
	best := -1
	bestDist := suggestMaxDistance + 1
	for i := range active {
		d := levenshtein.ComputeDistance(typed, norm(active[i].Label))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return ItemWithPath{}, false
	}
	return active[best], true
}
