package catalog

import "github.com/kavaroom/tillbook/internal/domain"

// IsDescendant reports whether candidateID sits below ancestorID in the
// tree. The walk is guarded against cycles in already-corrupted data.
func IsDescendant(candidateID, ancestorID string, categories []domain.Category) bool {
	if candidateID == "" || ancestorID == "" {
		return false
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	seen := make(map[string]bool)
	cur, ok := byID[candidateID]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		if cur.ParentID == ancestorID {
			return true
		}
		cur, ok = byID[cur.ParentID]
	}
	return false
}

// ValidateParent rejects a re-parenting that would form a cycle: the new
// parent may not be the folder itself or any of its descendants.
func ValidateParent(folderID, newParentID string, categories []domain.Category) error {
	if newParentID == "" {
		return nil
	}
	if newParentID == folderID {
		return domain.ErrOwnParent
	}
	if IsDescendant(newParentID, folderID, categories) {
		return domain.ErrCycle
	}
	return nil
}

// ValidateDelete enforces the empty-folder precondition: a category may
// only be deleted when it has no child categories and no items.
func ValidateDelete(folderID string, categories []domain.Category, items []domain.Item) error {
	for _, c := range categories {
		if c.ParentID == folderID {
			return domain.ErrFolderNotEmpty
		}
	}
	for _, it := range items {
		if it.CategoryID == folderID {
			return domain.ErrFolderNotEmpty
		}
	}
	return nil
}
