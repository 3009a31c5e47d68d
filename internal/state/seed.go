package state

import (
	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/domain"
)

// SeedCategories is the first-run catalog tree: a two-branch menu.
func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: "K", Label: "K", SortOrder: 1, IsActive: true},
		{ID: "K_Kava", Label: "Kava", ParentID: "K", SortOrder: 1, IsActive: true},
		{ID: "C", Label: "C", SortOrder: 2, IsActive: true},
	}
}

// SeedItems is the first-run menu.
func SeedItems() []domain.Item {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []domain.Item{
		{ID: "kava_strong", Label: "Kava Strong", CategoryID: "K_Kava", UnitPrice: price(25), SortOrder: 1, IsActive: true},
		{ID: "kava_light", Label: "Kava Light", CategoryID: "K_Kava", UnitPrice: price(20), SortOrder: 2, IsActive: true},
		{ID: "coffee", Label: "Coffee", CategoryID: "C", UnitPrice: price(15), SortOrder: 1, IsActive: true},
		{ID: "tea", Label: "Tea", CategoryID: "C", UnitPrice: price(10), SortOrder: 2, IsActive: true},
	}
}
