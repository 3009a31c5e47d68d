package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kavaroom/tillbook/internal/domain"
)

func cat(id, label, parent string, order int) domain.Category {
	return domain.Category{ID: id, Label: label, ParentID: parent, SortOrder: order, IsActive: true}
}

func item(id, label, catID string, price float64, order int) domain.Item {
	return domain.Item{ID: id, Label: label, CategoryID: catID,
		UnitPrice: decimal.NewFromFloat(price), SortOrder: order, IsActive: true}
}

func testTree() []domain.Category {
	return []domain.Category{
		cat("K", "K", "", 1),
		cat("K_Kava", "Kava", "K", 1),
		cat("C", "C", "", 2),
	}
}

func TestPathJoinsLabelsRootFirst(t *testing.T) {
	if got := Path("K_Kava", testTree()); got != "K > Kava" {
		t.Errorf("Path = %q, want %q", got, "K > Kava")
	}
}

func TestPathEmptyAndUnknownResolveToRoot(t *testing.T) {
	if got := Path("", testTree()); got != "Root" {
		t.Errorf("empty id = %q, want Root", got)
	}
	if got := Path("nope", testTree()); got != "Root" {
		t.Errorf("unknown id = %q, want Root", got)
	}
}

func TestPathTerminatesOnCycles(t *testing.T) {
	// Cycle lengths 1..3, deliberately corrupted trees.
	trees := [][]domain.Category{
		{cat("a", "A", "a", 1)},
		{cat("a", "A", "b", 1), cat("b", "B", "a", 2)},
		{cat("a", "A", "b", 1), cat("b", "B", "c", 2), cat("c", "C", "a", 3)},
	}
	for n, tree := range trees {
		got := Path("a", tree)
		if got == "" {
			t.Errorf("cycle len %d: empty path", n+1)
		}
		if !strings.Contains(got, "A") {
			t.Errorf("cycle len %d: path %q missing start label", n+1, got)
		}
	}
}

func TestActiveItemsSortedByPathThenOrderThenLabel(t *testing.T) {
	cats := testTree()
	items := []domain.Item{
		item("tea", "Tea", "C", 10, 2),
		item("coffee", "Coffee", "C", 15, 1),
		item("kava_light", "Kava Light", "K_Kava", 20, 2),
		item("kava_strong", "Kava Strong", "K_Kava", 25, 1),
	}
	inactive := item("off", "Off Menu", "C", 1, 0)
	inactive.IsActive = false
	items = append(items, inactive)

	got := ActiveItems(items, cats)
	want := []string{"coffee", "tea", "kava_strong", "kava_light"} // "C" < "K > Kava"
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[2].FullLabel != "K > Kava > Kava Strong" {
		t.Errorf("FullLabel = %q", got[2].FullLabel)
	}
}

func TestMatchPrefersIDOverLabel(t *testing.T) {
	active := ActiveItems([]domain.Item{
		item("coffee", "Coffee", "C", 15, 1),
		item("tea", "Tea", "C", 10, 2),
	}, testTree())
	m := Match(active, "tea", "Coffee")
	if m == nil || m.ID != "tea" {
		t.Fatalf("id match ignored: %+v", m)
	}
}

func TestMatchLabelCaseInsensitiveTrimmed(t *testing.T) {
	active := ActiveItems([]domain.Item{item("coffee", "Coffee", "C", 15, 1)}, testTree())
	if m := Match(active, "", "  coffee  "); m == nil || m.ID != "coffee" {
		t.Fatalf("bare label match failed: %+v", m)
	}
	if m := Match(active, "", "c > coffee"); m == nil || m.ID != "coffee" {
		t.Fatalf("full-path label match failed: %+v", m)
	}
}

func TestMatchReturnsNilForUnknown(t *testing.T) {
	active := ActiveItems([]domain.Item{item("coffee", "Coffee", "C", 15, 1)}, testTree())
	if m := Match(active, "gone", ""); m != nil {
		t.Errorf("unknown id matched: %+v", m)
	}
	if m := Match(active, "", "Birthday Cake"); m != nil {
		t.Errorf("unknown label matched: %+v", m)
	}
}

func TestSuggestNearestLabel(t *testing.T) {
	active := ActiveItems([]domain.Item{
		item("coffee", "Coffee", "C", 15, 1),
		item("tea", "Tea", "C", 10, 2),
	}, testTree())
	s, ok := Suggest(active, "Coffe")
	if !ok || s.ID != "coffee" {
		t.Fatalf("Suggest = %+v ok=%v", s, ok)
	}
	if _, ok := Suggest(active, "Birthday Cake"); ok {
		t.Error("far-off label should not suggest")
	}
}

func TestValidateParentRejectsSelfAndDescendant(t *testing.T) {
	cats := testTree()
	if err := ValidateParent("K", "K", cats); err != domain.ErrOwnParent {
		t.Errorf("self parent err = %v", err)
	}
	if err := ValidateParent("K", "K_Kava", cats); err != domain.ErrCycle {
		t.Errorf("descendant parent err = %v", err)
	}
	if err := ValidateParent("K_Kava", "C", cats); err != nil {
		t.Errorf("legal move err = %v", err)
	}
	if err := ValidateParent("K_Kava", "", cats); err != nil {
		t.Errorf("move to root err = %v", err)
	}
}

func TestValidateDeleteRequiresEmptyFolder(t *testing.T) {
	cats := testTree()
	items := []domain.Item{item("coffee", "Coffee", "C", 15, 1)}
	if err := ValidateDelete("K", cats, items); err != domain.ErrFolderNotEmpty {
		t.Errorf("folder with subfolder: err = %v", err)
	}
	if err := ValidateDelete("C", cats, items); err != domain.ErrFolderNotEmpty {
		t.Errorf("folder with items: err = %v", err)
	}
	if err := ValidateDelete("K_Kava", cats, items); err != nil {
		t.Errorf("empty folder: err = %v", err)
	}
}
