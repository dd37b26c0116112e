package catalog

import (
	"testing"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/shopspring/decimal"
)

func mustDefault(t *testing.T) *Store {
	t.Helper()
	store, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	return store
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func validProduct(id string) Product {
	original := decimal.NewFromInt(150)
	return Product{
		ID:            id,
		Name:          "Test " + id,
		Category:      enums.ProductCategoryWigs,
		Brand:         "luxe",
		Price:         decimal.NewFromInt(100),
		OriginalPrice: &original,
		Currency:      enums.CurrencyUSD,
		Rating:        4,
		InStock:       true,
		Inventory:     3,
	}
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	store := mustDefault(t)

	assertIDs(t, store.ListAll(), "wig-001", "wig-002", "bundle-001", "bundle-002", "frontal-001", "closure-001", "care-001")
	if len(store.Categories()) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(store.Categories()))
	}
	if len(store.Deals()) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(store.Deals()))
	}

	wig, err := store.FindByID("wig-001")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if !wig.Price.Equal(decimal.NewFromInt(299)) || wig.OriginalPrice == nil || !wig.OriginalPrice.Equal(decimal.NewFromInt(399)) {
		t.Fatalf("unexpected prices %s / %v", wig.Price, wig.OriginalPrice)
	}
	if wig.Texture() != "Straight" || wig.HairType() != "Brazilian Human Hair" {
		t.Fatalf("unexpected specifications %+v", wig.Specifications)
	}
	care, _ := store.FindByID("care-001")
	if care.Texture() != "" {
		t.Fatalf("non-text specification should read as empty, got %q", care.Texture())
	}
}

func TestFindByIDNotFound(t *testing.T) {
	store := mustDefault(t)
	if _, err := store.FindByID("nope"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListAllReturnsCopy(t *testing.T) {
	store := mustDefault(t)
	first := store.ListAll()
	first[0] = Product{ID: "mutated"}
	if store.ListAll()[0].ID != "wig-001" {
		t.Fatal("ListAll must not expose internal slice")
	}
}

func TestCategoryLookup(t *testing.T) {
	store := mustDefault(t)
	cat, err := store.Category(enums.ProductCategoryBundles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Name != "Hair Bundles" || !cat.HasSubcategory("Deep-Wave") {
		t.Fatalf("unexpected category %+v", cat)
	}
	if _, err := store.Category("shoes"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeals(t *testing.T) {
	store := mustDefault(t)
	products, err := store.DealProducts("deal-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, products, "bundle-001", "frontal-001", "care-001")
	if _, err := store.DealProducts("deal-999"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestStock(t *testing.T) {
	store := mustDefault(t)
	if !store.IsInStock("wig-002") {
		t.Fatal("wig-002 should be in stock")
	}
	if store.StockLevel("wig-002") != 8 {
		t.Fatalf("expected stock 8, got %d", store.StockLevel("wig-002"))
	}
	if store.IsInStock("nope") || store.StockLevel("nope") != 0 {
		t.Fatal("unknown products are out of stock")
	}

	empty := validProduct("p-1")
	empty.Inventory = 0
	flagged := validProduct("p-2")
	flagged.InStock = false
	s, err := NewStore(Data{Products: []Product{empty, flagged}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsInStock("p-1") || s.IsInStock("p-2") {
		t.Fatal("zero inventory or inStock=false must be out of stock")
	}
}

func TestNewStoreReportsEveryViolation(t *testing.T) {
	negative := validProduct("neg")
	negative.Price = decimal.NewFromInt(-1)

	inverted := validProduct("inv")
	low := decimal.NewFromInt(50)
	inverted.OriginalPrice = &low

	unknownCategory := validProduct("cat")
	unknownCategory.Category = "shoes"

	duplicate := validProduct("neg")

	data := Data{
		Products: []Product{negative, inverted, unknownCategory, duplicate},
		Deals: []Deal{{
			ID:            "deal-x",
			Name:          "Broken",
			OriginalPrice: decimal.NewFromInt(100),
			BundlePrice:   decimal.NewFromInt(80),
			Savings:       decimal.NewFromInt(30),
			Products:      []string{"missing"},
		}},
	}

	_, err := NewStore(data)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDataError {
		t.Fatalf("expected DATA_ERROR, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	violations, ok := details["violations"].([]string)
	if !ok {
		t.Fatalf("expected violations list, got %T", details["violations"])
	}
	// one entry per bad record: three products, the duplicate, the deal
	if len(violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(violations), violations)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode([]byte(`{"products":[],"bogus":1}`)); !pkgerrors.IsCode(err, pkgerrors.CodeDataError) {
		t.Fatalf("expected DATA_ERROR, got %v", err)
	}
}
