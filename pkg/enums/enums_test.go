package enums

import "testing"

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency("ZWL")
	if err != nil || got != CurrencyZWL {
		t.Fatalf("expected ZWL, got %q err=%v", got, err)
	}
	if _, err := ParseCurrency("usd"); err == nil {
		t.Fatal("currency codes are case sensitive")
	}
	if !CurrencyUSD.IsBase() || CurrencyZWL.IsBase() {
		t.Fatal("USD must be the only base currency")
	}
}

func TestParseProductCategory(t *testing.T) {
	for _, category := range ProductCategories() {
		parsed, err := ParseProductCategory(category.String())
		if err != nil || parsed != category {
			t.Fatalf("round trip failed for %q", category)
		}
	}
	if _, err := ParseProductCategory("hats"); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("price-high")
	if err != nil || key != SortPriceHigh {
		t.Fatalf("expected price-high, got %q err=%v", key, err)
	}
	if SortKey("newest").IsValid() {
		t.Fatal("newest is not a supported sort key")
	}
}

func TestInteractionIsValid(t *testing.T) {
	if !InteractionQuickView.IsValid() {
		t.Fatal("quick view should be valid")
	}
	if Interaction("share").IsValid() {
		t.Fatal("share is not tracked")
	}
}

func TestParseAnalyticsEventType(t *testing.T) {
	got, err := ParseAnalyticsEventType("product_view")
	if err != nil || got != AnalyticsEventProductView {
		t.Fatalf("expected product_view, got %q err=%v", got, err)
	}
	if AnalyticsEventType("order_paid").IsValid() {
		t.Fatal("order_paid is not a storefront event")
	}
}

func TestParseSubmissionKind(t *testing.T) {
	got, err := ParseSubmissionKind("contact")
	if err != nil || got != SubmissionContact {
		t.Fatalf("expected contact, got %q err=%v", got, err)
	}
	if _, err := ParseSubmissionKind("survey"); err == nil {
		t.Fatal("expected unknown kind to fail")
	}
}
