package catalog

import (
	"testing"

	"storefront/internal/types"
)

func TestCurrentPrice(t *testing.T) {
	base := int64(1999)

	if got := CurrentPrice(base, nil); got != 1999 {
		t.Errorf("no selection: got %d, want 1999", got)
	}

	v := &types.ProductVariant{PriceModifier: 300}
	if got := CurrentPrice(base, v); got != 2299 {
		t.Errorf("with +300 modifier: got %d, want 2299", got)
	}

	neg := &types.ProductVariant{PriceModifier: -500}
	if got := CurrentPrice(base, neg); got != 1499 {
		t.Errorf("with -500 modifier: got %d, want 1499", got)
	}
}

func TestAvailableStock(t *testing.T) {
	p := types.Product{StockQuantity: 12}

	if got := AvailableStock(p, nil); got != 12 {
		t.Errorf("no selection: got %d, want 12", got)
	}

	v := &types.ProductVariant{StockQuantity: 3}
	if got := AvailableStock(p, v); got != 3 {
		t.Errorf("with variant: got %d, want 3", got)
	}
}

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		quantity, available, want int
	}{
		{0, 10, 1},
		{-5, 10, 1},
		{1, 10, 1},
		{10, 10, 10},
		{11, 10, 10},
		{3, 0, 0},
		{1, -1, 0},
	}
	for _, c := range cases {
		if got := ClampQuantity(c.quantity, c.available); got != c.want {
			t.Errorf("ClampQuantity(%d, %d) = %d, want %d", c.quantity, c.available, got, c.want)
		}
	}
}

func TestGroupVariants(t *testing.T) {
	variants := []types.ProductVariant{
		{ID: 1, Name: "Storage", Value: "128GB"},
		{ID: 2, Name: "Color", Value: "Black"},
		{ID: 3, Name: "Storage", Value: "256GB", PriceModifier: 300},
		{ID: 4, Name: "Color", Value: "Silver"},
	}

	groups := GroupVariants(variants)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Storage" || groups[1].Name != "Color" {
		t.Errorf("groups out of first-seen order: %v, %v", groups[0].Name, groups[1].Name)
	}
	if len(groups[0].Variants) != 2 || groups[0].Variants[1].Value != "256GB" {
		t.Errorf("Storage group malformed: %+v", groups[0].Variants)
	}
}

func TestGroupVariants_Empty(t *testing.T) {
	if groups := GroupVariants(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
