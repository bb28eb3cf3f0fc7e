// Package catalog holds the pure, stateless derivations the product screens
// recompute on every render: variant grouping, price and stock derivation,
// quantity clamping, and the per-screen filter helpers for categories and
// wishlist membership, plus the wishlist snapshot loader. Nothing caches.
package catalog

import "storefront/internal/types"

// VariantGroup collects a product's variants sharing a name ("Storage",
// "Color"), preserving first-seen order.
type VariantGroup struct {
	Name     string
	Variants []types.ProductVariant
}

// GroupVariants groups variants by name in the order the names first appear.
func GroupVariants(variants []types.ProductVariant) []VariantGroup {
	var groups []VariantGroup
	index := make(map[string]int)

	for _, v := range variants {
		i, ok := index[v.Name]
		if !ok {
			index[v.Name] = len(groups)
			groups = append(groups, VariantGroup{Name: v.Name})
			i = len(groups) - 1
		}
		groups[i].Variants = append(groups[i].Variants, v)
	}
	return groups
}

// CurrentPrice derives the displayed price: base plus the selected variant's
// modifier, or the base alone when nothing is selected.
func CurrentPrice(basePrice int64, selected *types.ProductVariant) int64 {
	if selected == nil {
		return basePrice
	}
	return basePrice + selected.PriceModifier
}

// AvailableStock is the selected variant's stock when a variant is selected,
// else the product's own stock.
func AvailableStock(p types.Product, selected *types.ProductVariant) int {
	if selected != nil {
		return selected.StockQuantity
	}
	return p.StockQuantity
}

// ClampQuantity clamps a requested quantity to [1, available]. With nothing
// in stock it returns 0, which callers treat as "cannot add".
func ClampQuantity(quantity, available int) int {
	if available < 1 {
		return 0
	}
	if quantity < 1 {
		return 1
	}
	if quantity > available {
		return available
	}
	return quantity
}
