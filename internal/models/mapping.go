package models

import (
	"dropship-catalog-service/internal/catalog"
)

// variantFields maps a stored variant onto the shared nested shape.
func variantFields(v *ProductVariant) *catalog.VariantFields {
	fields := &catalog.VariantFields{
		ID:    v.ID.String(),
		Name:  v.Name,
		Model: v.Model,
	}
	if v.Color != nil {
		fields.Color = *v.Color
	}
	if v.Images != nil {
		fields.Image = *v.Images
	}
	price := v.SuggestedPrice
	fields.SuggestedPrice = &price
	return fields
}

// CatalogRawRecords renders a supplier product's variants in the catalog
// API shape: variant fields nested under "variant", cost price at the top
// level.
func CatalogRawRecords(product *SupplierProduct) []catalog.RawVariantRecord {
	records := make([]catalog.RawVariantRecord, 0, len(product.Variants))
	for _, v := range product.Variants {
		price := v.SuggestedPrice
		records = append(records, catalog.RawVariantRecord{
			ID:      v.ID.String(),
			Price:   &price,
			Variant: variantFields(v),
		})
	}
	return records
}

// OwnedRawRecords renders an imported product's variants in the
// owned-inventory API shape: variant fields nested one level deeper under
// "supplierProductVariant.variant". The cost price still travels in the
// top-level price field; the dropshipper's own selling price lives on the
// inventory variant and is applied when building push payloads.
func OwnedRawRecords(item *InventoryItem) []catalog.RawVariantRecord {
	records := make([]catalog.RawVariantRecord, 0, len(item.Variants))
	for _, iv := range item.Variants {
		if iv.Variant == nil {
			continue
		}
		price := iv.Variant.SuggestedPrice
		records = append(records, catalog.RawVariantRecord{
			ID:    iv.Variant.ID.String(),
			Price: &price,
			SupplierProductVariant: &catalog.SupplierProductVariantRef{
				Variant: variantFields(iv.Variant),
			},
		})
	}
	return records
}

// SellingPrices maps variant IDs to the dropshipper's chosen prices for
// an imported product.
func SellingPrices(item *InventoryItem) map[string]float64 {
	prices := make(map[string]float64, len(item.Variants))
	for _, iv := range item.Variants {
		prices[iv.VariantID.String()] = iv.Price
	}
	return prices
}

// StockLevels maps variant IDs to stock for an imported product.
func StockLevels(item *InventoryItem) map[string]int {
	stock := make(map[string]int, len(item.Variants))
	for _, iv := range item.Variants {
		stock[iv.VariantID.String()] = iv.Stock
	}
	return stock
}
