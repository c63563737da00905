package catalog

import "strings"

// Fallback values used when a source record is missing a field.
const (
	FallbackName  = "NIL"
	FallbackModel = "Unknown"
	FallbackColor = "NIL"
)

// SourceKind identifies which API shape a raw variant record came from.
// Catalog records nest variant fields under "variant"; owned-inventory
// records nest them one level deeper under "supplierProductVariant.variant".
type SourceKind string

const (
	SourceCatalog        SourceKind = "catalog"
	SourceOwnedInventory SourceKind = "ownedInventory"
)

// VariantFields is the common set of variant attributes regardless of
// where the source record nests them.
type VariantFields struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Model          string   `json:"model,omitempty"`
	Color          string   `json:"color,omitempty"`
	Image          string   `json:"image,omitempty"` // comma-joined URL list
	SuggestedPrice *float64 `json:"suggested_price,omitempty"`
}

// SupplierProductVariantRef wraps the deeper nesting used by
// owned-inventory records.
type SupplierProductVariantRef struct {
	Variant *VariantFields `json:"variant,omitempty"`
}

// RawVariantRecord is one sellable variant as returned by the catalog or
// owned-inventory endpoints. Only one of the nested shapes is populated
// for a given record; top-level fields are present in both shapes.
type RawVariantRecord struct {
	ID                     string                     `json:"id,omitempty"`
	Price                  *float64                   `json:"price,omitempty"`
	SuggestedPrice         *float64                   `json:"suggested_price,omitempty"`
	Selected               bool                       `json:"selected,omitempty"`
	Variant                *VariantFields             `json:"variant,omitempty"`
	SupplierProductVariant *SupplierProductVariantRef `json:"supplierProductVariant,omitempty"`
}

// NormalizedVariant is the uniform variant record the grouping and pricing
// logic operates on. Every field has a defined fallback, so normalization
// is total over the input shape.
type NormalizedVariant struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Model          string            `json:"model"`
	Color          string            `json:"color"`
	Image          string            `json:"image"`
	SuggestedPrice float64           `json:"suggestedPrice"`
	PriceMissing   bool              `json:"priceMissing,omitempty"`
	Source         *RawVariantRecord `json:"-"`
}

// nested returns the variant fields from whichever nesting is present.
func (r *RawVariantRecord) nested() *VariantFields {
	if r.Variant != nil {
		return r.Variant
	}
	if r.SupplierProductVariant != nil {
		return r.SupplierProductVariant.Variant
	}
	return nil
}

// Kind reports which API shape the record uses.
func (r *RawVariantRecord) Kind() SourceKind {
	if r.SupplierProductVariant != nil {
		return SourceOwnedInventory
	}
	return SourceCatalog
}

// Normalize converts a raw variant record into a NormalizedVariant,
// applying the documented fallback chains. It never fails; missing fields
// resolve to FallbackName/FallbackModel/FallbackColor, a missing image to
// "", and a missing price to 0 with PriceMissing set so callers can render
// a placeholder instead of a zero amount.
func Normalize(rec RawVariantRecord) NormalizedVariant {
	nv := NormalizedVariant{
		ID:     rec.ID,
		Name:   FallbackName,
		Model:  FallbackModel,
		Color:  FallbackColor,
		Source: &rec,
	}

	if v := rec.nested(); v != nil {
		if nv.ID == "" {
			nv.ID = v.ID
		}
		if v.Name != "" {
			nv.Name = v.Name
		}
		if v.Model != "" {
			nv.Model = v.Model
		}
		if v.Color != "" {
			nv.Color = v.Color
		}
		nv.Image = firstImage(v.Image)
	}

	switch {
	case rec.Price != nil:
		nv.SuggestedPrice = *rec.Price
	case rec.SuggestedPrice != nil:
		nv.SuggestedPrice = *rec.SuggestedPrice
	case rec.nested() != nil && rec.nested().SuggestedPrice != nil:
		nv.SuggestedPrice = *rec.nested().SuggestedPrice
	default:
		nv.PriceMissing = true
	}
	if nv.SuggestedPrice < 0 {
		nv.SuggestedPrice = 0
	}

	return nv
}

// NormalizeAll normalizes a slice of raw records preserving input order.
func NormalizeAll(recs []RawVariantRecord) []NormalizedVariant {
	out := make([]NormalizedVariant, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Normalize(rec))
	}
	return out
}

// firstImage extracts the first URL from a comma-joined image list.
func firstImage(joined string) string {
	if joined == "" {
		return ""
	}
	first, _, _ := strings.Cut(joined, ",")
	return strings.TrimSpace(first)
}
