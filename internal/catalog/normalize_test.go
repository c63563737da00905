package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeCatalogShape(t *testing.T) {
	rec := RawVariantRecord{
		ID:    "rec-1",
		Price: f64(249.5),
		Variant: &VariantFields{
			ID:    "var-1",
			Name:  "Pack of 2",
			Model: "AirMax",
			Color: "Black",
			Image: " https://cdn.example.com/a.jpg ,https://cdn.example.com/b.jpg",
		},
	}

	nv := Normalize(rec)

	assert.Equal(t, "rec-1", nv.ID)
	assert.Equal(t, "Pack of 2", nv.Name)
	assert.Equal(t, "AirMax", nv.Model)
	assert.Equal(t, "Black", nv.Color)
	assert.Equal(t, "https://cdn.example.com/a.jpg", nv.Image)
	assert.Equal(t, 249.5, nv.SuggestedPrice)
	assert.False(t, nv.PriceMissing)
	assert.Equal(t, SourceCatalog, rec.Kind())
}

func TestNormalizeOwnedInventoryShape(t *testing.T) {
	rec := RawVariantRecord{
		SuggestedPrice: f64(120),
		SupplierProductVariant: &SupplierProductVariantRef{
			Variant: &VariantFields{
				ID:    "var-9",
				Name:  "Single",
				Model: "selfship",
				Color: "Red",
				Image: "https://cdn.example.com/c.jpg",
			},
		},
	}

	nv := Normalize(rec)

	assert.Equal(t, "var-9", nv.ID, "record id should fall back to nested variant id")
	assert.Equal(t, "Single", nv.Name)
	assert.Equal(t, "selfship", nv.Model)
	assert.Equal(t, "Red", nv.Color)
	assert.Equal(t, "https://cdn.example.com/c.jpg", nv.Image)
	assert.Equal(t, 120.0, nv.SuggestedPrice)
	assert.Equal(t, SourceOwnedInventory, rec.Kind())
}

func TestNormalizeAppliesFallbacks(t *testing.T) {
	// Entirely empty record: every field must have a defined fallback and
	// normalization must not panic.
	nv := Normalize(RawVariantRecord{})

	assert.Equal(t, "", nv.ID)
	assert.Equal(t, FallbackName, nv.Name)
	assert.Equal(t, FallbackModel, nv.Model)
	assert.Equal(t, FallbackColor, nv.Color)
	assert.Equal(t, "", nv.Image)
	assert.Equal(t, 0.0, nv.SuggestedPrice)
	assert.True(t, nv.PriceMissing)
}

func TestNormalizePartialNestedFields(t *testing.T) {
	nv := Normalize(RawVariantRecord{
		ID:      "rec-2",
		Variant: &VariantFields{Name: "Only name"},
	})

	assert.Equal(t, "Only name", nv.Name)
	assert.Equal(t, FallbackModel, nv.Model)
	assert.Equal(t, FallbackColor, nv.Color)
	assert.True(t, nv.PriceMissing)
}

func TestNormalizePriceFallbackChain(t *testing.T) {
	// price wins over suggested_price when both are present.
	nv := Normalize(RawVariantRecord{Price: f64(80), SuggestedPrice: f64(99)})
	assert.Equal(t, 80.0, nv.SuggestedPrice)

	// suggested_price alias used when price is absent.
	nv = Normalize(RawVariantRecord{SuggestedPrice: f64(99)})
	assert.Equal(t, 99.0, nv.SuggestedPrice)
	assert.False(t, nv.PriceMissing)

	// nested suggested_price is the last resort.
	nv = Normalize(RawVariantRecord{
		Variant: &VariantFields{SuggestedPrice: f64(55)},
	})
	assert.Equal(t, 55.0, nv.SuggestedPrice)
	assert.False(t, nv.PriceMissing)
}

func TestNormalizeNegativePriceClampedToZero(t *testing.T) {
	nv := Normalize(RawVariantRecord{Price: f64(-10)})
	assert.Equal(t, 0.0, nv.SuggestedPrice)
	assert.False(t, nv.PriceMissing)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	recs := []RawVariantRecord{
		{ID: "a", Price: f64(3)},
		{ID: "b", Price: f64(1)},
		{ID: "c", Price: f64(2)},
	}

	out := NormalizeAll(recs)

	assert.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
}

func TestFirstImage(t *testing.T) {
	assert.Equal(t, "", firstImage(""))
	assert.Equal(t, "x.jpg", firstImage("x.jpg"))
	assert.Equal(t, "x.jpg", firstImage("x.jpg,y.jpg,z.jpg"))
	assert.Equal(t, "x.jpg", firstImage("  x.jpg , y.jpg"))
}
