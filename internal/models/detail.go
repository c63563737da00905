package models

import (
	"dropship-catalog-service/internal/catalog"
	"dropship-catalog-service/internal/pricing"
)

// ProductDetail is the product page payload: raw variant records in their
// source shape, the shipping cost for the calculator, the source
// discriminator, and the precomputed grouping classification so the
// client does not re-derive it.
type ProductDetail struct {
	Product      *SupplierProduct           `json:"product"`
	Type         ProductSource              `json:"type"` // "notmy" vs "my"
	ShippingCost float64                    `json:"shippingCost"`
	Variants     []catalog.RawVariantRecord `json:"variants"`
	Grouping     *GroupingView              `json:"grouping"`
}

// GroupingView is the serialized grouping result: the classification,
// model order, price-sorted variants per model, and the default
// selection.
type GroupingView struct {
	CaseKind        catalog.CaseKind                       `json:"caseKind"`
	Models          []string                               `json:"models"`
	Variants        map[string][]catalog.NormalizedVariant `json:"variants"`
	SelectedModel   string                                 `json:"selectedModel"`
	SelectedVariant string                                 `json:"selectedVariant"`
}

// NewGroupingView classifies a normalized variant list and captures the
// default selection. Built fresh per request; grouping is never cached
// across products.
func NewGroupingView(variants []catalog.NormalizedVariant) *GroupingView {
	g := catalog.GroupByModel(variants)
	view := &GroupingView{
		CaseKind: catalog.Classify(g),
		Models:   g.Order,
		Variants: make(map[string][]catalog.NormalizedVariant, g.ModelCount()),
	}
	for _, m := range g.Order {
		view.Variants[m] = g.SortedByPrice(m)
	}
	if model, v, ok := catalog.DefaultSelection(g); ok {
		view.SelectedModel = model
		view.SelectedVariant = v.ID
	}
	return view
}

type ProductDetailResponse struct {
	Success bool           `json:"success"`
	Data    *ProductDetail `json:"data"`
}

// EstimateRequest runs the profit calculator for one variant of a
// product. The variant supplies the product price and the fulfillment
// mode (model "selfship" selects self-ship); the form fields are the
// user-entered scenario.
type EstimateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId" binding:"required"`

	OrdersGiven    *int     `json:"ordersGiven"`
	SellingPrice   *float64 `json:"sellingPrice"`
	SuccessRatio   *float64 `json:"successRatio"`
	ConfirmedRatio *float64 `json:"confirmedRatio"`
	AdSpend        *float64 `json:"adSpend"`
	MiscCharges    *float64 `json:"miscCharges"`
}

type EstimateResponse struct {
	Success bool               `json:"success"`
	Data    pricing.Evaluation `json:"data"`
}
