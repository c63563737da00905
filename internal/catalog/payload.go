package catalog

// Selection captures the user's current choice inside the variant picker:
// the active model (radio choice or tab) and, where individual cards are
// selectable, the chosen variant. Zero values fall back to the default
// selection for the product's case.
type Selection struct {
	Model     string
	VariantID string
}

// PushVariant is the simple payload element sent when pushing a product
// to a connected store.
type PushVariant struct {
	VariantID string  `json:"variantId"`
	Price     float64 `json:"price"`
}

// PushVariantDetailed is the extended payload element used by the
// inventory-backed push flow, which also carries stock and status.
type PushVariantDetailed struct {
	VariantID string  `json:"variantId"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
}

// VariantsForPush resolves which variants a push submission must include
// for the given case and selection:
//
//	case 1: the sole variant
//	case 2: every variant of the single model
//	case 3: the selected model's one variant
//	case 4: every variant under the active tab's model
//
// An unknown selection falls back to the default (cheapest) model. The
// returned slice is price-sorted for the multi-variant cases, matching
// the order the picker displays.
func VariantsForPush(g ModelGroups, kind CaseKind, sel Selection) []NormalizedVariant {
	if g.ModelCount() == 0 {
		return nil
	}

	switch kind {
	case CaseSingleModelSingleVariant:
		return g.Groups[g.Order[0]]
	case CaseSingleModelMultiVariant:
		return g.SortedByPrice(g.Order[0])
	case CaseTwoModelsSingleVariantEach:
		model := sel.Model
		if _, exists := g.Groups[model]; !exists {
			model, _, _ = g.Cheapest()
		}
		return g.Groups[model]
	default:
		model := sel.Model
		if _, exists := g.Groups[model]; !exists {
			model, _, _ = g.Cheapest()
		}
		return g.SortedByPrice(model)
	}
}

// BuildPushPayload maps the push selection onto the simple payload shape.
// priceFor overrides the per-variant price (the dropshipper's selling
// price); a nil priceFor falls back to each variant's suggested price.
func BuildPushPayload(g ModelGroups, kind CaseKind, sel Selection, priceFor func(NormalizedVariant) float64) []PushVariant {
	variants := VariantsForPush(g, kind, sel)
	payload := make([]PushVariant, 0, len(variants))
	for _, v := range variants {
		price := v.SuggestedPrice
		if priceFor != nil {
			price = priceFor(v)
		}
		payload = append(payload, PushVariant{VariantID: v.ID, Price: price})
	}
	return payload
}

// BuildDetailedPushPayload maps the push selection onto the extended
// payload shape used when stock and status travel with each variant.
func BuildDetailedPushPayload(g ModelGroups, kind CaseKind, sel Selection, detailFor func(NormalizedVariant) (stock int, price float64, status string)) []PushVariantDetailed {
	variants := VariantsForPush(g, kind, sel)
	payload := make([]PushVariantDetailed, 0, len(variants))
	for _, v := range variants {
		stock, price, status := 0, v.SuggestedPrice, ""
		if detailFor != nil {
			stock, price, status = detailFor(v)
		}
		payload = append(payload, PushVariantDetailed{
			VariantID: v.ID,
			Stock:     stock,
			Price:     price,
			Status:    status,
		})
	}
	return payload
}
