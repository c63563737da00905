package catalog

import "sort"

// CaseKind classifies how a product's variants are grouped by model. The
// selection UI and the push payload shape both key off this value.
type CaseKind string

const (
	// CaseSingleModelSingleVariant - one model, one variant. No selection
	// UI; the sole variant is implicitly selected.
	CaseSingleModelSingleVariant CaseKind = "SINGLE_MODEL_SINGLE_VARIANT"
	// CaseSingleModelMultiVariant - one model, several variants shown as
	// price-sorted cards with the cheapest preselected.
	CaseSingleModelMultiVariant CaseKind = "SINGLE_MODEL_MULTI_VARIANT"
	// CaseTwoModelsSingleVariantEach - a radio choice between two models,
	// defaulting to the cheaper one.
	CaseTwoModelsSingleVariantEach CaseKind = "TWO_MODELS_SINGLE_VARIANT_EACH"
	// CaseMultiModelMultiVariant - tabs per model, each tab listing its
	// variants by price; the tab holding the global cheapest is active.
	CaseMultiModelMultiVariant CaseKind = "MULTI_MODEL_MULTI_VARIANT"
)

// ModelGroups is a partition of normalized variants by model name.
// Order preserves the first-seen order of models so grouping is stable
// with respect to the input list.
type ModelGroups struct {
	Order  []string
	Groups map[string][]NormalizedVariant
}

// GroupByModel partitions variants by their model label. Every variant
// lands in exactly one group and input order is preserved within each
// group. The grouping is recomputed from scratch on every call; nothing
// is cached across products.
func GroupByModel(variants []NormalizedVariant) ModelGroups {
	g := ModelGroups{Groups: make(map[string][]NormalizedVariant)}
	for _, v := range variants {
		model := v.Model
		if model == "" {
			model = FallbackModel
		}
		if _, seen := g.Groups[model]; !seen {
			g.Order = append(g.Order, model)
		}
		g.Groups[model] = append(g.Groups[model], v)
	}
	return g
}

// ModelCount returns the number of distinct models.
func (g ModelGroups) ModelCount() int {
	return len(g.Order)
}

// VariantCount returns the total number of variants across all models.
func (g ModelGroups) VariantCount() int {
	n := 0
	for _, vs := range g.Groups {
		n += len(vs)
	}
	return n
}

// SortedByPrice returns a model's variants sorted ascending by suggested
// price. The sort is stable so equal-priced variants keep input order.
func (g ModelGroups) SortedByPrice(model string) []NormalizedVariant {
	src := g.Groups[model]
	out := make([]NormalizedVariant, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuggestedPrice < out[j].SuggestedPrice
	})
	return out
}

// Classify maps the grouping shape onto one of the four presentation
// cases. The first three cases are exact matches; everything else falls
// into the multi-model tabs case.
func Classify(g ModelGroups) CaseKind {
	switch {
	case g.ModelCount() == 0:
		// Degenerate: nothing to select, nothing to render.
		return CaseSingleModelSingleVariant
	case g.ModelCount() == 1 && g.VariantCount() == 1:
		return CaseSingleModelSingleVariant
	case g.ModelCount() == 1:
		return CaseSingleModelMultiVariant
	case g.ModelCount() == 2 && len(g.Groups[g.Order[0]]) == 1 && len(g.Groups[g.Order[1]]) == 1:
		return CaseTwoModelsSingleVariantEach
	default:
		return CaseMultiModelMultiVariant
	}
}

// Cheapest returns the globally cheapest variant and its model, scanning
// models and variants in input order so that ties resolve to the first
// variant encountered. ok is false for an empty grouping.
func (g ModelGroups) Cheapest() (model string, variant NormalizedVariant, ok bool) {
	for _, m := range g.Order {
		for _, v := range g.Groups[m] {
			if !ok || v.SuggestedPrice < variant.SuggestedPrice {
				model, variant, ok = m, v, true
			}
		}
	}
	return model, variant, ok
}

// DefaultSelection returns the model and variant that start out selected
// for a given classification. All four cases reduce to the stable global
// cheapest: the sole variant in case 1, the cheapest card in case 2, the
// cheaper model in case 3, and the active tab's cheapest in case 4.
func DefaultSelection(g ModelGroups) (model string, variant NormalizedVariant, ok bool) {
	return g.Cheapest()
}
