package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nv(id, model string, price float64) NormalizedVariant {
	return NormalizedVariant{ID: id, Name: id, Model: model, SuggestedPrice: price}
}

func TestGroupByModelIsAPartition(t *testing.T) {
	variants := []NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 90),
		nv("c", "Zoom", 110),
		nv("d", "", 50), // empty model lands in the fallback group
	}

	g := GroupByModel(variants)

	assert.Equal(t, []string{"AirMax", "Zoom", FallbackModel}, g.Order)
	assert.Equal(t, 4, g.VariantCount())

	// Every input variant appears exactly once across all groups.
	seen := map[string]int{}
	for _, m := range g.Order {
		for _, v := range g.Groups[m] {
			seen[v.ID]++
		}
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, seen)
}

func TestClassifySingleModelSingleVariant(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{nv("a", "AirMax", 100)})
	assert.Equal(t, CaseSingleModelSingleVariant, Classify(g))
}

func TestClassifySingleModelMultiVariant(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 80),
	})
	assert.Equal(t, CaseSingleModelMultiVariant, Classify(g))
}

func TestClassifyTwoModelsSingleVariantEach(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "Zoom", 80),
	})
	assert.Equal(t, CaseTwoModelsSingleVariantEach, Classify(g))
}

func TestClassifyMultiModelMultiVariant(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 90),
		nv("c", "Zoom", 80),
	})
	assert.Equal(t, CaseMultiModelMultiVariant, Classify(g))

	// Three single-variant models are also the tabs case - case 3 is an
	// exact two-model match, not a general radio case.
	g = GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "Zoom", 90),
		nv("c", "Pegasus", 80),
	})
	assert.Equal(t, CaseMultiModelMultiVariant, Classify(g))
}

func TestSortedByPriceIsStableAndNonDestructive(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 90),
		nv("c", "AirMax", 90),
	})

	sorted := g.SortedByPrice("AirMax")
	assert.Equal(t, "b", sorted[0].ID)
	assert.Equal(t, "c", sorted[1].ID, "equal prices keep input order")
	assert.Equal(t, "a", sorted[2].ID)

	// The underlying group keeps input order.
	assert.Equal(t, "a", g.Groups["AirMax"][0].ID)
}

func TestCheapestTieBreaksToFirstInInputOrder(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 90),
		nv("b", "Zoom", 90),
		nv("c", "Zoom", 120),
	})

	model, v, ok := g.Cheapest()
	assert.True(t, ok)
	assert.Equal(t, "AirMax", model)
	assert.Equal(t, "a", v.ID)
}

func TestDefaultSelectionTwoModels(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "Zoom", 80),
	})

	model, v, ok := DefaultSelection(g)
	assert.True(t, ok)
	assert.Equal(t, "Zoom", model)
	assert.Equal(t, "b", v.ID)
}

func TestCheapestEmptyGrouping(t *testing.T) {
	g := GroupByModel(nil)
	_, _, ok := g.Cheapest()
	assert.False(t, ok)
	assert.Equal(t, 0, g.ModelCount())
}
