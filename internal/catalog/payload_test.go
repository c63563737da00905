package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantsForPushSingleVariant(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{nv("a", "AirMax", 100)})

	out := VariantsForPush(g, Classify(g), Selection{})

	assert.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestVariantsForPushSingleModelIncludesAllVariants(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 80),
		nv("c", "AirMax", 90),
	})

	out := VariantsForPush(g, Classify(g), Selection{VariantID: "c"})

	// The whole model ships regardless of which card is selected,
	// price-sorted as displayed.
	assert.Len(t, out, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestVariantsForPushTwoModelsPushesSelectedModelOnly(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "Zoom", 80),
	})

	out := VariantsForPush(g, Classify(g), Selection{Model: "AirMax"})
	assert.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)

	// Unknown selection falls back to the cheaper model.
	out = VariantsForPush(g, Classify(g), Selection{Model: "Nope"})
	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
}

func TestVariantsForPushTabsPushActiveModel(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 90),
		nv("c", "Zoom", 80),
		nv("d", "Zoom", 110),
	})

	out := VariantsForPush(g, Classify(g), Selection{Model: "AirMax"})
	assert.Equal(t, []string{"b", "a"}, []string{out[0].ID, out[1].ID})

	// No active tab: default to the model holding the global cheapest.
	out = VariantsForPush(g, Classify(g), Selection{})
	assert.Equal(t, []string{"c", "d"}, []string{out[0].ID, out[1].ID})
}

func TestVariantsForPushEmptyGrouping(t *testing.T) {
	g := GroupByModel(nil)
	assert.Nil(t, VariantsForPush(g, CaseSingleModelSingleVariant, Selection{}))
}

func TestBuildPushPayloadUsesSellingPrices(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "AirMax", 80),
	})
	prices := map[string]float64{"a": 149, "b": 129}

	payload := BuildPushPayload(g, Classify(g), Selection{}, func(v NormalizedVariant) float64 {
		return prices[v.ID]
	})

	assert.Equal(t, []PushVariant{
		{VariantID: "b", Price: 129},
		{VariantID: "a", Price: 149},
	}, payload)
}

func TestBuildPushPayloadDefaultsToSuggestedPrice(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{nv("a", "AirMax", 100)})

	payload := BuildPushPayload(g, Classify(g), Selection{}, nil)

	assert.Equal(t, []PushVariant{{VariantID: "a", Price: 100}}, payload)
}

func TestBuildDetailedPushPayload(t *testing.T) {
	g := GroupByModel([]NormalizedVariant{
		nv("a", "AirMax", 100),
		nv("b", "Zoom", 80),
	})

	payload := BuildDetailedPushPayload(g, Classify(g), Selection{Model: "Zoom"}, func(v NormalizedVariant) (int, float64, string) {
		return 25, 119, "ACTIVE"
	})

	assert.Equal(t, []PushVariantDetailed{
		{VariantID: "b", Stock: 25, Price: 119, Status: "ACTIVE"},
	}, payload)
}
