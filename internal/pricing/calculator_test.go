package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int        { return &v }
func f64(v float64) *float64 { return &v }

func validSelfShipForm() Form {
	return Form{
		ProductPrice: 100,
		ShippingCost: 75,
		Mode:         ModeSelfShip,
		OrdersGiven:  intp(10),
		SellingPrice: f64(150),
		SuccessRatio: f64(50),
		AdSpend:      f64(0),
	}
}

func TestIsSelfShip(t *testing.T) {
	assert.True(t, IsSelfShip("selfship"))
	assert.True(t, IsSelfShip("SelfShip"))
	assert.True(t, IsSelfShip("  SELFSHIP "))
	assert.False(t, IsSelfShip("AirMax"))
	assert.False(t, IsSelfShip(""))

	assert.Equal(t, ModeSelfShip, ModeForModel("selfship"))
	assert.Equal(t, ModeMarketplace, ModeForModel("Zoom"))
}

func TestEvaluateSelfShipScenario(t *testing.T) {
	ev := Evaluate(validSelfShipForm())

	assert.Equal(t, StateValid, ev.State)
	assert.Empty(t, ev.Errors)
	if assert.NotNil(t, ev.Result) {
		r := ev.Result
		assert.Equal(t, 5, r.DeliveredOrders)
		assert.Equal(t, 750.0, r.CODCollected)
		// Product cost covers every order placed but is settled upfront,
		// outside the marketplace deduction.
		assert.Equal(t, 1000.0, r.ProductCost)
		assert.Equal(t, 750.0, r.TotalShipping)
		assert.Equal(t, 750.0, r.TotalDeduction)
		assert.Equal(t, 0.0, r.Remitted)
	}
}

func TestEvaluateMarketplaceScenario(t *testing.T) {
	f := validSelfShipForm()
	f.Mode = ModeMarketplace

	ev := Evaluate(f)

	assert.Equal(t, StateValid, ev.State)
	if assert.NotNil(t, ev.Result) {
		r := ev.Result
		assert.Equal(t, 500.0, r.ProductCost, "product cost only for delivered orders")
		assert.Equal(t, 0.0, r.TotalAdSpend)
		assert.Equal(t, 1250.0, r.TotalDeduction)
		assert.Equal(t, -500.0, r.Remitted, "a net loss must not be clamped to zero")
	}
}

func TestEvaluateMissingRequiredFieldSuppressesResult(t *testing.T) {
	f := validSelfShipForm()
	f.SellingPrice = nil

	ev := Evaluate(f)

	assert.Equal(t, StateUnvalidated, ev.State)
	assert.Nil(t, ev.Result)
	assert.Contains(t, ev.Errors, "sellingPrice")
}

func TestEvaluateSellingPriceBelowCost(t *testing.T) {
	f := validSelfShipForm()
	f.SellingPrice = f64(99) // below ProductPrice of 100

	ev := Evaluate(f)

	assert.Equal(t, StateUnvalidated, ev.State)
	assert.Nil(t, ev.Result)
	assert.Contains(t, ev.Errors["sellingPrice"], "below")
}

func TestEvaluateRatioBounds(t *testing.T) {
	f := validSelfShipForm()
	f.SuccessRatio = f64(120)
	ev := Evaluate(f)
	assert.Equal(t, StateUnvalidated, ev.State)
	assert.Contains(t, ev.Errors, "successRatio")

	f = validSelfShipForm()
	f.ConfirmedRatio = f64(-5)
	ev = Evaluate(f)
	assert.Equal(t, StateUnvalidated, ev.State)
	assert.Contains(t, ev.Errors, "confirmedRatio")
}

func TestEvaluateConfirmedAndRTOOrders(t *testing.T) {
	f := validSelfShipForm()
	f.ConfirmedRatio = f64(80)

	ev := Evaluate(f)

	if assert.NotNil(t, ev.Result) {
		assert.Equal(t, 8, ev.Result.ConfirmedOrders)
		assert.Equal(t, 5, ev.Result.DeliveredOrders)
		assert.Equal(t, 3, ev.Result.RTOOrders)
	}
}

func TestEvaluateRTONeverNegative(t *testing.T) {
	f := validSelfShipForm()
	f.ConfirmedRatio = f64(30) // fewer confirmed than delivered

	ev := Evaluate(f)

	if assert.NotNil(t, ev.Result) {
		assert.Equal(t, 0, ev.Result.RTOOrders)
	}
}

func TestEvaluateMiscChargesJoinDeduction(t *testing.T) {
	f := validSelfShipForm()
	f.MiscCharges = f64(50)

	ev := Evaluate(f)

	if assert.NotNil(t, ev.Result) {
		assert.Equal(t, 800.0, ev.Result.TotalDeduction)
		assert.Equal(t, -50.0, ev.Result.Remitted)
	}
}

func TestEvaluateMarginPerOrder(t *testing.T) {
	f := validSelfShipForm()
	f.SuccessRatio = f64(100)

	ev := Evaluate(f)

	if assert.NotNil(t, ev.Result) {
		// cod 1500, shipping 750 -> remitted 750 across 10 orders.
		assert.Equal(t, 75.0, ev.Result.MarginPerOrder)
	}

	f.OrdersGiven = intp(0)
	ev = Evaluate(f)
	if assert.NotNil(t, ev.Result) {
		assert.Equal(t, 0.0, ev.Result.MarginPerOrder)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	f := validSelfShipForm()
	f.AdSpend = f64(12.34)
	f.MiscCharges = f64(0.01)

	first := Evaluate(f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(f))
	}
}
