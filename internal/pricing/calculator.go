package pricing

import (
	"math"
	"strings"
)

// SelfShipModel is the variant model label that switches the calculator
// into self-ship mode (matched case-insensitively).
const SelfShipModel = "selfship"

// DefaultShippingCost is used when the shipping service cannot provide a
// per-product figure.
const DefaultShippingCost = 75

// Mode is the fulfillment mode a scenario is priced under.
type Mode string

const (
	// ModeSelfShip - the reseller ships every order themselves and bears
	// product cost upfront for all orders placed, delivered or not.
	ModeSelfShip Mode = "SELF_SHIP"
	// ModeMarketplace - the platform fulfills and recovers product cost
	// only for delivered orders.
	ModeMarketplace Mode = "MARKETPLACE"
)

// IsSelfShip reports whether a variant model label selects self-ship mode.
func IsSelfShip(model string) bool {
	return strings.EqualFold(strings.TrimSpace(model), SelfShipModel)
}

// ModeForModel maps a variant model label to a fulfillment mode.
func ModeForModel(model string) Mode {
	if IsSelfShip(model) {
		return ModeSelfShip
	}
	return ModeMarketplace
}

// State is the calculator's validation state. There are exactly two:
// outputs are either fully shown or fully suppressed, never partially.
type State string

const (
	StateUnvalidated State = "UNVALIDATED"
	StateValid       State = "VALID"
)

// Form holds one pricing scenario. ProductPrice, ShippingCost and Mode
// come from data; the pointer fields are user-entered and nil while the
// user has not supplied them, which keeps "missing" distinct from zero.
type Form struct {
	ProductPrice float64 `json:"productPrice"`
	ShippingCost float64 `json:"shippingCost"`
	Mode         Mode    `json:"mode"`

	OrdersGiven    *int     `json:"ordersGiven"`
	SellingPrice   *float64 `json:"sellingPrice"`
	SuccessRatio   *float64 `json:"successRatio"`   // delivery percentage, 0-100
	ConfirmedRatio *float64 `json:"confirmedRatio"` // optional, defaults to 100
	AdSpend        *float64 `json:"adSpend"`        // per-order ad cost
	MiscCharges    *float64 `json:"miscCharges"`    // optional flat deduction
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Result is the full set of derived figures for a valid scenario.
// Monetary values stay float64 end to end; formatting is a display
// concern.
type Result struct {
	Mode            Mode    `json:"mode"`
	ConfirmedOrders int     `json:"confirmedOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	RTOOrders       int     `json:"rtoOrders"`
	CODCollected    float64 `json:"codCollected"`
	ProductCost     float64 `json:"productCost"`
	TotalShipping   float64 `json:"totalShipping"`
	TotalAdSpend    float64 `json:"totalAdSpend"`
	MiscCharges     float64 `json:"miscCharges"`
	TotalDeduction  float64 `json:"totalDeduction"`
	Remitted        float64 `json:"remitted"`
	MarginPerOrder  float64 `json:"marginPerOrder"`
}

// Evaluation pairs the validation state with either field errors or a
// computed result. Result is nil whenever State is StateUnvalidated; a
// suppressed result is absent, not zeroed.
type Evaluation struct {
	State  State       `json:"state"`
	Errors FieldErrors `json:"errors,omitempty"`
	Result *Result     `json:"result,omitempty"`
}

// Validate checks every required field and the cross-field selling-price
// rule. It returns an empty map for a fully valid form.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}

	if f.OrdersGiven == nil {
		errs["ordersGiven"] = "orders given is required"
	} else if *f.OrdersGiven < 0 {
		errs["ordersGiven"] = "orders given must be zero or more"
	}

	if f.SellingPrice == nil {
		errs["sellingPrice"] = "selling price is required"
	} else if *f.SellingPrice < 0 {
		errs["sellingPrice"] = "selling price must be zero or more"
	} else if *f.SellingPrice < f.ProductPrice {
		errs["sellingPrice"] = "selling price cannot be below the product price"
	}

	if f.SuccessRatio == nil {
		errs["successRatio"] = "delivery percentage is required"
	} else if *f.SuccessRatio < 0 || *f.SuccessRatio > 100 {
		errs["successRatio"] = "delivery percentage must be between 0 and 100"
	}

	if f.ConfirmedRatio != nil && (*f.ConfirmedRatio < 0 || *f.ConfirmedRatio > 100) {
		errs["confirmedRatio"] = "confirmed percentage must be between 0 and 100"
	}

	if f.AdSpend == nil {
		errs["adSpend"] = "ad spend is required"
	} else if *f.AdSpend < 0 {
		errs["adSpend"] = "ad spend must be zero or more"
	}

	return errs
}

// Evaluate runs the two-state machine over a form: any validation failure
// yields StateUnvalidated with field errors and no result; otherwise the
// scenario is computed. Evaluate is pure - identical forms always produce
// identical evaluations.
func Evaluate(f Form) Evaluation {
	if errs := Validate(f); len(errs) > 0 {
		return Evaluation{State: StateUnvalidated, Errors: errs}
	}
	r := compute(f)
	return Evaluation{State: StateValid, Result: &r}
}

func compute(f Form) Result {
	orders := *f.OrdersGiven
	selling := *f.SellingPrice
	success := *f.SuccessRatio
	confirmed := 100.0
	if f.ConfirmedRatio != nil {
		confirmed = *f.ConfirmedRatio
	}
	adSpend := *f.AdSpend
	misc := 0.0
	if f.MiscCharges != nil {
		misc = *f.MiscCharges
	}

	delivered := int(math.Round(float64(orders) * success / 100))
	confirmedOrders := int(math.Round(float64(orders) * confirmed / 100))
	rto := confirmedOrders - delivered
	if rto < 0 {
		rto = 0
	}

	r := Result{
		Mode:            f.Mode,
		ConfirmedOrders: confirmedOrders,
		DeliveredOrders: delivered,
		RTOOrders:       rto,
		CODCollected:    selling * float64(delivered),
		TotalShipping:   f.ShippingCost * float64(orders),
		TotalAdSpend:    adSpend * float64(orders),
		MiscCharges:     misc,
	}

	if f.Mode == ModeSelfShip {
		// Product ships before the delivery outcome is known, so the
		// reseller pays product cost for every order placed. That cost is
		// settled upfront and is not part of the marketplace deduction.
		r.ProductCost = f.ProductPrice * float64(orders)
		r.TotalDeduction = r.TotalShipping + r.TotalAdSpend + r.MiscCharges
	} else {
		r.ProductCost = f.ProductPrice * float64(delivered)
		r.TotalDeduction = r.ProductCost + r.TotalShipping + r.TotalAdSpend + r.MiscCharges
	}

	// Remittance may be negative; a loss-making scenario is reported, not
	// clamped.
	r.Remitted = r.CODCollected - r.TotalDeduction
	if orders > 0 {
		r.MarginPerOrder = r.Remitted / float64(orders)
	}

	return r
}
