package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dropship-catalog-service/internal/middleware"
	"dropship-catalog-service/internal/models"
	"dropship-catalog-service/internal/pricing"
	"dropship-catalog-service/internal/repository"
)

// ProductGetter is the slice of the catalog repository the calculator
// needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, tenantID string, id uuid.UUID) (*models.SupplierProduct, error)
}

// ShippingRates resolves the per-product shipping cost.
type ShippingRates interface {
	GetShippingCost(tenantID, productID string) float64
}

type CalculatorHandler struct {
	repo     ProductGetter
	shipping ShippingRates
}

func NewCalculatorHandler(repo ProductGetter, shipping ShippingRates) *CalculatorHandler {
	return &CalculatorHandler{
		repo:     repo,
		shipping: shipping,
	}
}

// Estimate runs the profit calculator for one variant.
// The response always carries the evaluation: a computed result when the
// form is valid, or field errors with the result suppressed. Only a
// malformed request (unknown product/variant, bad IDs) is an HTTP error.
// @Summary Estimate margin and remittance for a pricing scenario
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body models.EstimateRequest true "Scenario"
// @Success 200 {object} models.EstimateResponse
// @Router /calculator/estimate [post]
func (h *CalculatorHandler) Estimate(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		validationError(c, "Invalid product ID", "productId")
		return
	}

	product, err := h.repo.GetProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	var variant *models.ProductVariant
	for _, v := range product.Variants {
		if v.ID.String() == req.VariantID {
			variant = v
			break
		}
	}
	if variant == nil {
		notFoundError(c, "Variant not found on product")
		return
	}

	shippingCost := product.ShippingCost
	if shippingCost <= 0 {
		shippingCost = h.shipping.GetShippingCost(tenantID, productID.String())
	}

	form := pricing.Form{
		ProductPrice:   variant.SuggestedPrice,
		ShippingCost:   shippingCost,
		Mode:           pricing.ModeForModel(variant.Model),
		OrdersGiven:    req.OrdersGiven,
		SellingPrice:   req.SellingPrice,
		SuccessRatio:   req.SuccessRatio,
		ConfirmedRatio: req.ConfirmedRatio,
		AdSpend:        req.AdSpend,
		MiscCharges:    req.MiscCharges,
	}

	c.JSON(http.StatusOK, models.EstimateResponse{
		Success: true,
		Data:    pricing.Evaluate(form),
	})
}
