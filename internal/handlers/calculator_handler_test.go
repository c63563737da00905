package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dropship-catalog-service/internal/models"
	"dropship-catalog-service/internal/pricing"
)

// MockProductGetter is a mock implementation of ProductGetter
type MockProductGetter struct {
	mock.Mock
}

var _ ProductGetter = (*MockProductGetter)(nil)

func (m *MockProductGetter) GetProduct(ctx context.Context, tenantID string, id uuid.UUID) (*models.SupplierProduct, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplierProduct), args.Error(1)
}

// MockShippingRates is a mock implementation of ShippingRates
type MockShippingRates struct {
	mock.Mock
}

var _ ShippingRates = (*MockShippingRates)(nil)

func (m *MockShippingRates) GetShippingCost(tenantID, productID string) float64 {
	args := m.Called(tenantID, productID)
	return args.Get(0).(float64)
}

func setupCalculatorRouter(repo ProductGetter, shipping ShippingRates) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", "tenant-1")
		c.Set("user_id", "user-1")
		c.Next()
	})
	handler := NewCalculatorHandler(repo, shipping)
	router.POST("/calculator/estimate", handler.Estimate)
	return router
}

func testProduct(productID, variantID uuid.UUID, model string, price float64) *models.SupplierProduct {
	return &models.SupplierProduct{
		ID:       productID,
		TenantID: "tenant-1",
		Name:     "Test product",
		SKU:      "SKU-1",
		Variants: []*models.ProductVariant{
			{ID: variantID, ProductID: productID, SKU: "SKU-1-A", Name: "Default", Model: model, SuggestedPrice: price},
		},
	}
}

func postEstimate(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/calculator/estimate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEstimateSelfShipHappyPath(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	repo := new(MockProductGetter)
	repo.On("GetProduct", mock.Anything, "tenant-1", productID).
		Return(testProduct(productID, variantID, "selfship", 100), nil)

	shipping := new(MockShippingRates)
	shipping.On("GetShippingCost", "tenant-1", productID.String()).Return(75.0)

	router := setupCalculatorRouter(repo, shipping)
	w := postEstimate(t, router, map[string]interface{}{
		"productId":    productID.String(),
		"variantId":    variantID.String(),
		"ordersGiven":  10,
		"sellingPrice": 150,
		"successRatio": 50,
		"adSpend":      0,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EstimateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, pricing.StateValid, resp.Data.State)
	if assert.NotNil(t, resp.Data.Result) {
		assert.Equal(t, pricing.ModeSelfShip, resp.Data.Result.Mode)
		assert.Equal(t, 5, resp.Data.Result.DeliveredOrders)
		assert.Equal(t, 750.0, resp.Data.Result.TotalDeduction)
		assert.Equal(t, 0.0, resp.Data.Result.Remitted)
	}
	repo.AssertExpectations(t)
	shipping.AssertExpectations(t)
}

func TestEstimateUsesProductShippingCostWhenSet(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	product := testProduct(productID, variantID, "Zoom", 100)
	product.ShippingCost = 40

	repo := new(MockProductGetter)
	repo.On("GetProduct", mock.Anything, "tenant-1", productID).Return(product, nil)

	// Shipping service must not be consulted when the product carries a
	// cost of its own.
	shipping := new(MockShippingRates)

	router := setupCalculatorRouter(repo, shipping)
	w := postEstimate(t, router, map[string]interface{}{
		"productId":    productID.String(),
		"variantId":    variantID.String(),
		"ordersGiven":  10,
		"sellingPrice": 150,
		"successRatio": 100,
		"adSpend":      0,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EstimateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if assert.NotNil(t, resp.Data.Result) {
		assert.Equal(t, 400.0, resp.Data.Result.TotalShipping)
	}
	shipping.AssertNotCalled(t, "GetShippingCost", mock.Anything, mock.Anything)
}

func TestEstimateInvalidFormSuppressesResult(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	repo := new(MockProductGetter)
	repo.On("GetProduct", mock.Anything, "tenant-1", productID).
		Return(testProduct(productID, variantID, "Zoom", 100), nil)

	shipping := new(MockShippingRates)
	shipping.On("GetShippingCost", "tenant-1", productID.String()).Return(75.0)

	router := setupCalculatorRouter(repo, shipping)
	w := postEstimate(t, router, map[string]interface{}{
		"productId":    productID.String(),
		"variantId":    variantID.String(),
		"ordersGiven":  10,
		"sellingPrice": 90, // below the 100 suggested price
		"successRatio": 50,
		"adSpend":      0,
	})

	// Validation failures are part of the calculator contract, not HTTP
	// errors: 200 with the result suppressed.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EstimateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, pricing.StateUnvalidated, resp.Data.State)
	assert.Nil(t, resp.Data.Result)
	assert.Contains(t, resp.Data.Errors, "sellingPrice")
}

func TestEstimateUnknownProduct(t *testing.T) {
	productID := uuid.New()

	repo := new(MockProductGetter)
	repo.On("GetProduct", mock.Anything, "tenant-1", productID).
		Return(nil, gorm.ErrRecordNotFound)

	router := setupCalculatorRouter(repo, new(MockShippingRates))
	w := postEstimate(t, router, map[string]interface{}{
		"productId":    productID.String(),
		"variantId":    uuid.New().String(),
		"ordersGiven":  10,
		"sellingPrice": 150,
		"successRatio": 50,
		"adSpend":      0,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEstimateUnknownVariant(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	repo := new(MockProductGetter)
	repo.On("GetProduct", mock.Anything, "tenant-1", productID).
		Return(testProduct(productID, variantID, "Zoom", 100), nil)

	router := setupCalculatorRouter(repo, new(MockShippingRates))
	w := postEstimate(t, router, map[string]interface{}{
		"productId":    productID.String(),
		"variantId":    uuid.New().String(), // not on the product
		"ordersGiven":  10,
		"sellingPrice": 150,
		"successRatio": 50,
		"adSpend":      0,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
