package clients

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"dropship-catalog-service/internal/pricing"
)

// ShippingClient handles communication with the shipping-service
type ShippingClient struct {
	baseURL    string
	httpClient *http.Client
}

// ShippingRate is the per-product rate returned by shipping-service
type ShippingRate struct {
	ProductID string  `json:"productId"`
	Cost      float64 `json:"cost"`
	Carrier   string  `json:"carrier,omitempty"`
}

// ShippingRateResponse from shipping-service
type ShippingRateResponse struct {
	Success bool          `json:"success"`
	Data    *ShippingRate `json:"data,omitempty"`
}

func NewShippingClient() *ShippingClient {
	baseURL := os.Getenv("SHIPPING_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://shipping-service:8080"
	}
	return &ShippingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetShippingCost fetches the per-order shipping cost for a product.
// Any failure (network, non-200, malformed body) resolves to the
// platform default so the calculator always has a usable figure.
func (c *ShippingClient) GetShippingCost(tenantID, productID string) float64 {
	url := fmt.Sprintf("%s/api/v1/rates/product/%s", c.baseURL, productID)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return pricing.DefaultShippingCost
	}
	req.Header.Set("X-Tenant-ID", tenantID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pricing.DefaultShippingCost
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pricing.DefaultShippingCost
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pricing.DefaultShippingCost
	}

	var rateResp ShippingRateResponse
	if err := json.Unmarshal(body, &rateResp); err != nil || rateResp.Data == nil || rateResp.Data.Cost <= 0 {
		return pricing.DefaultShippingCost
	}

	return rateResp.Data.Cost
}
