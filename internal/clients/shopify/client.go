package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	apiVersion = "2024-01"
)

// Client is a Shopify Admin API client scoped to one connected store.
type Client struct {
	httpClient  *http.Client
	storeURL    string
	accessToken string
	rateLimiter *rate.Limiter
}

// NewClient creates a Shopify Admin API client for a shop domain
// (e.g. "my-shop.myshopify.com") and access token.
func NewClient(shopDomain, accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		storeURL:    "https://" + shopDomain,
		accessToken: accessToken,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 1), // 2 requests per second
	}
}

// TestConnection verifies the token works against the shop endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/shop.json", nil)
	return err
}

// ProductInput is the product payload sent to Shopify.
type ProductInput struct {
	Title    string         `json:"title"`
	BodyHTML string         `json:"body_html,omitempty"`
	Vendor   string         `json:"vendor,omitempty"`
	Status   string         `json:"status,omitempty"`
	Variants []VariantInput `json:"variants"`
	Images   []ImageInput   `json:"images,omitempty"`
}

// VariantInput is one variant within a product payload. Option1 carries
// the variant's display name so multi-variant products render a picker.
type VariantInput struct {
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	Option1           string `json:"option1,omitempty"`
	InventoryQuantity int    `json:"inventory_quantity,omitempty"`
}

// ImageInput attaches an image by source URL.
type ImageInput struct {
	Src string `json:"src"`
}

type productEnvelope struct {
	Product struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	} `json:"product"`
}

// CreateProduct pushes a product with its variants to the store and
// returns Shopify's product ID.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/products.json", map[string]interface{}{
		"product": input,
	})
	if err != nil {
		return "", err
	}

	var envelope productEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("failed to parse product response: %w", err)
	}
	if envelope.Product.ID == 0 {
		return "", fmt.Errorf("product response missing id")
	}

	return strconv.FormatInt(envelope.Product.ID, 10), nil
}

// doRequest performs a rate-limited Admin API call and returns the
// response body. Non-2xx statuses are returned as errors with the
// response body included.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/admin/api/%s%s", c.storeURL, apiVersion, path)

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify API error %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
