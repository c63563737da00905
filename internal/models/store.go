package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dropship-catalog-service/internal/catalog"
)

// StoreStatus represents the connection state of an external store
type StoreStatus string

const (
	StoreStatusConnected    StoreStatus = "CONNECTED"
	StoreStatusDisconnected StoreStatus = "DISCONNECTED"
	StoreStatusError        StoreStatus = "ERROR"
)

// ConnectedStore is a dropshipper's Shopify store connection. Tokens are
// stored as provided at connection time; OAuth token exchange happens
// outside this service.
type ConnectedStore struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID      string          `json:"tenantId" gorm:"not null;index:idx_stores_tenant"`
	DropshipperID string          `json:"dropshipperId" gorm:"not null;index"`
	Name          string          `json:"name" gorm:"not null"`
	ShopDomain    string          `json:"shopDomain" gorm:"not null;uniqueIndex"` // e.g. my-shop.myshopify.com
	AccessToken   string          `json:"-" gorm:"not null"`
	Status        StoreStatus     `json:"status" gorm:"not null;default:'CONNECTED'"`
	LastPushAt    *time.Time      `json:"lastPushAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// PushRequest pushes a product selection to a connected store. Model and
// VariantID describe the picker state; the service resolves the variants
// to include from the product's grouping case.
type PushRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Model     string    `json:"model,omitempty"`
	VariantID string    `json:"variantId,omitempty"`
}

// PushResult reports what was sent to the store.
type PushResult struct {
	StoreID           uuid.UUID             `json:"storeId"`
	ProductID         uuid.UUID             `json:"productId"`
	CaseKind          catalog.CaseKind      `json:"caseKind"`
	ExternalProductID string                `json:"externalProductId,omitempty"`
	Variants          []catalog.PushVariant `json:"variants"`
	PushedAt          time.Time             `json:"pushedAt"`
}

type PushResponse struct {
	Success bool        `json:"success"`
	Data    *PushResult `json:"data"`
	Message *string     `json:"message,omitempty"`
}

type StoreListResponse struct {
	Success bool             `json:"success"`
	Data    []ConnectedStore `json:"data"`
}
