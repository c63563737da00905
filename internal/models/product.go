package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the status of a supplier product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ProductSource discriminates where a product's variants come from when
// rendered for a dropshipper: the supplier catalog ("notmy") or the
// dropshipper's own imported inventory ("my").
type ProductSource string

const (
	ProductSourceCatalog ProductSource = "notmy"
	ProductSourceOwned   ProductSource = "my"
)

// SupplierProduct represents a product listed by a supplier.
// Composite tenant indexes follow the multi-tenant query patterns used
// across the platform.
type SupplierProduct struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string        `json:"tenantId" gorm:"not null;index:idx_supplier_products_tenant;index:idx_supplier_products_tenant_status;index:idx_supplier_products_tenant_sku,unique"`
	SupplierID  string        `json:"supplierId" gorm:"not null;index"`
	Name        string        `json:"name" gorm:"not null"`
	SKU         string        `json:"sku" gorm:"not null;index:idx_supplier_products_tenant_sku,unique"`
	Description *string       `json:"description,omitempty"`
	Brand       *string       `json:"brand,omitempty"`
	CategoryID  *string       `json:"categoryId,omitempty" gorm:"index"`
	Status      ProductStatus `json:"status" gorm:"not null;default:'DRAFT';index:idx_supplier_products_tenant_status"`
	// ShippingCost is the per-order shipping figure used by the profit
	// calculator. Zero means unknown; callers fall back to the shipping
	// service, then to the platform default.
	ShippingCost float64           `json:"shippingCost"`
	Tags         *JSON             `json:"tags,omitempty" gorm:"type:jsonb"`
	Metadata     *JSON             `json:"metadata,omitempty" gorm:"type:jsonb"`
	Variants     []*ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	DeletedAt    *gorm.DeletedAt   `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy    *string           `json:"createdBy,omitempty"`
	UpdatedBy    *string           `json:"updatedBy,omitempty"`
}

// ProductVariant represents one sellable variant of a supplier product.
// Model is the SKU-family label the picker groups by; Images is a
// comma-joined URL list, first entry shown as the card image.
type ProductVariant struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID      uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	SKU            string          `json:"sku" gorm:"not null;unique"`
	Name           string          `json:"name" gorm:"not null"`
	Model          string          `json:"model" gorm:"not null;index"`
	Color          *string         `json:"color,omitempty"`
	Images         *string         `json:"images,omitempty"` // comma-joined URLs
	SuggestedPrice float64         `json:"suggestedPrice" gorm:"not null;default:0"`
	Stock          int             `json:"stock" gorm:"not null;default:0"`
	Status         string          `json:"status" gorm:"not null;default:'ACTIVE'"`
	Attributes     *JSON           `json:"attributes,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateProductRequest represents a request to list a new supplier product
type CreateProductRequest struct {
	Name         string                      `json:"name" binding:"required"`
	SKU          string                      `json:"sku" binding:"required"`
	SupplierID   string                      `json:"supplierId" binding:"required"`
	Description  *string                     `json:"description,omitempty"`
	Brand        *string                     `json:"brand,omitempty"`
	CategoryID   *string                     `json:"categoryId,omitempty"`
	ShippingCost *float64                    `json:"shippingCost,omitempty"`
	Tags         *JSON                       `json:"tags,omitempty"`
	Variants     []CreateProductVariantInput `json:"variants,omitempty"`
}

// CreateProductVariantInput is one variant within a product create request
type CreateProductVariantInput struct {
	SKU            string  `json:"sku" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Model          string  `json:"model"`
	Color          *string `json:"color,omitempty"`
	Images         *string `json:"images,omitempty"`
	SuggestedPrice float64 `json:"suggestedPrice" binding:"min=0"`
	Stock          int     `json:"stock"`
}

// UpdateProductRequest represents a partial update to a supplier product
type UpdateProductRequest struct {
	Name         *string        `json:"name,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Brand        *string        `json:"brand,omitempty"`
	CategoryID   *string        `json:"categoryId,omitempty"`
	Status       *ProductStatus `json:"status,omitempty"`
	ShippingCost *float64       `json:"shippingCost,omitempty"`
	Tags         *JSON          `json:"tags,omitempty"`
}

// ListProductsQuery captures catalog list filters
type ListProductsQuery struct {
	Page       int
	Limit      int
	Status     string
	SupplierID string
	CategoryID string
	Search     string
}

type ProductResponse struct {
	Success bool             `json:"success"`
	Data    *SupplierProduct `json:"data"`
	Message *string          `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool              `json:"success"`
	Data       []SupplierProduct `json:"data"`
	Pagination *PaginationInfo   `json:"pagination"`
}
