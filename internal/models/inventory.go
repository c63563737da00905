package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryStatus represents the lifecycle state of an imported item
type InventoryStatus string

const (
	InventoryStatusActive   InventoryStatus = "ACTIVE"
	InventoryStatusInactive InventoryStatus = "INACTIVE"
)

// InventoryItem is a supplier product a dropshipper has imported into
// their personal inventory. Deleting an item is a soft delete; restore
// clears DeletedAt and reactivates it.
type InventoryItem struct {
	ID            uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID      string              `json:"tenantId" gorm:"not null;index:idx_inventory_tenant;index:idx_inventory_tenant_product,unique"`
	DropshipperID string              `json:"dropshipperId" gorm:"not null;index:idx_inventory_tenant_product,unique"`
	ProductID     uuid.UUID           `json:"productId" gorm:"type:uuid;not null;index:idx_inventory_tenant_product,unique"`
	Status        InventoryStatus     `json:"status" gorm:"not null;default:'ACTIVE'"`
	Product       *SupplierProduct    `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Variants      []*InventoryVariant `json:"variants,omitempty" gorm:"foreignKey:InventoryItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	DeletedAt     *gorm.DeletedAt     `json:"deletedAt,omitempty" gorm:"index"`
}

// InventoryVariant carries the dropshipper's own selling price for one
// variant of an imported product.
type InventoryVariant struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	InventoryItemID uuid.UUID       `json:"inventoryItemId" gorm:"type:uuid;not null;index"`
	VariantID       uuid.UUID       `json:"variantId" gorm:"type:uuid;not null;index"`
	Variant         *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	Price           float64         `json:"price" gorm:"not null"`
	Stock           int             `json:"stock" gorm:"not null;default:0"`
	Status          string          `json:"status" gorm:"not null;default:'ACTIVE'"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// ImportInventoryRequest imports a supplier product into the caller's
// inventory with per-variant selling prices.
type ImportInventoryRequest struct {
	ProductID uuid.UUID            `json:"productId" binding:"required"`
	Variants  []ImportVariantInput `json:"variants" binding:"required,min=1"`
}

// ImportVariantInput sets the selling price (and optionally stock) for one
// imported variant.
type ImportVariantInput struct {
	VariantID uuid.UUID `json:"variantId" binding:"required"`
	Price     float64   `json:"price" binding:"required,min=0"`
	Stock     *int      `json:"stock,omitempty"`
}

// ListInventoryQuery captures inventory list filters
type ListInventoryQuery struct {
	Page           int
	Limit          int
	Status         string
	Search         string
	IncludeDeleted bool
}

type InventoryItemResponse struct {
	Success bool           `json:"success"`
	Data    *InventoryItem `json:"data"`
	Message *string        `json:"message,omitempty"`
}

type InventoryListResponse struct {
	Success    bool            `json:"success"`
	Data       []InventoryItem `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// ExportInventoryRequest selects the export format
type ExportInventoryRequest struct {
	Format string `json:"format" binding:"required,oneof=csv xlsx"`
}
