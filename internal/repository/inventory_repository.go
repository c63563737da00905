package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dropship-catalog-service/internal/models"
)

// ErrAlreadyImported is returned when a dropshipper imports a product
// that is already in their inventory.
var ErrAlreadyImported = fmt.Errorf("product already imported")

// InventoryRepository is the data access layer for dropshipper
// inventories.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Import copies a supplier product into a dropshipper's inventory with
// their chosen per-variant prices. The whole import is one transaction;
// a failed variant insert rolls back the item.
func (r *InventoryRepository) Import(ctx context.Context, tenantID, dropshipperID string, req models.ImportInventoryRequest) (*models.InventoryItem, error) {
	var existing models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND dropshipper_id = ? AND product_id = ?", tenantID, dropshipperID, req.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyImported
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	item := &models.InventoryItem{
		TenantID:      tenantID,
		DropshipperID: dropshipperID,
		ProductID:     req.ProductID,
		Status:        models.InventoryStatusActive,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		for _, v := range req.Variants {
			stock := 0
			if v.Stock != nil {
				stock = *v.Stock
			}
			iv := &models.InventoryVariant{
				InventoryItemID: item.ID,
				VariantID:       v.VariantID,
				Price:           v.Price,
				Stock:           stock,
				Status:          "ACTIVE",
			}
			if err := tx.Create(iv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, tenantID, dropshipperID, item.ID)
}

// Get loads one inventory item with its variants and product.
func (r *InventoryRepository) Get(ctx context.Context, tenantID, dropshipperID string, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Variants").
		Preload("Variants.Variant").
		Where("tenant_id = ? AND dropshipper_id = ? AND id = ?", tenantID, dropshipperID, id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByProduct finds the inventory item holding a given supplier product.
func (r *InventoryRepository) GetByProduct(ctx context.Context, tenantID, dropshipperID string, productID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Variants").
		Preload("Variants.Variant").
		Where("tenant_id = ? AND dropshipper_id = ? AND product_id = ?", tenantID, dropshipperID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns a paginated slice of the dropshipper's inventory.
// IncludeDeleted surfaces soft-deleted items so they can be restored.
func (r *InventoryRepository) List(ctx context.Context, tenantID, dropshipperID string, query models.ListInventoryQuery) ([]models.InventoryItem, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND dropshipper_id = ?", tenantID, dropshipperID)
	if query.IncludeDeleted {
		db = db.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InventoryItem
	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Product").
		Preload("Variants").
		Preload("Variants.Variant").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SoftDelete marks an inventory item deleted. The row survives and can
// be restored.
func (r *InventoryRepository) SoftDelete(ctx context.Context, tenantID, dropshipperID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND dropshipper_id = ? AND id = ?", tenantID, dropshipperID, id).
		Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the soft-delete marker and reactivates the item.
func (r *InventoryRepository) Restore(ctx context.Context, tenantID, dropshipperID string, id uuid.UUID) (*models.InventoryItem, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND dropshipper_id = ? AND id = ? AND deleted_at IS NOT NULL", tenantID, dropshipperID, id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"status":     models.InventoryStatusActive,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, tenantID, dropshipperID, id)
}
