package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dropship-catalog-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute // Single product cache
	ProductListCacheTTL = 2 * time.Minute // Product list cache (shorter due to frequent changes)

	cacheKeyPrefix = "dropship:catalog:"
)

var ErrNotFound = gorm.ErrRecordNotFound

// CatalogRepository is the data access layer for supplier products and
// their variants, with read-through Redis caching.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{
		db:    db,
		redis: redisClient,
	}
}

// DB exposes the underlying gorm handle for repositories that share it.
func (r *CatalogRepository) DB() *gorm.DB {
	return r.db
}

// generateListCacheKey creates a deterministic cache key for list queries
func generateListCacheKey(tenantID string, prefix string, params interface{}) string {
	data, _ := json.Marshal(params)
	hash := md5.Sum(data)
	return fmt.Sprintf("%s%s:%s:%s", cacheKeyPrefix, prefix, tenantID, hex.EncodeToString(hash[:]))
}

func (r *CatalogRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}
	data, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (r *CatalogRepository) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = r.redis.Set(ctx, key, data, ttl).Err()
}

// invalidateProductCaches drops the cached product and every list page
// for the tenant.
func (r *CatalogRepository) invalidateProductCaches(ctx context.Context, tenantID string, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, fmt.Sprintf("%sproduct:%s:%s", cacheKeyPrefix, tenantID, productID)).Err()

	pattern := fmt.Sprintf("%slist:%s:*", cacheKeyPrefix, tenantID)
	iter := r.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}

// CreateProduct persists a supplier product with its variants.
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.SupplierProduct) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return err
	}
	r.invalidateProductCaches(ctx, product.TenantID, product.ID)
	return nil
}

// GetProduct loads one product (variants preloaded) through the cache.
func (r *CatalogRepository) GetProduct(ctx context.Context, tenantID string, id uuid.UUID) (*models.SupplierProduct, error) {
	cacheKey := fmt.Sprintf("%sproduct:%s:%s", cacheKeyPrefix, tenantID, id)

	var cached models.SupplierProduct
	if r.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var product models.SupplierProduct
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, &product, ProductCacheTTL)
	return &product, nil
}

// ListProducts returns a filtered, paginated catalog page.
func (r *CatalogRepository) ListProducts(ctx context.Context, tenantID string, query models.ListProductsQuery) ([]models.SupplierProduct, int64, error) {
	type cachedList struct {
		Products []models.SupplierProduct `json:"products"`
		Total    int64                    `json:"total"`
	}

	cacheKey := generateListCacheKey(tenantID, "list", query)
	var cached cachedList
	if r.cacheGet(ctx, cacheKey, &cached) {
		return cached.Products, cached.Total, nil
	}

	db := r.db.WithContext(ctx).Model(&models.SupplierProduct{}).Where("tenant_id = ?", tenantID)

	if query.Status != "" {
		db = db.Where("status = ?", strings.ToUpper(query.Status))
	}
	if query.SupplierID != "" {
		db = db.Where("supplier_id = ?", query.SupplierID)
	}
	if query.CategoryID != "" {
		db = db.Where("category_id = ?", query.CategoryID)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.SupplierProduct
	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Variants").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	r.cacheSet(ctx, cacheKey, cachedList{Products: products, Total: total}, ProductListCacheTTL)
	return products, total, nil
}

// UpdateProduct applies a partial update and invalidates caches.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, tenantID string, id uuid.UUID, req models.UpdateProductRequest) (*models.SupplierProduct, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		updates["status"] = models.ProductStatus(strings.ToUpper(string(*req.Status)))
	}
	if req.ShippingCost != nil {
		updates["shipping_cost"] = *req.ShippingCost
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.SupplierProduct{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	r.invalidateProductCaches(ctx, tenantID, id)
	return r.GetProduct(ctx, tenantID, id)
}

// DeleteProduct soft-deletes a product.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, tenantID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.SupplierProduct{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCaches(ctx, tenantID, id)
	return nil
}

// GetVariants loads a product's variants.
func (r *CatalogRepository) GetVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error
	return variants, err
}

// IsNotFound reports whether an error is the repository's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
