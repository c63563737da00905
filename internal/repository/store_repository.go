package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dropship-catalog-service/internal/models"
)

// StoreRepository is the data access layer for connected stores.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Get loads one connected store scoped to the tenant.
func (r *StoreRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*models.ConnectedStore, error) {
	var store models.ConnectedStore
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// List returns the dropshipper's connected stores.
func (r *StoreRepository) List(ctx context.Context, tenantID, dropshipperID string) ([]models.ConnectedStore, error) {
	var stores []models.ConnectedStore
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND dropshipper_id = ?", tenantID, dropshipperID).
		Order("created_at ASC").
		Find(&stores).Error
	return stores, err
}

// Create registers a connected store.
func (r *StoreRepository) Create(ctx context.Context, store *models.ConnectedStore) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// TouchLastPush records a successful push.
func (r *StoreRepository) TouchLastPush(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ConnectedStore{}).
		Where("id = ?", id).
		Update("last_push_at", at).Error
}

// MarkStatus updates the connection status after a push attempt.
func (r *StoreRepository) MarkStatus(ctx context.Context, id uuid.UUID, status models.StoreStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.ConnectedStore{}).
		Where("id = ?", id).
		Update("status", status).Error
}
