package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// Repository persists product listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists all fields of an existing product.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads one product regardless of liveness; callers decide whether
// deleted rows are acceptable.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByTable returns all products in a table, newest first, deleted rows
// included so sellers can restore them.
func (r *Repository) ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("created_at DESC").
		Find(&out).
		Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks the product deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":       false,
			"deleted_at":      at,
			"deletion_reason": reason,
		}).Error
}

// Restore clears the soft-delete bookkeeping, making the row live again.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":       true,
			"deleted_at":      nil,
			"deletion_reason": nil,
		}).Error
}

// SoftDeleteByTable soft-deletes every live product in a table. Used when a
// price table is itself soft-deleted.
func (r *Repository) SoftDeleteByTable(ctx context.Context, tableID uuid.UUID, reason string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("table_id = ? AND deleted_at IS NULL", tableID).
		Updates(map[string]any{
			"is_active":       false,
			"deleted_at":      at,
			"deletion_reason": reason,
		}).Error
}

// PurgeDeletedBefore hard-deletes products soft-deleted before the cutoff.
// Returns the number of rows removed.
func (r *Repository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&models.Product{})
	return res.RowsAffected, res.Error
}
