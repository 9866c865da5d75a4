package tables

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// Repository persists price tables.
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

// Create inserts a price table row.
func (r *Repository) Create(ctx context.Context, table *models.PriceTable) (*models.PriceTable, error) {
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

// Save persists all fields of an existing price table.
func (r *Repository) Save(ctx context.Context, table *models.PriceTable) (*models.PriceTable, error) {
	if err := r.db.WithContext(ctx).Save(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

// FindByID loads one price table regardless of liveness.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PriceTable, error) {
	var table models.PriceTable
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ListByStore returns all of a store's tables, newest first, deleted rows
// included so sellers can restore them.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.PriceTable, error) {
	var out []models.PriceTable
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&out).
		Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks the table deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PriceTable{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":       false,
			"deleted_at":      at,
			"deletion_reason": reason,
		}).Error
}

// Restore clears the soft-delete bookkeeping.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PriceTable{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":       true,
			"deleted_at":      nil,
			"deletion_reason": nil,
		}).Error
}

// PurgeDeletedBefore hard-deletes tables soft-deleted before the cutoff.
// Tables that still have product rows pointing at them are skipped so the
// products.table_id foreign key cannot fail; such a table is picked up on a
// later run once its products are gone. Returns the number of rows removed.
func (r *Repository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM products WHERE products.table_id = price_tables.id)").
		Delete(&models.PriceTable{})
	return res.RowsAffected, res.Error
}
