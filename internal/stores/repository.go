package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// Repository persists store profiles.
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

// FindByID loads one store.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Save persists all fields of an existing store.
func (r *Repository) Save(ctx context.Context, store *models.Store) (*models.Store, error) {
	if err := r.db.WithContext(ctx).Save(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// CurrentTable returns the store's most recently created exposable price
// table for the given day, or gorm.ErrRecordNotFound when none qualifies.
// Equal creation times break toward the greater table id, matching the
// search pipeline's latest-table rule.
func (r *Repository) CurrentTable(ctx context.Context, storeID uuid.UUID, day string) (*models.PriceTable, error) {
	var table models.PriceTable
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("is_active = TRUE").
		Where("deleted_at IS NULL").
		Where("exposure_start_date <= ? AND exposure_end_date >= ?", day, day).
		Order("created_at DESC, id DESC").
		First(&table).
		Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// UpdateRatingAggregate sets the denormalized rating fields. Called from the
// review write path inside its transaction.
func (r *Repository) UpdateRatingAggregate(ctx context.Context, storeID uuid.UUID, rating float64, reviewCount int) error {
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", storeID).
		Updates(map[string]any{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}
