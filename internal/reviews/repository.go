package reviews

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// Repository persists reviews.
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

// Create inserts a review row. A duplicate reservation id fails on the
// unique index.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// RatingAggregate returns the average rating and count for a store.
func (r *Repository) RatingAggregate(ctx context.Context, storeID uuid.UUID) (float64, int, error) {
	var agg struct {
		Avg   float64 `gorm:"column:avg"`
		Count int     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&agg).
		Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

// ListByStore returns one keyset page of a store's reviews, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor *time.Time) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if cursor != nil {
		q = q.Where("created_at < ?", *cursor)
	}
	var out []models.Review
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
