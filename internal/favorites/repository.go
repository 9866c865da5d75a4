package favorites

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// favoriteRow is a favorite entry joined to its product and store summary.
type favoriteRow struct {
	FavoriteID        uuid.UUID  `gorm:"column:favorite_id"`
	FavoriteCreatedAt time.Time  `gorm:"column:favorite_created_at"`
	ProductID         uuid.UUID  `gorm:"column:product_id"`
	Carrier           string     `gorm:"column:carrier"`
	Storage           string     `gorm:"column:storage"`
	Price             int        `gorm:"column:price"`
	ProductIsActive   bool       `gorm:"column:product_is_active"`
	ProductDeletedAt  *time.Time `gorm:"column:product_deleted_at"`
	StoreID           uuid.UUID  `gorm:"column:store_id"`
	StoreName         string     `gorm:"column:store_name"`
	DeviceName        string     `gorm:"column:device_name"`
	ModelName         string     `gorm:"column:model_name"`
	ImageURL          *string    `gorm:"column:image_url"`
}

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a favorite entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO favorite_items (user_id, product_id) VALUES (?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID).
		Error
}

// RemoveItem deletes the user-product favorite if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.FavoriteItem{}).
		Error
}

// ListItems returns one keyset page of favorites for a user, newest first.
// Products the owner has since soft-deleted are included but flagged, so the
// client can render them as unavailable.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, limit int, cursor *time.Time) ([]favoriteRow, error) {
	q := r.db.WithContext(ctx).
		Table("favorite_items fi").
		Select(`fi.id AS favorite_id, fi.created_at AS favorite_created_at,
p.id AS product_id, p.carrier, p.storage, p.price,
p.is_active AS product_is_active, p.deleted_at AS product_deleted_at,
s.id AS store_id, s.name AS store_name,
m.device_name, m.model_name, m.image_url`).
		Joins("JOIN products p ON p.id = fi.product_id").
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN device_models m ON m.id = p.device_model_id").
		Where("fi.user_id = ?", userID)

	if cursor != nil {
		q = q.Where("fi.created_at < ?", *cursor)
	}

	var rows []favoriteRow
	if err := q.Order("fi.created_at DESC, fi.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
