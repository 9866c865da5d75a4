package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
)

// Store is the persistence surface for reservations. It is injected into the
// service so nothing reservation-related lives in process-global state.
type Store interface {
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int, cursor *time.Time) ([]models.Reservation, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor *time.Time) ([]models.Reservation, error)
}

// Repository is the gorm-backed Store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int, cursor *time.Time) ([]models.Reservation, error) {
	return r.list(ctx, "user_id = ?", userID, limit, cursor)
}

func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor *time.Time) ([]models.Reservation, error) {
	return r.list(ctx, "store_id = ?", storeID, limit, cursor)
}

func (r *Repository) list(ctx context.Context, clause string, id uuid.UUID, limit int, cursor *time.Time) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).Where(clause, id)
	if cursor != nil {
		q = q.Where("created_at < ?", *cursor)
	}
	var out []models.Reservation
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
