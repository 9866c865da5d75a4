package devices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// Repository loads device model catalog entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ResolveModelIDs returns the ids of device models whose device name or
// model name contains the query, case-insensitively. An empty result is not
// an error; the search pipeline short-circuits on it.
func (r *Repository) ResolveModelIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	pattern := "%" + query + "%"
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("device_name ILIKE ? OR model_name ILIKE ?", pattern, pattern).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// List returns all device models ordered by manufacturer then device name.
func (r *Repository) List(ctx context.Context) ([]models.DeviceModel, error) {
	var out []models.DeviceModel
	err := r.db.WithContext(ctx).
		Order("manufacturer ASC, device_name ASC").
		Find(&out).
		Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID loads one device model.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeviceModel, error) {
	var model models.DeviceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &model, nil
}
