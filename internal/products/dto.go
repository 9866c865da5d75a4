package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// ProductDTO is the seller-facing product payload.
type ProductDTO struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"storeId"`
	TableID        uuid.UUID  `json:"tableId"`
	DeviceModelID  uuid.UUID  `json:"deviceModelId"`
	Carrier        string     `json:"carrier"`
	Storage        string     `json:"storage"`
	Price          int        `json:"price"`
	Conditions     []string   `json:"conditions"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	DeletionReason *string    `json:"deletionReason,omitempty"`
}

func toProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID,
		StoreID:        p.StoreID,
		TableID:        p.TableID,
		DeviceModelID:  p.DeviceModelID,
		Carrier:        p.Carrier.String(),
		Storage:        p.Storage.String(),
		Price:          p.Price,
		Conditions:     append([]string(nil), p.Conditions...),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		DeletedAt:      p.DeletedAt,
		DeletionReason: p.DeletionReason,
	}
}
