package tables

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

const dayLayout = "2006-01-02"

// PriceTableDTO is the seller-facing price table payload. Exposure dates are
// day-granular strings.
type PriceTableDTO struct {
	ID                uuid.UUID  `json:"id"`
	StoreID           uuid.UUID  `json:"storeId"`
	Name              string     `json:"name"`
	ExposureStartDate string     `json:"exposureStartDate"`
	ExposureEndDate   string     `json:"exposureEndDate"`
	IsActive          bool       `json:"isActive"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	DeletedAt         *time.Time `json:"deletedAt,omitempty"`
	DeletionReason    *string    `json:"deletionReason,omitempty"`
}

func toPriceTableDTO(t models.PriceTable) PriceTableDTO {
	return PriceTableDTO{
		ID:                t.ID,
		StoreID:           t.StoreID,
		Name:              t.Name,
		ExposureStartDate: t.ExposureStartDate.Format(dayLayout),
		ExposureEndDate:   t.ExposureEndDate.Format(dayLayout),
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		DeletedAt:         t.DeletedAt,
		DeletionReason:    t.DeletionReason,
	}
}
