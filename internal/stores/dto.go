package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// StoreDTO is the public store profile payload.
type StoreDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone,omitempty"`
	Description *string   `json:"description,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableSummaryDTO is the exposed price table attached to a store detail.
type TableSummaryDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	ExposureStartDate string    `json:"exposureStartDate"`
	ExposureEndDate   string    `json:"exposureEndDate"`
	CreatedAt         time.Time `json:"createdAt"`
}

// StoreDetailDTO is the store profile with its currently exposed table.
type StoreDetailDTO struct {
	StoreDTO
	CurrentTable *TableSummaryDTO `json:"currentTable,omitempty"`
}

func toStoreDTO(s models.Store) StoreDTO {
	return StoreDTO{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       s.Phone,
		Description: s.Description,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
	}
}

func toTableSummaryDTO(t models.PriceTable) TableSummaryDTO {
	return TableSummaryDTO{
		ID:                t.ID,
		Name:              t.Name,
		ExposureStartDate: t.ExposureStartDate.Format("2006-01-02"),
		ExposureEndDate:   t.ExposureEndDate.Format("2006-01-02"),
		CreatedAt:         t.CreatedAt,
	}
}
