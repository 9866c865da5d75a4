package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/enums"
)

// Reservation is a buyer's scheduled visit to a store for a specific offer.
type Reservation struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index:reservations_user_id_idx"`
	StoreID      uuid.UUID               `gorm:"column:store_id;type:uuid;not null;index:reservations_store_id_idx"`
	ProductID    uuid.UUID               `gorm:"column:product_id;type:uuid;not null"`
	Status       enums.ReservationStatus `gorm:"column:status;not null;default:'pending'"`
	VisitDate    time.Time               `gorm:"column:visit_date;type:date;not null"`
	ContactPhone string                  `gorm:"column:contact_phone;not null"`
	Memo         *string                 `gorm:"column:memo"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
