package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating of a store, optionally tied to a completed
// reservation. The store's rating/review_count aggregates are maintained in
// the same transaction that inserts the row.
type Review struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID  `gorm:"column:store_id;type:uuid;not null;index:reviews_store_id_idx"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	ReservationID *uuid.UUID `gorm:"column:reservation_id;type:uuid;uniqueIndex:reviews_reservation_id_key"`
	Rating        int        `gorm:"column:rating;not null"`
	Content       string     `gorm:"column:content;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
