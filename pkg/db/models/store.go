package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a physical phone shop run by a seller.
type Store struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Address     string    `gorm:"column:address;not null"`
	Phone       *string   `gorm:"column:phone"`
	Description *string   `gorm:"column:description"`
	Rating      float64   `gorm:"column:rating;not null;default:0"`
	ReviewCount int       `gorm:"column:review_count;not null;default:0"`
	SellerID    uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index:stores_seller_id_idx"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
