package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceTable is a dated, versioned bundle of product listings a store
// publishes. A store accumulates tables over time; search must only surface
// the newest exposable one.
type PriceTable struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID  `gorm:"column:store_id;type:uuid;not null;index:price_tables_store_id_idx"`
	Name              string     `gorm:"column:name;not null"`
	ExposureStartDate time.Time  `gorm:"column:exposure_start_date;type:date;not null"`
	ExposureEndDate   time.Time  `gorm:"column:exposure_end_date;type:date;not null"`
	IsActive          bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         *time.Time `gorm:"column:deleted_at;index:price_tables_deleted_at_idx"`
	DeletionReason    *string    `gorm:"column:deletion_reason"`
}
