package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/phonedeck/phonedeck-backend/pkg/enums"
)

// Product is one device/carrier/storage offer inside a price table.
// A product is live iff IsActive and DeletedAt IS NULL.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID        uuid.UUID      `gorm:"column:store_id;type:uuid;not null;index:products_store_id_idx"`
	TableID        uuid.UUID      `gorm:"column:table_id;type:uuid;not null;index:products_table_id_idx"`
	DeviceModelID  uuid.UUID      `gorm:"column:device_model_id;type:uuid;not null;index:products_device_model_id_idx"`
	Carrier        enums.Carrier  `gorm:"column:carrier;not null"`
	Storage        enums.Storage  `gorm:"column:storage;not null"`
	Price          int            `gorm:"column:price;not null"`
	Conditions     pq.StringArray `gorm:"column:conditions;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      *time.Time     `gorm:"column:deleted_at;index:products_deleted_at_idx"`
	DeletionReason *string        `gorm:"column:deletion_reason"`
}

// IsLive reports whether the product is eligible for search.
func (p Product) IsLive() bool {
	return p.IsActive && p.DeletedAt == nil
}
