package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DeviceModel is a catalog entry for a phone model; it is shared across
// stores and never owned by one.
type DeviceModel struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Manufacturer      string         `gorm:"column:manufacturer;not null"`
	DeviceName        string         `gorm:"column:device_name;not null"`
	ModelName         string         `gorm:"column:model_name;not null;uniqueIndex:device_models_model_name_key"`
	SupportedCarriers pq.StringArray `gorm:"column:supported_carriers;type:text[];not null;default:ARRAY[]::text[]"`
	SupportedStorage  pq.StringArray `gorm:"column:supported_storage;type:text[];not null;default:ARRAY[]::text[]"`
	ImageURL          *string        `gorm:"column:image_url"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
