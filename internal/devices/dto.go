package devices

import (
	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// DeviceModelDTO is the device model payload returned to clients.
type DeviceModelDTO struct {
	ID                uuid.UUID `json:"id"`
	Manufacturer      string    `json:"manufacturer"`
	DeviceName        string    `json:"deviceName"`
	ModelName         string    `json:"modelName"`
	SupportedCarriers []string  `json:"supportedCarriers"`
	SupportedStorage  []string  `json:"supportedStorage"`
	ImageURL          *string   `json:"imageUrl,omitempty"`
}

func toDeviceModelDTO(m models.DeviceModel) DeviceModelDTO {
	return DeviceModelDTO{
		ID:                m.ID,
		Manufacturer:      m.Manufacturer,
		DeviceName:        m.DeviceName,
		ModelName:         m.ModelName,
		SupportedCarriers: append([]string(nil), m.SupportedCarriers...),
		SupportedStorage:  append([]string(nil), m.SupportedStorage...),
		ImageURL:          m.ImageURL,
	}
}
