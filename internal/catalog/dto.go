package catalog

import (
	"time"

	"github.com/google/uuid"
)

// StoreSummaryDTO carries the denormalized store fields shown on a search card.
type StoreSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
}

// DeviceModelSummaryDTO carries the denormalized device model fields shown on
// a search card.
type DeviceModelSummaryDTO struct {
	ID           uuid.UUID `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	DeviceName   string    `json:"deviceName"`
	ModelName    string    `json:"modelName"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
}

// SearchItem is one product listing in a search response.
type SearchItem struct {
	ID          uuid.UUID             `json:"id"`
	StoreID     uuid.UUID             `json:"storeId"`
	TableID     uuid.UUID             `json:"tableId"`
	Carrier     string                `json:"carrier"`
	Storage     string                `json:"storage"`
	Price       int                   `json:"price"`
	Conditions  []string              `json:"conditions"`
	CreatedAt   time.Time             `json:"createdAt"`
	Store       StoreSummaryDTO       `json:"store"`
	DeviceModel DeviceModelSummaryDTO `json:"deviceModel"`
}

// SearchResult is the paginated search response body.
type SearchResult struct {
	Items      []SearchItem `json:"items"`
	NextCursor *string      `json:"nextCursor"`
}

// toSearchItem is the single mapping from a pipeline candidate to the client
// facing shape; every search surface goes through it.
func toSearchItem(c Candidate) SearchItem {
	conditions := make([]string, len(c.Conditions))
	copy(conditions, c.Conditions)

	return SearchItem{
		ID:         c.ID,
		StoreID:    c.StoreID,
		TableID:    c.TableID,
		Carrier:    c.Carrier.String(),
		Storage:    c.Storage.String(),
		Price:      c.Price,
		Conditions: conditions,
		CreatedAt:  c.CreatedAt,
		Store: StoreSummaryDTO{
			ID:          c.StoreID,
			Name:        c.StoreName,
			Address:     c.StoreAddress,
			Rating:      c.StoreRating,
			ReviewCount: c.StoreReviewCount,
		},
		DeviceModel: DeviceModelSummaryDTO{
			ID:           c.DeviceModelID,
			Manufacturer: c.Manufacturer,
			DeviceName:   c.DeviceName,
			ModelName:    c.ModelName,
			ImageURL:     c.ImageURL,
		},
	}
}
