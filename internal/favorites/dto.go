package favorites

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteItemDTO is one saved product with its summary fields.
type FavoriteItemDTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	StoreID    uuid.UUID `json:"storeId"`
	StoreName  string    `json:"storeName"`
	DeviceName string    `json:"deviceName"`
	ModelName  string    `json:"modelName"`
	ImageURL   *string   `json:"imageUrl,omitempty"`
	Carrier    string    `json:"carrier"`
	Storage    string    `json:"storage"`
	Price      int       `json:"price"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FavoritesPageDTO is one keyset page of favorites.
type FavoritesPageDTO struct {
	Items      []FavoriteItemDTO `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

func toFavoriteItemDTO(row favoriteRow) FavoriteItemDTO {
	return FavoriteItemDTO{
		ID:         row.FavoriteID,
		ProductID:  row.ProductID,
		StoreID:    row.StoreID,
		StoreName:  row.StoreName,
		DeviceName: row.DeviceName,
		ModelName:  row.ModelName,
		ImageURL:   row.ImageURL,
		Carrier:    row.Carrier,
		Storage:    row.Storage,
		Price:      row.Price,
		Available:  row.ProductIsActive && row.ProductDeletedAt == nil,
		CreatedAt:  row.FavoriteCreatedAt,
	}
}
