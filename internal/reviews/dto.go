package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// ReviewDTO is the review payload returned to clients.
type ReviewDTO struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"storeId"`
	UserID        uuid.UUID  `json:"userId"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	Rating        int        `json:"rating"`
	Content       string     `json:"content"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ReviewsPageDTO is one keyset page of reviews.
type ReviewsPageDTO struct {
	Items      []ReviewDTO `json:"items"`
	NextCursor *string     `json:"nextCursor"`
}

func toReviewDTO(r models.Review) ReviewDTO {
	return ReviewDTO{
		ID:            r.ID,
		StoreID:       r.StoreID,
		UserID:        r.UserID,
		ReservationID: r.ReservationID,
		Rating:        r.Rating,
		Content:       r.Content,
		CreatedAt:     r.CreatedAt,
	}
}
