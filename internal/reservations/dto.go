package reservations

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

// ReservationDTO is the reservation payload returned to buyers and sellers.
type ReservationDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	StoreID      uuid.UUID `json:"storeId"`
	ProductID    uuid.UUID `json:"productId"`
	Status       string    `json:"status"`
	VisitDate    string    `json:"visitDate"`
	ContactPhone string    `json:"contactPhone"`
	Memo         *string   `json:"memo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReservationsPageDTO is one keyset page of reservations.
type ReservationsPageDTO struct {
	Items      []ReservationDTO `json:"items"`
	NextCursor *string          `json:"nextCursor"`
}

func toReservationDTO(r models.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		StoreID:      r.StoreID,
		ProductID:    r.ProductID,
		Status:       r.Status.String(),
		VisitDate:    r.VisitDate.Format("2006-01-02"),
		ContactPhone: r.ContactPhone,
		Memo:         r.Memo,
		CreatedAt:    r.CreatedAt,
	}
}
