package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	reservationsvc "github.com/phonedeck/phonedeck-backend/internal/reservations"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// CreateReservation books a store visit for a product.
func CreateReservation(svc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reservation service unavailable"))
			return
		}

		userID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createReservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservation, err := svc.CreateReservation(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, reservation)
	}
}

// CancelReservation cancels one of the caller's reservations.
func CancelReservation(svc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservationID, err := pathUUID(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservation, err := svc.CancelReservation(r.Context(), userID, reservationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reservation)
	}
}

// ListUserReservations returns one page of the caller's reservations.
func ListUserReservations(svc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListForUser(r.Context(), userID, limit, r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SellerListReservations returns one page of reservations made at the
// seller's store.
func SellerListReservations(svc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListForStore(r.Context(), storeID, limit, r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SellerDecideReservation confirms, completes, or cancels a reservation at
// the seller's store.
func SellerDecideReservation(svc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservationID, err := pathUUID(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload decideReservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseReservationStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		reservation, err := svc.DecideReservation(r.Context(), storeID, reservationID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reservation)
	}
}

type createReservationRequest struct {
	ProductID    string  `json:"productId" validate:"required,uuid"`
	VisitDate    string  `json:"visitDate" validate:"required"`
	ContactPhone string  `json:"contactPhone" validate:"required,min=1,max=32"`
	Memo         *string `json:"memo,omitempty" validate:"omitempty,max=500"`
}

func (p createReservationRequest) toInput() (reservationsvc.CreateReservationInput, error) {
	productID, err := uuid.Parse(p.ProductID)
	if err != nil {
		return reservationsvc.CreateReservationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	visitDate, err := time.Parse(dayLayout, p.VisitDate)
	if err != nil {
		return reservationsvc.CreateReservationInput{}, pkgerrors.New(pkgerrors.CodeValidation, "visitDate must be YYYY-MM-DD")
	}
	return reservationsvc.CreateReservationInput{
		ProductID:    productID,
		VisitDate:    visitDate,
		ContactPhone: p.ContactPhone,
		Memo:         p.Memo,
	}, nil
}

type decideReservationRequest struct {
	Status string `json:"status" validate:"required"`
}
