package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	reviewsvc "github.com/phonedeck/phonedeck-backend/internal/reviews"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// CreateReview posts a review for a store after a completed visit.
func CreateReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		userID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.CreateReview(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ListStoreReviews returns one page of reviews for a store, newest first.
func ListStoreReviews(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListByStore(r.Context(), storeID, limit, r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

type createReviewRequest struct {
	StoreID       string  `json:"storeId" validate:"required,uuid"`
	ReservationID *string `json:"reservationId,omitempty" validate:"omitempty,uuid"`
	Rating        int     `json:"rating" validate:"required,min=1,max=5"`
	Content       string  `json:"content" validate:"required,min=1,max=2000"`
}

func (p createReviewRequest) toInput() (reviewsvc.CreateReviewInput, error) {
	storeID, err := uuid.Parse(p.StoreID)
	if err != nil {
		return reviewsvc.CreateReviewInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	input := reviewsvc.CreateReviewInput{
		StoreID: storeID,
		Rating:  p.Rating,
		Content: p.Content,
	}
	if p.ReservationID != nil {
		reservationID, err := uuid.Parse(*p.ReservationID)
		if err != nil {
			return reviewsvc.CreateReviewInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reservation id")
		}
		input.ReservationID = &reservationID
	}
	return input, nil
}
