package controllers

import (
	"net/http"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	"github.com/phonedeck/phonedeck-backend/internal/stores"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

// GetStore returns a public store profile with its currently exposed table.
func GetStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := svc.GetStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// SellerUpdateStore updates the authenticated seller's own store profile.
func SellerUpdateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.UpdateStore(r.Context(), storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type updateStoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=1,max=32"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (p updateStoreRequest) toInput() stores.UpdateStoreInput {
	return stores.UpdateStoreInput{
		Name:        p.Name,
		Address:     p.Address,
		Phone:       p.Phone,
		Description: p.Description,
	}
}
