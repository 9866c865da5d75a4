package controllers

import (
	"net/http"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	"github.com/phonedeck/phonedeck-backend/internal/catalog"
	"github.com/phonedeck/phonedeck-backend/pkg/config"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// CatalogSearch is the public product search endpoint. All criteria are
// optional query parameters; an empty query returns every live listing.
// Page size bounds come from the catalog config.
func CatalogSearch(cfg config.CatalogConfig, svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	defaultLimit := cfg.DefaultPageSize
	if defaultLimit <= 0 {
		defaultLimit = pagination.DefaultLimit
	}
	maxLimit := cfg.MaxPageSize
	if maxLimit <= 0 {
		maxLimit = pagination.MaxLimit
	}

	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		minPrice, err := optionalQueryInt(r, "minPrice")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := optionalQueryInt(r, "maxPrice")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		input := catalog.SearchInput{
			Filters: catalog.RawFilters{
				StoreID:    query.Get("storeId"),
				Carrier:    query.Get("carrier"),
				Storage:    query.Get("storage"),
				MinPrice:   minPrice,
				MaxPrice:   maxPrice,
				SignupType: query.Get("signupType"),
				Conditions: validators.ParseQueryCSV(r, "conditions"),
				Model:      query.Get("model"),
			},
			Limit:  limit,
			Cursor: query.Get("cursor"),
		}

		result, err := svc.Search(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
