package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

// RawFilters is the unvalidated bag of search criteria as received from the
// HTTP layer. Every field is optional; absence means no constraint.
type RawFilters struct {
	StoreID    string
	Carrier    string
	Storage    string
	MinPrice   *int
	MaxPrice   *int
	SignupType string
	Conditions []string
	Model      string
}

// Filters is the normalized predicate set produced by CompileFilters.
type Filters struct {
	StoreID    *uuid.UUID
	Carrier    *enums.Carrier
	Storage    *enums.Storage
	MinPrice   *int
	MaxPrice   *int
	Conditions []string
	ModelQuery string
	ModelIDs   []uuid.UUID
}

// HasModelQuery reports whether a device model substring was supplied and a
// model id lookup must gate the product query.
func (f Filters) HasModelQuery() bool {
	return f.ModelQuery != ""
}

// CompileFilters normalizes raw criteria into a predicate set. Missing fields
// compile to no constraint; present fields must parse. Carrier and storage
// accept the short aliases buyers type as well as canonical enum values.
func CompileFilters(raw RawFilters) (Filters, error) {
	var out Filters

	if trimmed := strings.TrimSpace(raw.StoreID); trimmed != "" {
		id, err := uuid.Parse(trimmed)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "storeId must be a valid uuid").WithDetails(map[string]any{"field": "storeId"})
		}
		out.StoreID = &id
	}

	if trimmed := strings.TrimSpace(raw.Carrier); trimmed != "" {
		carrier, err := enums.ParseCarrier(trimmed)
		if err != nil {
			return Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown carrier").WithDetails(map[string]any{"field": "carrier"})
		}
		out.Carrier = &carrier
	}

	if trimmed := strings.TrimSpace(raw.Storage); trimmed != "" {
		storage, err := enums.ParseStorage(trimmed)
		if err != nil {
			return Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown storage").WithDetails(map[string]any{"field": "storage"})
		}
		out.Storage = &storage
	}

	if raw.MinPrice != nil {
		if *raw.MinPrice < 0 {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not be negative").WithDetails(map[string]any{"field": "minPrice"})
		}
		out.MinPrice = raw.MinPrice
	}
	if raw.MaxPrice != nil {
		if *raw.MaxPrice < 0 {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must not be negative").WithDetails(map[string]any{"field": "maxPrice"})
		}
		out.MaxPrice = raw.MaxPrice
	}
	if out.MinPrice != nil && out.MaxPrice != nil && *out.MinPrice > *out.MaxPrice {
		return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice")
	}

	out.Conditions = normalizeConditions(raw.SignupType, raw.Conditions)
	out.ModelQuery = strings.TrimSpace(raw.Model)

	return out, nil
}

// normalizeConditions merges the signup type tag with the condition list,
// trimming blanks and dropping duplicates. All surviving tags are required on
// a matching product.
func normalizeConditions(signupType string, conditions []string) []string {
	seen := map[string]struct{}{}
	var out []string

	add := func(tag string) {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return
		}
		if _, ok := seen[trimmed]; ok {
			return
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	add(signupType)
	for _, tag := range conditions {
		add(tag)
	}

	sort.Strings(out)
	return out
}
