package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

func TestCompileFiltersEmptyBagMeansNoConstraints(t *testing.T) {
	filters, err := CompileFilters(RawFilters{})
	if err != nil {
		t.Fatalf("empty criteria must compile: %v", err)
	}
	if filters.StoreID != nil || filters.Carrier != nil || filters.Storage != nil ||
		filters.MinPrice != nil || filters.MaxPrice != nil ||
		len(filters.Conditions) != 0 || filters.HasModelQuery() {
		t.Fatalf("expected no constraints, got %+v", filters)
	}
}

func TestCompileFiltersNormalizesAliases(t *testing.T) {
	cases := []struct {
		carrier     string
		storage     string
		wantCarrier enums.Carrier
		wantStorage enums.Storage
	}{
		{"kt", "128gb", enums.CarrierKT, enums.Storage128GB},
		{"SKT", "256GB", enums.CarrierSKT, enums.Storage256GB},
		{"lgu", "1tb", enums.CarrierLGUPlus, enums.Storage1TB},
		{"LG_U_PLUS", "512gb", enums.CarrierLGUPlus, enums.Storage512GB},
	}

	for _, tc := range cases {
		filters, err := CompileFilters(RawFilters{Carrier: tc.carrier, Storage: tc.storage})
		if err != nil {
			t.Fatalf("compile(%q, %q) failed: %v", tc.carrier, tc.storage, err)
		}
		if *filters.Carrier != tc.wantCarrier {
			t.Fatalf("carrier %q: expected %s, got %s", tc.carrier, tc.wantCarrier, *filters.Carrier)
		}
		if *filters.Storage != tc.wantStorage {
			t.Fatalf("storage %q: expected %s, got %s", tc.storage, tc.wantStorage, *filters.Storage)
		}
	}
}

func TestCompileFiltersRejectsUnknownCarrier(t *testing.T) {
	_, err := CompileFilters(RawFilters{Carrier: "verizon"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCompileFiltersRejectsInvertedPriceRange(t *testing.T) {
	lo, hi := 500000, 300000
	_, err := CompileFilters(RawFilters{MinPrice: &lo, MaxPrice: &hi})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCompileFiltersMergesSignupTypeIntoConditions(t *testing.T) {
	filters, err := CompileFilters(RawFilters{
		SignupType: "number_port",
		Conditions: []string{"card_discount", " number_port ", ""},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(filters.Conditions) != 2 {
		t.Fatalf("expected 2 deduplicated tags, got %v", filters.Conditions)
	}
	if filters.Conditions[0] != "card_discount" || filters.Conditions[1] != "number_port" {
		t.Fatalf("expected sorted tags, got %v", filters.Conditions)
	}
}

func TestCompileFiltersParsesStoreID(t *testing.T) {
	id := uuid.New()
	filters, err := CompileFilters(RawFilters{StoreID: id.String()})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if filters.StoreID == nil || *filters.StoreID != id {
		t.Fatalf("expected store id %s, got %v", id, filters.StoreID)
	}

	if _, err := CompileFilters(RawFilters{StoreID: "not-a-uuid"}); err == nil {
		t.Fatal("expected malformed store id to be rejected")
	}
}
