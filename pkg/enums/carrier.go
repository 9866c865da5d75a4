package enums

import (
	"fmt"
	"strings"
)

// Carrier represents the mobile network operators supported by the catalog.
type Carrier string

const (
	CarrierKT      Carrier = "KT"
	CarrierSKT     Carrier = "SKT"
	CarrierLGUPlus Carrier = "LG_U_PLUS"
)

var validCarriers = []Carrier{
	CarrierKT,
	CarrierSKT,
	CarrierLGUPlus,
}

// carrierAliases maps the short query-string spellings onto canonical values.
var carrierAliases = map[string]Carrier{
	"kt":        CarrierKT,
	"skt":       CarrierSKT,
	"lgu":       CarrierLGUPlus,
	"lg_u_plus": CarrierLGUPlus,
}

// String implements fmt.Stringer.
func (c Carrier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Carrier.
func (c Carrier) IsValid() bool {
	for _, candidate := range validCarriers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCarrier converts raw input (canonical or aliased, any case) into a Carrier.
func ParseCarrier(value string) (Carrier, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if carrier, ok := carrierAliases[normalized]; ok {
		return carrier, nil
	}
	for _, candidate := range validCarriers {
		if strings.EqualFold(string(candidate), normalized) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid carrier %q", value)
}
