package enums

import (
	"fmt"
	"strings"
)

// Storage represents the device storage capacities carried by the catalog.
type Storage string

const (
	Storage128GB Storage = "128GB"
	Storage256GB Storage = "256GB"
	Storage512GB Storage = "512GB"
	Storage1TB   Storage = "1TB"
)

var validStorages = []Storage{
	Storage128GB,
	Storage256GB,
	Storage512GB,
	Storage1TB,
}

// String implements fmt.Stringer.
func (s Storage) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Storage.
func (s Storage) IsValid() bool {
	for _, candidate := range validStorages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStorage converts raw input (any case, e.g. "256gb") into a Storage.
func ParseStorage(value string) (Storage, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validStorages {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage %q", value)
}
