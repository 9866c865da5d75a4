package pagination

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any cursor query can request.
	MaxLimit = 100
)

// Params holds cursor pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Cursor string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseCursor decodes a created_at keyset cursor. An empty cursor means the
// first page. The cursor is the RFC 3339 timestamp of the last item on the
// previous page; items strictly older than it belong to the next page.
func ParseCursor(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, trimmed); err != nil {
			return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
		}
	}
	return &t, nil
}

// FormatCursor renders a created_at value as the wire cursor.
func FormatCursor(createdAt time.Time) string {
	return createdAt.UTC().Format(time.RFC3339Nano)
}
