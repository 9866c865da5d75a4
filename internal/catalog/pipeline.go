package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

const dayLayout = "2006-01-02"

// FilterExposable drops candidates whose owning price table is inactive, soft
// deleted, or whose exposure window does not bracket today. The comparison is
// at day granularity and inclusive at both ends. A window with start after
// end exposes nothing.
func FilterExposable(candidates []Candidate, today time.Time) []Candidate {
	day := today.Format(dayLayout)
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.TableIsActive || c.TableDeletedAt != nil {
			continue
		}
		start := c.ExposureStartDate.Format(dayLayout)
		end := c.ExposureEndDate.Format(dayLayout)
		if start <= day && day <= end {
			out = append(out, c)
		}
	}
	return out
}

// ResolveLatestTables keeps, per store, only the candidates belonging to the
// store's most recently created price table. Equal creation times break
// toward the greater table id so the choice is deterministic.
func ResolveLatestTables(candidates []Candidate) []Candidate {
	type tableRef struct {
		createdAt time.Time
		id        string
	}
	latest := map[string]tableRef{}

	for _, c := range candidates {
		store := c.StoreID.String()
		ref := tableRef{createdAt: c.TableCreatedAt, id: c.TableID.String()}
		current, ok := latest[store]
		if !ok {
			latest[store] = ref
			continue
		}
		if ref.createdAt.After(current.createdAt) {
			latest[store] = ref
			continue
		}
		if ref.createdAt.Equal(current.createdAt) && ref.id > current.id {
			latest[store] = ref
		}
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if latest[c.StoreID.String()].id == c.TableID.String() {
			out = append(out, c)
		}
	}
	return out
}

// dedupKey identifies a logical offer regardless of historical re-saves.
func dedupKey(c Candidate) string {
	tags := make([]string, len(c.Conditions))
	copy(tags, c.Conditions)
	sort.Strings(tags)
	return strings.Join([]string{
		c.DeviceModelID.String(),
		c.Carrier.String(),
		c.Storage.String(),
		strings.Join(tags, ","),
	}, "|")
}

// Deduplicate collapses candidates that describe the same logical offer,
// keeping the most recently created row. Ties on created_at break toward the
// greater product id. The fold is idempotent and order independent.
func Deduplicate(candidates []Candidate) []Candidate {
	byKey := map[string]Candidate{}
	order := make([]string, 0, len(candidates))

	for _, c := range candidates {
		key := dedupKey(c)
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = c
			order = append(order, key)
			continue
		}
		if c.CreatedAt.After(existing.CreatedAt) {
			byKey[key] = c
			continue
		}
		if c.CreatedAt.Equal(existing.CreatedAt) && c.ID.String() > existing.ID.String() {
			byKey[key] = c
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

// Paginate orders candidates by created_at descending, applies the keyset
// cursor, and slices one page. The next cursor is the created_at of the last
// returned item, emitted only when the page came back full.
func Paginate(candidates []Candidate, limit int, cursor *time.Time) ([]Candidate, *string) {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() > sorted[j].ID.String()
	})

	page := make([]Candidate, 0, limit)
	for _, c := range sorted {
		if cursor != nil && !c.CreatedAt.Before(*cursor) {
			continue
		}
		page = append(page, c)
		if len(page) == limit {
			break
		}
	}

	var next *string
	if len(page) == limit && limit > 0 {
		formatted := pagination.FormatCursor(page[len(page)-1].CreatedAt)
		next = &formatted
	}
	return page, next
}
