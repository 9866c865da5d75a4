package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/enums"
)

// Candidate is one live product row annotated with the owning price table,
// store, and device model data the later pipeline phases need.
type Candidate struct {
	ID            uuid.UUID      `gorm:"column:id"`
	StoreID       uuid.UUID      `gorm:"column:store_id"`
	TableID       uuid.UUID      `gorm:"column:table_id"`
	DeviceModelID uuid.UUID      `gorm:"column:device_model_id"`
	Carrier       enums.Carrier  `gorm:"column:carrier"`
	Storage       enums.Storage  `gorm:"column:storage"`
	Price         int            `gorm:"column:price"`
	Conditions    pq.StringArray `gorm:"column:conditions;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`

	TableCreatedAt    time.Time  `gorm:"column:table_created_at"`
	TableIsActive     bool       `gorm:"column:table_is_active"`
	TableDeletedAt    *time.Time `gorm:"column:table_deleted_at"`
	ExposureStartDate time.Time  `gorm:"column:exposure_start_date"`
	ExposureEndDate   time.Time  `gorm:"column:exposure_end_date"`

	StoreName        string  `gorm:"column:store_name"`
	StoreAddress     string  `gorm:"column:store_address"`
	StoreRating      float64 `gorm:"column:store_rating"`
	StoreReviewCount int     `gorm:"column:store_review_count"`

	Manufacturer string  `gorm:"column:manufacturer"`
	DeviceName   string  `gorm:"column:device_name"`
	ModelName    string  `gorm:"column:model_name"`
	ImageURL     *string `gorm:"column:image_url"`
}

const candidateColumns = `
p.id, p.store_id, p.table_id, p.device_model_id, p.carrier, p.storage,
p.price, p.conditions, p.created_at, p.updated_at,
t.created_at AS table_created_at, t.is_active AS table_is_active,
t.deleted_at AS table_deleted_at, t.exposure_start_date, t.exposure_end_date,
s.name AS store_name, s.address AS store_address, s.rating AS store_rating,
s.review_count AS store_review_count,
m.manufacturer, m.device_name, m.model_name, m.image_url`

// Repository loads search candidates from Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCandidates returns every live product satisfying the compiled
// predicates, annotated with table, store, and model data. Exposure windows,
// latest-table selection, and deduplication are applied by the caller.
func (r *Repository) FindCandidates(ctx context.Context, filters Filters) ([]Candidate, error) {
	q := r.db.WithContext(ctx).
		Table("products AS p").
		Select(candidateColumns).
		Joins("JOIN price_tables t ON t.id = p.table_id").
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN device_models m ON m.id = p.device_model_id").
		Where("p.is_active = TRUE").
		Where("p.deleted_at IS NULL")

	if filters.StoreID != nil {
		q = q.Where("p.store_id = ?", *filters.StoreID)
	}
	if filters.Carrier != nil {
		q = q.Where("p.carrier = ?", filters.Carrier.String())
	}
	if filters.Storage != nil {
		q = q.Where("p.storage = ?", filters.Storage.String())
	}
	if filters.MinPrice != nil {
		q = q.Where("p.price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		q = q.Where("p.price <= ?", *filters.MaxPrice)
	}
	if len(filters.Conditions) > 0 {
		q = q.Where("p.conditions @> ?", pq.Array(filters.Conditions))
	}
	if filters.HasModelQuery() {
		q = q.Where("p.device_model_id IN ?", filters.ModelIDs)
	}

	var candidates []Candidate
	if err := q.Order("p.created_at DESC, p.id DESC").Scan(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}
