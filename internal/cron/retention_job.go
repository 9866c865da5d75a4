package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

const defaultRetentionDays = 365

// RetentionJobParams configure the soft-delete purge job.
type RetentionJobParams struct {
	Logger        *logger.Logger
	Products      retentionRepo
	Tables        retentionRepo
	RetentionDays int
}

type retentionRepo interface {
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewRetentionJob builds the job that hard-deletes products and price tables
// whose soft-delete timestamp is past the retention window.
func NewRetentionJob(params RetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Tables == nil {
		return nil, fmt.Errorf("table repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	return &retentionJob{
		logg:      params.Logger,
		products:  params.Products,
		tables:    params.Tables,
		retention: retention,
		now:       time.Now,
	}, nil
}

type retentionJob struct {
	logg      *logger.Logger
	products  retentionRepo
	tables    retentionRepo
	retention int
	now       func() time.Time
}

func (j *retentionJob) Name() string { return "soft-delete-retention" }

// Run purges both tables independently; a failure in one does not stop the
// other, and all failures are reported together.
func (j *retentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)

	var errs error

	purged, err := j.products.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purge products: %w", err))
	} else {
		j.logg.Info(j.logg.WithField(ctx, "purged_products", purged), "product retention purge done")
	}

	purged, err = j.tables.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purge price tables: %w", err))
	} else {
		j.logg.Info(j.logg.WithField(ctx, "purged_tables", purged), "price table retention purge done")
	}

	return errs
}
