package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

type fakeRetentionRepo struct {
	purged     int64
	err        error
	called     int
	lastCutoff time.Time
}

func (f *fakeRetentionRepo) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	return f.purged, f.err
}

func newRetentionJob(t *testing.T, products, tables *fakeRetentionRepo) *retentionJob {
	t.Helper()
	jobIface, err := NewRetentionJob(RetentionJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Products: products,
		Tables:   tables,
	})
	if err != nil {
		t.Fatalf("NewRetentionJob: %v", err)
	}
	job, ok := jobIface.(*retentionJob)
	if !ok {
		t.Fatalf("expected retentionJob, got %T", jobIface)
	}
	return job
}

func TestRetentionJobUsesDefaultWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	products := &fakeRetentionRepo{}
	tables := &fakeRetentionRepo{}
	job := newRetentionJob(t, products, tables)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.Add(-defaultRetentionDays * 24 * time.Hour)
	if !products.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, products.lastCutoff)
	}
	if products.called != 1 || tables.called != 1 {
		t.Fatalf("expected both repos purged once, got %d and %d", products.called, tables.called)
	}
}

func TestRetentionJobPurgesTablesEvenWhenProductsFail(t *testing.T) {
	products := &fakeRetentionRepo{err: errors.New("boom")}
	tables := &fakeRetentionRepo{}
	job := newRetentionJob(t, products, tables)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected the product failure to surface")
	}
	if tables.called != 1 {
		t.Fatal("a product purge failure must not skip the table purge")
	}
}

func TestRetentionJobAggregatesBothFailures(t *testing.T) {
	products := &fakeRetentionRepo{err: errors.New("products down")}
	tables := &fakeRetentionRepo{err: errors.New("tables down")}
	job := newRetentionJob(t, products, tables)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "products down") || !strings.Contains(msg, "tables down") {
		t.Fatalf("expected both failures in %q", msg)
	}
}
