package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/metrics"
)

type fakeCandidateSource struct {
	candidates []Candidate
	err        error
	calls      int
	lastFilter Filters
}

func (f *fakeCandidateSource) FindCandidates(_ context.Context, filters Filters) ([]Candidate, error) {
	f.calls++
	f.lastFilter = filters
	return f.candidates, f.err
}

type fakeDeviceResolver struct {
	ids   []uuid.UUID
	err   error
	calls int
}

func (f *fakeDeviceResolver) ResolveModelIDs(context.Context, string) ([]uuid.UUID, error) {
	f.calls++
	return f.ids, f.err
}

func newTestService(repo *fakeCandidateSource, devices *fakeDeviceResolver, now time.Time) Service {
	svc := NewService(repo, devices, metrics.NewSearchMetrics(nil)).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSearchEmptyModelMatchShortCircuits(t *testing.T) {
	repo := &fakeCandidateSource{}
	devices := &fakeDeviceResolver{ids: nil}
	svc := newTestService(repo, devices, day("2026-06-15"))

	result, err := svc.Search(context.Background(), SearchInput{Filters: RawFilters{Model: "galaxy"}})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Items) != 0 || result.NextCursor != nil {
		t.Fatalf("expected empty page with null cursor, got %+v", result)
	}
	if repo.calls != 0 {
		t.Fatal("zero model matches must not query products")
	}
}

func TestSearchResolvedModelIDsConstrainTheQuery(t *testing.T) {
	modelID := uuid.New()
	repo := &fakeCandidateSource{}
	devices := &fakeDeviceResolver{ids: []uuid.UUID{modelID}}
	svc := newTestService(repo, devices, day("2026-06-15"))

	if _, err := svc.Search(context.Background(), SearchInput{Filters: RawFilters{Model: "galaxy"}}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one candidate query, got %d", repo.calls)
	}
	if len(repo.lastFilter.ModelIDs) != 1 || repo.lastFilter.ModelIDs[0] != modelID {
		t.Fatalf("expected resolved model ids on the filter, got %v", repo.lastFilter.ModelIDs)
	}
}

func TestSearchRunsFullPipeline(t *testing.T) {
	now := day("2026-06-15")
	store := uuid.New()
	model := uuid.New()

	oldTable := uuid.New()
	newTable := uuid.New()

	suppressed := newCandidate(withStore(store), withTable(oldTable, day("2026-06-01")),
		withOffer(model, "KT", "256GB"), withCreatedAt(day("2026-06-01")))
	staleDup := newCandidate(withStore(store), withTable(newTable, day("2026-06-05")),
		withOffer(model, "KT", "256GB"), withCreatedAt(day("2026-06-05")))
	fresh := newCandidate(withStore(store), withTable(newTable, day("2026-06-05")),
		withOffer(model, "KT", "256GB"), withCreatedAt(day("2026-06-06")))
	expired := newCandidate(withStore(uuid.New()), withExposure("2026-01-01", "2026-02-01"))

	repo := &fakeCandidateSource{candidates: []Candidate{suppressed, staleDup, fresh, expired}}
	svc := newTestService(repo, &fakeDeviceResolver{}, now)

	result, err := svc.Search(context.Background(), SearchInput{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected exactly one item after the pipeline, got %d", len(result.Items))
	}
	if result.Items[0].ID != fresh.ID {
		t.Fatal("expected the fresh row from the newest table to win")
	}
	if result.NextCursor != nil {
		t.Fatal("short page must not emit a cursor")
	}
}

func TestSearchDatastoreErrorSurfacesAsDependency(t *testing.T) {
	repo := &fakeCandidateSource{err: errors.New("connection refused")}
	svc := newTestService(repo, &fakeDeviceResolver{}, day("2026-06-15"))

	_, err := svc.Search(context.Background(), SearchInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected a dependency error, got %v", err)
	}
}

func TestSearchRejectsGarbageCursor(t *testing.T) {
	svc := newTestService(&fakeCandidateSource{}, &fakeDeviceResolver{}, day("2026-06-15"))

	_, err := svc.Search(context.Background(), SearchInput{Cursor: "yesterday"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}
