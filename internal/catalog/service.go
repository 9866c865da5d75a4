package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/metrics"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// Service exposes the public catalog search.
type Service interface {
	Search(ctx context.Context, input SearchInput) (*SearchResult, error)
}

// SearchInput is the full request to one search invocation.
type SearchInput struct {
	Filters RawFilters
	Limit   int
	Cursor  string
}

type candidateSource interface {
	FindCandidates(ctx context.Context, filters Filters) ([]Candidate, error)
}

type deviceResolver interface {
	ResolveModelIDs(ctx context.Context, query string) ([]uuid.UUID, error)
}

type service struct {
	repo    candidateSource
	devices deviceResolver
	metrics *metrics.SearchMetrics
	now     func() time.Time
}

// NewService wires the search pipeline against the candidate repository and
// the device model resolver.
func NewService(repo candidateSource, devices deviceResolver, searchMetrics *metrics.SearchMetrics) Service {
	return &service{
		repo:    repo,
		devices: devices,
		metrics: searchMetrics,
		now:     time.Now,
	}
}

// Search runs the full pipeline: compile filters, select live candidates,
// drop unexposed tables, keep each store's newest table, collapse duplicate
// offers, and slice one keyset page.
func (s *service) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	start := s.now()

	result, err := s.search(ctx, input)

	duration := s.now().Sub(start)
	if err != nil {
		s.metrics.ObserveSearch("error", duration, 0)
		return nil, err
	}
	s.metrics.ObserveSearch("ok", duration, len(result.Items))
	return result, nil
}

func (s *service) search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	filters, err := CompileFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(input.Limit)
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cursor must be an ISO-8601 timestamp").WithDetails(map[string]any{"field": "cursor"})
	}

	if filters.HasModelQuery() {
		ids, err := s.devices.ResolveModelIDs(ctx, filters.ModelQuery)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve device models")
		}
		if len(ids) == 0 {
			s.metrics.IncModelShortCircuit()
			return emptyResult(), nil
		}
		filters.ModelIDs = ids
	}

	candidates, err := s.repo.FindCandidates(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "select candidates")
	}

	candidates = FilterExposable(candidates, s.now())
	candidates = ResolveLatestTables(candidates)
	candidates = Deduplicate(candidates)

	page, next := Paginate(candidates, limit, cursor)

	items := make([]SearchItem, 0, len(page))
	for _, c := range page {
		items = append(items, toSearchItem(c))
	}

	return &SearchResult{Items: items, NextCursor: next}, nil
}

func emptyResult() *SearchResult {
	return &SearchResult{Items: []SearchItem{}, NextCursor: nil}
}
