package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phonedeck/phonedeck-backend/internal/catalog"
	"github.com/phonedeck/phonedeck-backend/pkg/config"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100}
}

type stubSearchService struct {
	gotInput catalog.SearchInput
	result   *catalog.SearchResult
	err      error
}

func (s *stubSearchService) Search(_ context.Context, input catalog.SearchInput) (*catalog.SearchResult, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &catalog.SearchResult{Items: []catalog.SearchItem{}}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCatalogSearchQueryMapping(t *testing.T) {
	stub := &stubSearchService{}
	handler := CatalogSearch(testCatalogConfig(), stub, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/catalog/search?carrier=kt&storage=256GB&minPrice=100000&maxPrice=900000&conditions=number_port,card_discount&signupType=mnp&model=galaxy&limit=30&cursor=2026-08-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := stub.gotInput
	if got.Filters.Carrier != "kt" || got.Filters.Storage != "256GB" {
		t.Fatalf("carrier/storage not forwarded: %+v", got.Filters)
	}
	if got.Filters.MinPrice == nil || *got.Filters.MinPrice != 100000 {
		t.Fatalf("minPrice not forwarded: %+v", got.Filters.MinPrice)
	}
	if got.Filters.MaxPrice == nil || *got.Filters.MaxPrice != 900000 {
		t.Fatalf("maxPrice not forwarded: %+v", got.Filters.MaxPrice)
	}
	if len(got.Filters.Conditions) != 2 {
		t.Fatalf("expected two condition tags, got %v", got.Filters.Conditions)
	}
	if got.Filters.SignupType != "mnp" || got.Filters.Model != "galaxy" {
		t.Fatalf("signupType/model not forwarded: %+v", got.Filters)
	}
	if got.Limit != 30 {
		t.Fatalf("expected limit 30, got %d", got.Limit)
	}
	if got.Cursor != "2026-08-01T00:00:00Z" {
		t.Fatalf("cursor not forwarded: %q", got.Cursor)
	}
}

func TestCatalogSearchDefaults(t *testing.T) {
	stub := &stubSearchService{}
	handler := CatalogSearch(testCatalogConfig(), stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty query, got %d", rec.Code)
	}
	if stub.gotInput.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", stub.gotInput.Limit)
	}
	if stub.gotInput.Filters.MinPrice != nil || stub.gotInput.Filters.MaxPrice != nil {
		t.Fatalf("expected nil price bounds for empty query")
	}

	var envelope struct {
		Data struct {
			Items      []json.RawMessage `json:"items"`
			NextCursor *string           `json:"nextCursor"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Items == nil {
		t.Fatalf("items must serialize as an empty array, not null")
	}
	if envelope.Data.NextCursor != nil {
		t.Fatalf("expected null nextCursor, got %v", *envelope.Data.NextCursor)
	}
}

func TestCatalogSearchUsesConfiguredPageBounds(t *testing.T) {
	stub := &stubSearchService{}
	cfg := config.CatalogConfig{DefaultPageSize: 15, MaxPageSize: 50}
	handler := CatalogSearch(cfg, stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.gotInput.Limit != 15 {
		t.Fatalf("expected configured default 15, got %d", stub.gotInput.Limit)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?limit=60", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 past the configured max, got %d", rec.Code)
	}
}

func TestCatalogSearchRejectsBadPrice(t *testing.T) {
	stub := &stubSearchService{}
	handler := CatalogSearch(testCatalogConfig(), stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?minPrice=cheap", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non numeric price, got %d", rec.Code)
	}
}
