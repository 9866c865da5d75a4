package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/api/middleware"
	reservationsvc "github.com/phonedeck/phonedeck-backend/internal/reservations"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
)

type stubReservationService struct {
	created     *reservationsvc.CreateReservationInput
	decidedTo   enums.ReservationStatus
	decideCalls int
}

func (s *stubReservationService) CreateReservation(_ context.Context, _ uuid.UUID, input reservationsvc.CreateReservationInput) (*reservationsvc.ReservationDTO, error) {
	s.created = &input
	return &reservationsvc.ReservationDTO{ID: uuid.New(), Status: string(enums.ReservationStatusPending)}, nil
}

func (s *stubReservationService) CancelReservation(_ context.Context, _, _ uuid.UUID) (*reservationsvc.ReservationDTO, error) {
	return &reservationsvc.ReservationDTO{}, nil
}

func (s *stubReservationService) ListForUser(_ context.Context, _ uuid.UUID, _ int, _ string) (*reservationsvc.ReservationsPageDTO, error) {
	return &reservationsvc.ReservationsPageDTO{Items: []reservationsvc.ReservationDTO{}}, nil
}

func (s *stubReservationService) ListForStore(_ context.Context, _ uuid.UUID, _ int, _ string) (*reservationsvc.ReservationsPageDTO, error) {
	return &reservationsvc.ReservationsPageDTO{Items: []reservationsvc.ReservationDTO{}}, nil
}

func (s *stubReservationService) DecideReservation(_ context.Context, _, _ uuid.UUID, status enums.ReservationStatus) (*reservationsvc.ReservationDTO, error) {
	s.decideCalls++
	s.decidedTo = status
	return &reservationsvc.ReservationDTO{Status: string(status)}, nil
}

func TestCreateReservation(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		stub := &stubReservationService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		CreateReservation(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user missing, got %d", rec.Code)
		}
	})

	t.Run("rejects past visit date format", func(t *testing.T) {
		stub := &stubReservationService{}
		body := `{"productId":"` + productID.String() + `","visitDate":"not-a-date","contactPhone":"010-1234-5678"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
		req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
		rec := httptest.NewRecorder()
		CreateReservation(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed visit date, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatalf("service must not be called for invalid payload")
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubReservationService{}
		body := `{"productId":"` + productID.String() + `","visitDate":"2026-09-15","contactPhone":"010-1234-5678","memo":"after 6pm"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
		req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
		rec := httptest.NewRecorder()
		CreateReservation(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatalf("expected CreateReservation to be invoked")
		}
		if stub.created.ProductID != productID {
			t.Fatalf("product id not forwarded")
		}
		if stub.created.VisitDate.Format("2006-01-02") != "2026-09-15" {
			t.Fatalf("visit date not parsed: %v", stub.created.VisitDate)
		}
	})
}

func TestSellerDecideReservation(t *testing.T) {
	logg := testLogger()
	storeID := uuid.New()
	reservationID := uuid.New()

	makeRequest := func(ctx context.Context, body string, stub *stubReservationService) *httptest.ResponseRecorder {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("reservationId", reservationID.String())
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/seller/reservations/"+reservationID.String(), strings.NewReader(body))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		SellerDecideReservation(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing store", func(t *testing.T) {
		stub := &stubReservationService{}
		rec := makeRequest(context.Background(), `{"status":"confirmed"}`, stub)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 when store missing, got %d", rec.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		stub := &stubReservationService{}
		ctx := middleware.WithStoreID(context.Background(), storeID.String())
		rec := makeRequest(ctx, `{"status":"approved"}`, stub)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
		}
		if stub.decideCalls != 0 {
			t.Fatalf("service must not be called for invalid status")
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubReservationService{}
		ctx := middleware.WithStoreID(context.Background(), storeID.String())
		rec := makeRequest(ctx, `{"status":"confirmed"}`, stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.decidedTo != enums.ReservationStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", stub.decidedTo)
		}
	})
}
