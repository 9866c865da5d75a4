package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// Service exposes reservation flows for buyers and sellers.
type Service interface {
	CreateReservation(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error)
	CancelReservation(ctx context.Context, userID, reservationID uuid.UUID) (*ReservationDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*ReservationsPageDTO, error)
	ListForStore(ctx context.Context, storeID uuid.UUID, limit int, cursor string) (*ReservationsPageDTO, error)
	DecideReservation(ctx context.Context, storeID, reservationID uuid.UUID, status enums.ReservationStatus) (*ReservationDTO, error)
}

// CreateReservationInput holds the validated payload to book a store visit.
type CreateReservationInput struct {
	ProductID    uuid.UUID
	VisitDate    time.Time
	ContactPhone string
	Memo         *string
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	store    Store
	products productReader
	now      func() time.Time
}

// NewService wires the reservation flows against an injected Store.
func NewService(store Store, products productReader) Service {
	return &service{store: store, products: products, now: time.Now}
}

// CreateReservation books a visit for a live product. The store is derived
// from the product, never taken from the client.
func (s *service) CreateReservation(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error) {
	if input.ContactPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact phone is required")
	}
	if input.VisitDate.Format("2006-01-02") < s.now().Format("2006-01-02") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visit date must not be in the past")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsLive() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is no longer available")
	}

	reservation := &models.Reservation{
		UserID:       userID,
		StoreID:      product.StoreID,
		ProductID:    product.ID,
		Status:       enums.ReservationStatusPending,
		VisitDate:    input.VisitDate,
		ContactPhone: input.ContactPhone,
		Memo:         input.Memo,
	}

	created, err := s.store.Create(ctx, reservation)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reservation")
	}
	dto := toReservationDTO(*created)
	return &dto, nil
}

// CancelReservation lets the booking buyer cancel while the reservation is
// still pending or confirmed.
func (s *service) CancelReservation(ctx context.Context, userID, reservationID uuid.UUID) (*ReservationDTO, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reservation belongs to another user")
	}
	return s.transition(ctx, reservation, enums.ReservationStatusCanceled)
}

// DecideReservation lets the store confirm, complete, or cancel a booking.
func (s *service) DecideReservation(ctx context.Context, storeID, reservationID uuid.UUID, status enums.ReservationStatus) (*ReservationDTO, error) {
	switch status {
	case enums.ReservationStatusConfirmed, enums.ReservationStatusCompleted, enums.ReservationStatusCanceled:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be confirmed, completed, or canceled")
	}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reservation belongs to another store")
	}
	return s.transition(ctx, reservation, status)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*ReservationsPageDTO, error) {
	return s.listPage(ctx, limit, cursor, func(ctx context.Context, limit int, parsed *time.Time) ([]models.Reservation, error) {
		return s.store.ListByUser(ctx, userID, limit, parsed)
	})
}

func (s *service) ListForStore(ctx context.Context, storeID uuid.UUID, limit int, cursor string) (*ReservationsPageDTO, error) {
	return s.listPage(ctx, limit, cursor, func(ctx context.Context, limit int, parsed *time.Time) ([]models.Reservation, error) {
		return s.store.ListByStore(ctx, storeID, limit, parsed)
	})
}

func (s *service) listPage(ctx context.Context, limit int, cursor string, fetch func(context.Context, int, *time.Time) ([]models.Reservation, error)) (*ReservationsPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	parsed, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cursor must be an ISO-8601 timestamp")
	}

	rows, err := fetch(ctx, normalized, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reservations")
	}

	page := &ReservationsPageDTO{Items: make([]ReservationDTO, 0, len(rows))}
	for _, row := range rows {
		page.Items = append(page.Items, toReservationDTO(row))
	}
	if len(rows) == normalized && normalized > 0 {
		next := pagination.FormatCursor(rows[len(rows)-1].CreatedAt)
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) findReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservation")
	}
	return reservation, nil
}

func (s *service) transition(ctx context.Context, reservation *models.Reservation, to enums.ReservationStatus) (*ReservationDTO, error) {
	if !reservation.Status.CanTransitionTo(to) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "reservation cannot move to "+to.String()).
			WithDetails(map[string]any{"from": reservation.Status.String(), "to": to.String()})
	}
	if err := s.store.UpdateStatus(ctx, reservation.ID, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reservation status")
	}
	reservation.Status = to
	dto := toReservationDTO(*reservation)
	return &dto, nil
}
