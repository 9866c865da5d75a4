package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

type memReservationStore struct {
	reservations map[uuid.UUID]*models.Reservation
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{reservations: map[uuid.UUID]*models.Reservation{}}
}

func (m *memReservationStore) Create(_ context.Context, r *models.Reservation) (*models.Reservation, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	cp := *r
	m.reservations[r.ID] = &cp
	return r, nil
}

func (m *memReservationStore) FindByID(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReservationStore) UpdateStatus(_ context.Context, id uuid.UUID, status enums.ReservationStatus) error {
	m.reservations[id].Status = status
	return nil
}

func (m *memReservationStore) ListByUser(_ context.Context, userID uuid.UUID, limit int, _ *time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.UserID == userID && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReservationStore) ListByStore(_ context.Context, storeID uuid.UUID, limit int, _ *time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.StoreID == storeID && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

type liveProductReader struct {
	product *models.Product
}

func (r *liveProductReader) FindByID(context.Context, uuid.UUID) (*models.Product, error) {
	if r.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.product, nil
}

func futureDate() time.Time {
	return time.Now().AddDate(0, 0, 7)
}

func TestCreateReservationDerivesStoreFromProduct(t *testing.T) {
	storeID := uuid.New()
	product := &models.Product{ID: uuid.New(), StoreID: storeID, IsActive: true}
	store := newMemReservationStore()
	svc := NewService(store, &liveProductReader{product: product})

	created, err := svc.CreateReservation(context.Background(), uuid.New(), CreateReservationInput{
		ProductID:    product.ID,
		VisitDate:    futureDate(),
		ContactPhone: "010-1234-5678",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.StoreID != storeID {
		t.Fatalf("expected store %s from the product, got %s", storeID, created.StoreID)
	}
	if created.Status != "pending" {
		t.Fatalf("new reservations must start pending, got %s", created.Status)
	}
}

func TestCreateReservationRejectsDeadProduct(t *testing.T) {
	deletedAt := time.Now()
	product := &models.Product{ID: uuid.New(), StoreID: uuid.New(), IsActive: false, DeletedAt: &deletedAt}
	svc := NewService(newMemReservationStore(), &liveProductReader{product: product})

	_, err := svc.CreateReservation(context.Background(), uuid.New(), CreateReservationInput{
		ProductID:    product.ID,
		VisitDate:    futureDate(),
		ContactPhone: "010-1234-5678",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected a state conflict, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	storeID := uuid.New()
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), StoreID: storeID, IsActive: true}
	store := newMemReservationStore()
	svc := NewService(store, &liveProductReader{product: product})

	created, err := svc.CreateReservation(context.Background(), userID, CreateReservationInput{
		ProductID:    product.ID,
		VisitDate:    futureDate(),
		ContactPhone: "010-1234-5678",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	confirmed, err := svc.DecideReservation(context.Background(), storeID, created.ID, enums.ReservationStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != "confirmed" {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	completed, err := svc.DecideReservation(context.Background(), storeID, created.ID, enums.ReservationStatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != "completed" {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	_, err = svc.CancelReservation(context.Background(), userID, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("completed reservations must not cancel, got %v", err)
	}
}

func TestCancelRequiresOwnership(t *testing.T) {
	storeID := uuid.New()
	product := &models.Product{ID: uuid.New(), StoreID: storeID, IsActive: true}
	store := newMemReservationStore()
	svc := NewService(store, &liveProductReader{product: product})

	created, err := svc.CreateReservation(context.Background(), uuid.New(), CreateReservationInput{
		ProductID:    product.ID,
		VisitDate:    futureDate(),
		ContactPhone: "010-1234-5678",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.CancelReservation(context.Background(), uuid.New(), created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for another user's reservation, got %v", err)
	}

	_, err = svc.DecideReservation(context.Background(), uuid.New(), created.ID, enums.ReservationStatusConfirmed)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for another store's reservation, got %v", err)
	}
}
