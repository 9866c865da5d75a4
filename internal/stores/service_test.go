package stores

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

type fakeStoreRepo struct {
	store        *models.Store
	currentTable *models.PriceTable
	saved        *models.Store
}

func (f *fakeStoreRepo) FindByID(context.Context, uuid.UUID) (*models.Store, error) {
	if f.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.store
	return &cp, nil
}

func (f *fakeStoreRepo) Save(_ context.Context, store *models.Store) (*models.Store, error) {
	cp := *store
	f.saved = &cp
	return store, nil
}

func (f *fakeStoreRepo) CurrentTable(context.Context, uuid.UUID, string) (*models.PriceTable, error) {
	if f.currentTable == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.currentTable, nil
}

func TestGetStoreIncludesCurrentTable(t *testing.T) {
	storeID := uuid.New()
	start, _ := time.Parse("2006-01-02", "2026-01-01")
	end, _ := time.Parse("2006-01-02", "2026-12-31")
	repo := &fakeStoreRepo{
		store: &models.Store{ID: storeID, Name: "Gangnam Mobile", Address: "Seoul"},
		currentTable: &models.PriceTable{
			ID:                uuid.New(),
			StoreID:           storeID,
			Name:              "summer",
			ExposureStartDate: start,
			ExposureEndDate:   end,
		},
	}
	svc := NewService(repo)

	detail, err := svc.GetStore(context.Background(), storeID)
	if err != nil {
		t.Fatalf("get store failed: %v", err)
	}
	if detail.CurrentTable == nil {
		t.Fatal("expected the current table summary")
	}
	if detail.CurrentTable.ExposureStartDate != "2026-01-01" {
		t.Fatalf("expected day-granular dates, got %s", detail.CurrentTable.ExposureStartDate)
	}
}

func TestGetStoreWithoutExposableTable(t *testing.T) {
	repo := &fakeStoreRepo{store: &models.Store{ID: uuid.New(), Name: "Dormant Shop"}}
	svc := NewService(repo)

	detail, err := svc.GetStore(context.Background(), repo.store.ID)
	if err != nil {
		t.Fatalf("get store failed: %v", err)
	}
	if detail.CurrentTable != nil {
		t.Fatal("a store with no exposable table must not carry a summary")
	}
}

func TestGetStoreNotFound(t *testing.T) {
	svc := NewService(&fakeStoreRepo{})

	_, err := svc.GetStore(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStoreAppliesPartialChanges(t *testing.T) {
	repo := &fakeStoreRepo{store: &models.Store{ID: uuid.New(), Name: "Old Name", Address: "Old Address"}}
	svc := NewService(repo)

	name := "New Name"
	updated, err := svc.UpdateStore(context.Background(), repo.store.ID, UpdateStoreInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "New Name" || updated.Address != "Old Address" {
		t.Fatalf("expected a partial update, got %+v", updated)
	}
}
