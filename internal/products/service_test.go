package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

type memProductStore struct {
	products map[uuid.UUID]*models.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[uuid.UUID]*models.Product{}}
}

func (m *memProductStore) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return p, nil
}

func (m *memProductStore) Save(_ context.Context, p *models.Product) (*models.Product, error) {
	cp := *p
	m.products[p.ID] = &cp
	return p, nil
}

func (m *memProductStore) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProductStore) ListByTable(_ context.Context, tableID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.TableID == tableID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductStore) SoftDelete(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	p := m.products[id]
	p.IsActive = false
	p.DeletedAt = &at
	p.DeletionReason = &reason
	return nil
}

func (m *memProductStore) Restore(_ context.Context, id uuid.UUID) error {
	p := m.products[id]
	p.IsActive = true
	p.DeletedAt = nil
	p.DeletionReason = nil
	return nil
}

type fixedDeviceReader struct {
	model *models.DeviceModel
}

func (f *fixedDeviceReader) FindByID(context.Context, uuid.UUID) (*models.DeviceModel, error) {
	if f.model == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.model, nil
}

type fixedTableReader struct {
	table *models.PriceTable
}

func (f *fixedTableReader) FindByID(context.Context, uuid.UUID) (*models.PriceTable, error) {
	if f.table == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.table, nil
}

func fixture(storeID uuid.UUID) (*memProductStore, *fixedDeviceReader, *fixedTableReader) {
	repo := newMemProductStore()
	device := &fixedDeviceReader{model: &models.DeviceModel{
		ID:                uuid.New(),
		Manufacturer:      "Samsung",
		DeviceName:        "Galaxy S25",
		ModelName:         "SM-S931N",
		SupportedCarriers: pq.StringArray{"KT", "SKT", "LG_U_PLUS"},
		SupportedStorage:  pq.StringArray{"256GB", "512GB"},
	}}
	table := &fixedTableReader{table: &models.PriceTable{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    "june",
	}}
	return repo, device, table
}

func TestCreateProductRejectsUnsupportedStorage(t *testing.T) {
	storeID := uuid.New()
	repo, device, table := fixture(storeID)
	svc := NewService(repo, device, table)

	_, err := svc.CreateProduct(context.Background(), storeID, CreateProductInput{
		TableID:       table.table.ID,
		DeviceModelID: device.model.ID,
		Carrier:       enums.CarrierKT,
		Storage:       enums.Storage128GB,
		Price:         900000,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCreateProductRejectsForeignTable(t *testing.T) {
	storeID := uuid.New()
	repo, device, table := fixture(uuid.New())
	svc := NewService(repo, device, table)

	_, err := svc.CreateProduct(context.Background(), storeID, CreateProductInput{
		TableID:       table.table.ID,
		DeviceModelID: device.model.ID,
		Carrier:       enums.CarrierKT,
		Storage:       enums.Storage256GB,
		Price:         900000,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected a forbidden error, got %v", err)
	}
}

func TestDeleteThenRestoreRoundTrip(t *testing.T) {
	storeID := uuid.New()
	repo, device, table := fixture(storeID)
	svc := NewService(repo, device, table)

	created, err := svc.CreateProduct(context.Background(), storeID, CreateProductInput{
		TableID:       table.table.ID,
		DeviceModelID: device.model.ID,
		Carrier:       enums.CarrierKT,
		Storage:       enums.Storage256GB,
		Price:         900000,
		Conditions:    []string{"number_port"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteProduct(context.Background(), storeID, created.ID, "out of stock"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	stored := repo.products[created.ID]
	if stored.IsLive() {
		t.Fatal("deleted product must not be live")
	}
	if stored.DeletionReason == nil || *stored.DeletionReason != "out of stock" {
		t.Fatalf("expected the deletion reason to be recorded, got %v", stored.DeletionReason)
	}

	if err := svc.DeleteProduct(context.Background(), storeID, created.ID, "again"); err == nil {
		t.Fatal("double delete must be a state conflict")
	}

	restored, err := svc.RestoreProduct(context.Background(), storeID, created.ID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !restored.IsActive || restored.DeletedAt != nil || restored.DeletionReason != nil {
		t.Fatalf("restore must clear all soft-delete bookkeeping, got %+v", restored)
	}
	if !repo.products[created.ID].IsLive() {
		t.Fatal("restored product must be live again")
	}
}

func TestDeleteRejectsForeignProduct(t *testing.T) {
	storeID := uuid.New()
	repo, device, table := fixture(storeID)
	svc := NewService(repo, device, table)

	created, err := svc.CreateProduct(context.Background(), storeID, CreateProductInput{
		TableID:       table.table.ID,
		DeviceModelID: device.model.ID,
		Carrier:       enums.CarrierSKT,
		Storage:       enums.Storage512GB,
		Price:         1200000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = svc.DeleteProduct(context.Background(), uuid.New(), created.ID, "not mine")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected a forbidden error, got %v", err)
	}
}
