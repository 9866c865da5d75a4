package products

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

// Service exposes seller product management.
type Service interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, storeID, productID uuid.UUID, reason string) error
	RestoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductDTO, error)
	ListByTable(ctx context.Context, storeID, tableID uuid.UUID) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	TableID       uuid.UUID
	DeviceModelID uuid.UUID
	Carrier       enums.Carrier
	Storage       enums.Storage
	Price         int
	Conditions    []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Price      *int
	Conditions *[]string
	IsActive   *bool
}

type productStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type deviceReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeviceModel, error)
}

type tableReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PriceTable, error)
}

type service struct {
	repo    productStore
	devices deviceReader
	tables  tableReader
	now     func() time.Time
}

// NewService wires product management against its persistence dependencies.
func NewService(repo productStore, devices deviceReader, tables tableReader) Service {
	return &service{repo: repo, devices: devices, tables: tables, now: time.Now}
}

func (s *service) CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	table, err := s.tables.FindByID(ctx, input.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price table")
	}
	if table.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "price table belongs to another store")
	}
	if table.DeletedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "price table is deleted")
	}

	if err := s.validateOffer(ctx, input.DeviceModelID, input.Carrier, input.Storage); err != nil {
		return nil, err
	}
	if input.Price <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	product := &models.Product{
		StoreID:       storeID,
		TableID:       input.TableID,
		DeviceModelID: input.DeviceModelID,
		Carrier:       input.Carrier,
		Storage:       input.Storage,
		Price:         input.Price,
		Conditions:    normalizeTags(input.Conditions),
		IsActive:      true,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := toProductDTO(*created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if product.DeletedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is deleted")
	}

	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.Price = *input.Price
	}
	if input.Conditions != nil {
		product.Conditions = normalizeTags(*input.Conditions)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	dto := toProductDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, storeID, productID uuid.UUID, reason string) error {
	product, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return err
	}
	if product.DeletedAt != nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "product is already deleted")
	}
	if err := s.repo.SoftDelete(ctx, productID, reason, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) RestoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if product.DeletedAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not deleted")
	}
	if err := s.repo.Restore(ctx, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore product")
	}

	restored, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	dto := toProductDTO(*restored)
	return &dto, nil
}

func (s *service) ListByTable(ctx context.Context, storeID, tableID uuid.UUID) ([]ProductDTO, error) {
	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price table")
	}
	if table.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "price table belongs to another store")
	}

	rows, err := s.repo.ListByTable(ctx, tableID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductDTO(row))
	}
	return out, nil
}

func (s *service) ownedProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another store")
	}
	return product, nil
}

// validateOffer checks the carrier and storage against the device model's
// supported sets.
func (s *service) validateOffer(ctx context.Context, modelID uuid.UUID, carrier enums.Carrier, storage enums.Storage) error {
	model, err := s.devices.FindByID(ctx, modelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "device model not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load device model")
	}
	if !carrier.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown carrier")
	}
	if !storage.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown storage")
	}
	if !slices.Contains(model.SupportedCarriers, carrier.String()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "carrier not supported by this device model")
	}
	if !slices.Contains(model.SupportedStorage, storage.String()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "storage not supported by this device model")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
