package tables

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/internal/products"
	"github.com/phonedeck/phonedeck-backend/pkg/db"
	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

// Service exposes seller price table management.
type Service interface {
	CreateTable(ctx context.Context, storeID uuid.UUID, input CreateTableInput) (*PriceTableDTO, error)
	UpdateTable(ctx context.Context, storeID, tableID uuid.UUID, input UpdateTableInput) (*PriceTableDTO, error)
	DeleteTable(ctx context.Context, storeID, tableID uuid.UUID, reason string) error
	RestoreTable(ctx context.Context, storeID, tableID uuid.UUID) (*PriceTableDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]PriceTableDTO, error)
}

// CreateTableInput holds the validated payload to create a price table.
// Exposure windows with start after end are accepted; such a table simply
// exposes nothing in search.
type CreateTableInput struct {
	Name              string
	ExposureStartDate time.Time
	ExposureEndDate   time.Time
}

// UpdateTableInput holds optional mutation values for a price table.
type UpdateTableInput struct {
	Name              *string
	ExposureStartDate *time.Time
	ExposureEndDate   *time.Time
	IsActive          *bool
}

type tableStore interface {
	Create(ctx context.Context, table *models.PriceTable) (*models.PriceTable, error)
	Save(ctx context.Context, table *models.PriceTable) (*models.PriceTable, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PriceTable, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.PriceTable, error)
	SoftDelete(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type productCascader interface {
	SoftDeleteByTable(ctx context.Context, tableID uuid.UUID, reason string, at time.Time) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txFactories struct {
	tables   func(tx *gorm.DB) tableStore
	products func(tx *gorm.DB) productCascader
}

type service struct {
	repo    tableStore
	client  transactor
	txRepos txFactories
	now     func() time.Time
}

// NewService wires price table management. The transaction factories rebind
// the table and product repositories to one transaction for the cascade
// delete path.
func NewService(repo tableStore, client transactor, tablesTx func(tx *gorm.DB) tableStore, productsTx func(tx *gorm.DB) productCascader) Service {
	return &service{
		repo:   repo,
		client: client,
		txRepos: txFactories{
			tables:   tablesTx,
			products: productsTx,
		},
		now: time.Now,
	}
}

// NewGormService wires the service and its transaction factories against
// gorm backed repositories.
func NewGormService(client *db.Client) Service {
	return NewService(
		NewRepository(client.DB()),
		client,
		func(tx *gorm.DB) tableStore { return NewRepository(tx) },
		func(tx *gorm.DB) productCascader { return products.NewRepository(tx) },
	)
}

func (s *service) CreateTable(ctx context.Context, storeID uuid.UUID, input CreateTableInput) (*PriceTableDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	table := &models.PriceTable{
		StoreID:           storeID,
		Name:              input.Name,
		ExposureStartDate: input.ExposureStartDate,
		ExposureEndDate:   input.ExposureEndDate,
		IsActive:          true,
	}

	created, err := s.repo.Create(ctx, table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price table")
	}
	dto := toPriceTableDTO(*created)
	return &dto, nil
}

func (s *service) UpdateTable(ctx context.Context, storeID, tableID uuid.UUID, input UpdateTableInput) (*PriceTableDTO, error) {
	table, err := s.ownedTable(ctx, storeID, tableID)
	if err != nil {
		return nil, err
	}
	if table.DeletedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "price table is deleted")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		table.Name = *input.Name
	}
	if input.ExposureStartDate != nil {
		table.ExposureStartDate = *input.ExposureStartDate
	}
	if input.ExposureEndDate != nil {
		table.ExposureEndDate = *input.ExposureEndDate
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update price table")
	}
	dto := toPriceTableDTO(*saved)
	return &dto, nil
}

// DeleteTable soft-deletes the table and every live product in it within one
// transaction, so search never observes a half-deleted table.
func (s *service) DeleteTable(ctx context.Context, storeID, tableID uuid.UUID, reason string) error {
	table, err := s.ownedTable(ctx, storeID, tableID)
	if err != nil {
		return err
	}
	if table.DeletedAt != nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "price table is already deleted")
	}

	at := s.now()
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.txRepos.tables(tx).SoftDelete(ctx, tableID, reason, at); err != nil {
			return err
		}
		return s.txRepos.products(tx).SoftDeleteByTable(ctx, tableID, reason, at)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price table")
	}
	return nil
}

// RestoreTable clears the table's soft-delete bookkeeping. Products deleted
// by the cascade stay deleted; sellers restore them individually.
func (s *service) RestoreTable(ctx context.Context, storeID, tableID uuid.UUID) (*PriceTableDTO, error) {
	table, err := s.ownedTable(ctx, storeID, tableID)
	if err != nil {
		return nil, err
	}
	if table.DeletedAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "price table is not deleted")
	}
	if err := s.repo.Restore(ctx, tableID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore price table")
	}

	restored, err := s.repo.FindByID(ctx, tableID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload price table")
	}
	dto := toPriceTableDTO(*restored)
	return &dto, nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]PriceTableDTO, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price tables")
	}
	out := make([]PriceTableDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPriceTableDTO(row))
	}
	return out, nil
}

func (s *service) ownedTable(ctx context.Context, storeID, tableID uuid.UUID) (*models.PriceTable, error) {
	table, err := s.repo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price table")
	}
	if table.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "price table belongs to another store")
	}
	return table, nil
}
