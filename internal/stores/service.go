package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

// Service exposes store profile reads and seller profile updates.
type Service interface {
	GetStore(ctx context.Context, storeID uuid.UUID) (*StoreDetailDTO, error)
	UpdateStore(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
}

// UpdateStoreInput holds optional mutation values for a store profile.
type UpdateStoreInput struct {
	Name        *string
	Address     *string
	Phone       *string
	Description *string
}

type storeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Save(ctx context.Context, store *models.Store) (*models.Store, error)
	CurrentTable(ctx context.Context, storeID uuid.UUID, day string) (*models.PriceTable, error)
}

type service struct {
	repo storeStore
	now  func() time.Time
}

// NewService wires the store profile paths.
func NewService(repo storeStore) Service {
	return &service{repo: repo, now: time.Now}
}

// GetStore returns the store profile with its currently exposed price table,
// if any.
func (s *service) GetStore(ctx context.Context, storeID uuid.UUID) (*StoreDetailDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	detail := &StoreDetailDTO{StoreDTO: toStoreDTO(*store)}

	day := s.now().Format("2006-01-02")
	table, err := s.repo.CurrentTable(ctx, storeID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current price table")
		}
	} else {
		summary := toTableSummaryDTO(*table)
		detail.CurrentTable = &summary
	}

	return detail, nil
}

func (s *service) UpdateStore(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Description != nil {
		store.Description = input.Description
	}

	saved, err := s.repo.Save(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	dto := toStoreDTO(*saved)
	return &dto, nil
}
