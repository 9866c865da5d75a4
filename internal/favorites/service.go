package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// Service exposes business rules for favorite management.
type Service interface {
	ListFavorites(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*FavoritesPageDTO, error)
	AddFavorite(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error
}

type favoriteStore interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID, limit int, cursor *time.Time) ([]favoriteRow, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     favoriteStore
	products productReader
}

// NewService builds a favorites service with the required dependencies.
func NewService(repo favoriteStore, products productReader) Service {
	return &service{repo: repo, products: products}
}

// ListFavorites returns one keyset page of the user's saved products.
func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*FavoritesPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	parsed, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cursor must be an ISO-8601 timestamp")
	}

	rows, err := s.repo.ListItems(ctx, userID, normalized, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}

	page := &FavoritesPageDTO{Items: make([]FavoriteItemDTO, 0, len(rows))}
	for _, row := range rows {
		page.Items = append(page.Items, toFavoriteItemDTO(row))
	}
	if len(rows) == normalized && normalized > 0 {
		next := pagination.FormatCursor(rows[len(rows)-1].FavoriteCreatedAt)
		page.NextCursor = &next
	}
	return page, nil
}

// AddFavorite ensures the product exists and saves it. Re-adding is a no-op.
func (s *service) AddFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.AddItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return nil
}

// RemoveFavorite drops the favorite entry regardless of prior state.
func (s *service) RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	return nil
}
