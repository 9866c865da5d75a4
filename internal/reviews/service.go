package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reservationsvc "github.com/phonedeck/phonedeck-backend/internal/reservations"
	storesvc "github.com/phonedeck/phonedeck-backend/internal/stores"
	"github.com/phonedeck/phonedeck-backend/pkg/db"
	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/pagination"
)

// Service exposes review writes and store review reads.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor string) (*ReviewsPageDTO, error)
}

// CreateReviewInput holds the validated payload to review a store.
type CreateReviewInput struct {
	StoreID       uuid.UUID
	ReservationID *uuid.UUID
	Rating        int
	Content       string
}

type reviewStore interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	RatingAggregate(ctx context.Context, storeID uuid.UUID) (float64, int, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor *time.Time) ([]models.Review, error)
}

type ratingWriter interface {
	UpdateRatingAggregate(ctx context.Context, storeID uuid.UUID, rating float64, reviewCount int) error
}

type reservationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txFactories struct {
	reviews func(tx *gorm.DB) reviewStore
	stores  func(tx *gorm.DB) ratingWriter
}

type service struct {
	repo         reviewStore
	reservations reservationReader
	client       transactor
	txRepos      txFactories
}

// NewService wires review creation. The transaction factories rebind the
// review and store repositories so the insert and the rating aggregate update
// commit together.
func NewService(repo reviewStore, reservations reservationReader, client transactor, reviewsTx func(tx *gorm.DB) reviewStore, storesTx func(tx *gorm.DB) ratingWriter) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		client:       client,
		txRepos: txFactories{
			reviews: reviewsTx,
			stores:  storesTx,
		},
	}
}

// NewGormService wires the service and its transaction factories against
// gorm backed repositories.
func NewGormService(client *db.Client) Service {
	return NewService(
		NewRepository(client.DB()),
		reservationsvc.NewRepository(client.DB()),
		client,
		func(tx *gorm.DB) reviewStore { return NewRepository(tx) },
		func(tx *gorm.DB) ratingWriter { return storesvc.NewRepository(tx) },
	)
}

// CreateReview inserts the review and recomputes the store's denormalized
// rating in one transaction. A reservation can back at most one review.
func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.Content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	if input.ReservationID != nil {
		if err := s.checkReservation(ctx, userID, input.StoreID, *input.ReservationID); err != nil {
			return nil, err
		}
	}

	review := &models.Review{
		StoreID:       input.StoreID,
		UserID:        userID,
		ReservationID: input.ReservationID,
		Rating:        input.Rating,
		Content:       input.Content,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		reviews := s.txRepos.reviews(tx)
		if _, err := reviews.Create(ctx, review); err != nil {
			return err
		}
		avg, count, err := reviews.RatingAggregate(ctx, input.StoreID)
		if err != nil {
			return err
		}
		return s.txRepos.stores(tx).UpdateRatingAggregate(ctx, input.StoreID, avg, count)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "reviews_reservation_id_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "reservation already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	dto := toReviewDTO(*review)
	return &dto, nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID, limit int, cursor string) (*ReviewsPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	parsed, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cursor must be an ISO-8601 timestamp")
	}

	rows, err := s.repo.ListByStore(ctx, storeID, normalized, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	page := &ReviewsPageDTO{Items: make([]ReviewDTO, 0, len(rows))}
	for _, row := range rows {
		page.Items = append(page.Items, toReviewDTO(row))
	}
	if len(rows) == normalized && normalized > 0 {
		next := pagination.FormatCursor(rows[len(rows)-1].CreatedAt)
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) checkReservation(ctx context.Context, userID, storeID, reservationID uuid.UUID) error {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservation")
	}
	if reservation.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "reservation belongs to another user")
	}
	if reservation.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeValidation, "reservation is for another store")
	}
	if reservation.Status != enums.ReservationStatusCompleted {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only completed visits can be reviewed")
	}
	return nil
}
