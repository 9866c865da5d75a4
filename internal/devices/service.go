package devices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
)

// Service exposes device model catalog reads.
type Service interface {
	ListModels(ctx context.Context) ([]DeviceModelDTO, error)
	GetModel(ctx context.Context, id uuid.UUID) (*DeviceModelDTO, error)
}

type modelReader interface {
	List(ctx context.Context) ([]models.DeviceModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeviceModel, error)
}

type service struct {
	repo modelReader
}

// NewService wires the device model read paths.
func NewService(repo modelReader) Service {
	return &service{repo: repo}
}

func (s *service) ListModels(ctx context.Context) ([]DeviceModelDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list device models")
	}
	out := make([]DeviceModelDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDeviceModelDTO(row))
	}
	return out, nil
}

func (s *service) GetModel(ctx context.Context, id uuid.UUID) (*DeviceModelDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device model not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load device model")
	}
	dto := toDeviceModelDTO(*row)
	return &dto, nil
}
