package services

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"PharmaTrack/utils"
	"context"
	"errors"
	"fmt"
)

// ErrInvalidBatchData wraps storage-boundary validation failures.
var ErrInvalidBatchData = errors.New("invalid batch data")

type BatchService struct {
	repository *repositories.BatchRepository
}

func NewBatchService(repository *repositories.BatchRepository) *BatchService {
	return &BatchService{repository: repository}
}

func (s *BatchService) Create(ctx context.Context, batch *models.Batch) error {
	if err := utils.ValidateBatchData(*batch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBatchData, err)
	}
	return s.repository.Create(ctx, batch)
}

func (s *BatchService) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *BatchService) GetActive(ctx context.Context) ([]models.Batch, error) {
	return s.repository.GetActive(ctx)
}

func (s *BatchService) Update(ctx context.Context, batch *models.Batch) error {
	if err := utils.ValidateBatchData(*batch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBatchData, err)
	}
	return s.repository.Update(ctx, batch)
}

func (s *BatchService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
