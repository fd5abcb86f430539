package services

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"PharmaTrack/utils"
	"context"
	"errors"
	"fmt"
)

// ErrInvalidPatientData wraps storage-boundary validation failures.
var ErrInvalidPatientData = errors.New("invalid patient data")

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatientData, err)
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetByHealthCard(ctx context.Context, healthCardNumber string) (*models.Patient, error) {
	return s.repository.GetByHealthCard(ctx, healthCardNumber)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatientData, err)
	}
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
