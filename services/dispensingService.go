package services

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrPatientNotFound = errors.New("patient not found")
	ErrBatchNotFound   = errors.New("batch not found")
	ErrMissingActor    = errors.New("dispensing actor is required")
)

// BatchFinder resolves batches for precondition checks.
type BatchFinder interface {
	GetByID(ctx context.Context, id string) (*models.Batch, error)
}

// PatientFinder resolves patients by id or by health card number.
type PatientFinder interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByHealthCard(ctx context.Context, healthCardNumber string) (*models.Patient, error)
}

// DispenseRequest carries one dispensing action. The patient may be named by
// id or by the 15-digit health card number.
type DispenseRequest struct {
	BatchID          string `json:"batch_id"`
	PatientID        string `json:"patient_id"`
	HealthCardNumber string `json:"health_card_number"`
	Quantity         int    `json:"quantity"`
	DispensedBy      string `json:"dispensed_by"`
}

type DispensingService struct {
	repository repositories.DispensingRepository
	batches    BatchFinder
	patients   PatientFinder
}

func NewDispensingService(repository repositories.DispensingRepository, batches BatchFinder, patients PatientFinder) *DispensingService {
	return &DispensingService{
		repository: repository,
		batches:    batches,
		patients:   patients,
	}
}

// Dispense checks every precondition before any mutation, then hands the
// decrement-and-record pair to the repository as one atomic operation.
// On success it returns the recorded event and the batch's remaining stock.
func (s *DispensingService) Dispense(ctx context.Context, req DispenseRequest) (*models.DispensingEvent, int, error) {
	if req.Quantity <= 0 {
		return nil, 0, ErrInvalidQuantity
	}
	if strings.TrimSpace(req.DispensedBy) == "" {
		return nil, 0, ErrMissingActor
	}

	patient, err := s.resolvePatient(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	if patient == nil {
		return nil, 0, ErrPatientNotFound
	}

	batch, err := s.batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return nil, 0, err
	}
	if batch == nil {
		return nil, 0, ErrBatchNotFound
	}

	event := &models.DispensingEvent{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		BatchID:     batch.ID,
		Medication:  batch.Medication,
		Quantity:    req.Quantity,
		DispensedBy: req.DispensedBy,
	}

	remaining, err := s.repository.Dispense(ctx, event)
	if err != nil {
		if errors.Is(err, repositories.ErrBatchGone) {
			return nil, 0, ErrBatchNotFound
		}
		return nil, 0, err
	}
	return event, remaining, nil
}

func (s *DispensingService) resolvePatient(ctx context.Context, req DispenseRequest) (*models.Patient, error) {
	if req.PatientID != "" {
		return s.patients.GetByID(ctx, req.PatientID)
	}
	if req.HealthCardNumber != "" {
		return s.patients.GetByHealthCard(ctx, req.HealthCardNumber)
	}
	return nil, nil
}

func (s *DispensingService) GetByID(ctx context.Context, id string) (*models.DispensingEvent, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DispensingService) GetAll(ctx context.Context) ([]models.DispensingEvent, error) {
	return s.repository.GetAll(ctx)
}

func (s *DispensingService) GetByPatient(ctx context.Context, patientID string) ([]models.DispensingEvent, error) {
	return s.repository.GetByPatient(ctx, patientID)
}
