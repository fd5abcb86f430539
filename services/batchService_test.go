package services

import (
	"PharmaTrack/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchServiceRejectsInvalidData(t *testing.T) {
	svc := NewBatchService(nil)

	// Missing required fields never reach the repository
	err := svc.Create(context.Background(), &models.Batch{})
	assert.ErrorIs(t, err, ErrInvalidBatchData)

	err = svc.Update(context.Background(), &models.Batch{ID: "BT-000001"})
	assert.ErrorIs(t, err, ErrInvalidBatchData)
}

func TestPatientServiceRejectsInvalidData(t *testing.T) {
	svc := NewPatientService(nil)

	err := svc.Create(context.Background(), &models.Patient{Name: "Ana"})
	assert.ErrorIs(t, err, ErrInvalidPatientData)

	err = svc.Update(context.Background(), &models.Patient{ID: "PT-000001"})
	assert.ErrorIs(t, err, ErrInvalidPatientData)
}
