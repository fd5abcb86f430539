package services

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs the dispensing service with in-memory batches, patients
// and events, mirroring the repository's conditional-decrement contract.
type fakeStore struct {
	batches  map[string]*models.Batch
	patients map[string]*models.Patient
	events   []models.DispensingEvent
	nextSeq  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		batches:  make(map[string]*models.Batch),
		patients: make(map[string]*models.Patient),
	}
}

func (f *fakeStore) Dispense(ctx context.Context, event *models.DispensingEvent) (int, error) {
	batch, ok := f.batches[event.BatchID]
	if !ok {
		return 0, repositories.ErrBatchGone
	}
	if batch.Quantity < event.Quantity {
		return 0, repositories.ErrInsufficientStock
	}
	batch.Quantity -= event.Quantity
	f.nextSeq++
	event.ID = fmt.Sprintf("DS-%06d", f.nextSeq)
	f.events = append(f.events, *event)
	return batch.Quantity, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.DispensingEvent, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetAll(ctx context.Context) ([]models.DispensingEvent, error) {
	return f.events, nil
}

func (f *fakeStore) GetByPatient(ctx context.Context, patientID string) ([]models.DispensingEvent, error) {
	var out []models.DispensingEvent
	for _, e := range f.events {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

// batchFinder / patientFinder views over the same store

type fakeBatches struct{ store *fakeStore }

func (f fakeBatches) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	if b, ok := f.store.batches[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

type fakePatients struct{ store *fakeStore }

func (f fakePatients) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if p, ok := f.store.patients[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (f fakePatients) GetByHealthCard(ctx context.Context, card string) (*models.Patient, error) {
	for _, p := range f.store.patients {
		if p.HealthCardNumber == card {
			return p, nil
		}
	}
	return nil, nil
}

func newTestService() (*DispensingService, *fakeStore) {
	store := newFakeStore()
	store.batches["BT-000001"] = &models.Batch{
		ID:         "BT-000001",
		Code:       "L-2025-0001",
		Medication: "Amoxicillin",
		Quantity:   10,
	}
	store.patients["PT-000001"] = &models.Patient{
		ID:               "PT-000001",
		Name:             "Carlos Pereira",
		HealthCardNumber: "123456789012345",
	}
	svc := NewDispensingService(store, fakeBatches{store}, fakePatients{store})
	return svc, store
}

func TestDispenseRejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	for _, qty := range []int{0, -3} {
		_, _, err := svc.Dispense(ctx, DispenseRequest{
			BatchID:     "BT-000001",
			PatientID:   "PT-000001",
			Quantity:    qty,
			DispensedBy: "Ana Lima",
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 10, store.batches["BT-000001"].Quantity)
	assert.Empty(t, store.events)
}

func TestDispenseRejectsMissingActor(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.Dispense(context.Background(), DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-000001",
		Quantity:    2,
		DispensedBy: "   ",
	})
	assert.ErrorIs(t, err, ErrMissingActor)
	assert.Empty(t, store.events)
}

func TestDispenseUnknownPatient(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.Dispense(context.Background(), DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-999999",
		Quantity:    2,
		DispensedBy: "Ana Lima",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.Equal(t, 10, store.batches["BT-000001"].Quantity)
	assert.Empty(t, store.events)
}

func TestDispenseUnknownBatch(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.Dispense(context.Background(), DispenseRequest{
		BatchID:     "BT-404404",
		PatientID:   "PT-000001",
		Quantity:    2,
		DispensedBy: "Ana Lima",
	})
	assert.ErrorIs(t, err, ErrBatchNotFound)
	assert.Empty(t, store.events)
}

func TestDispenseInsufficientStockMutatesNothing(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.Dispense(context.Background(), DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-000001",
		Quantity:    11,
		DispensedBy: "Ana Lima",
	})
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 10, store.batches["BT-000001"].Quantity)
	assert.Empty(t, store.events)
}

func TestDispenseDecrementsAndRecords(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	event, remaining, err := svc.Dispense(ctx, DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-000001",
		Quantity:    4,
		DispensedBy: "Ana Lima",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, remaining)
	assert.Equal(t, 6, store.batches["BT-000001"].Quantity)

	require.Len(t, store.events, 1)
	recorded := store.events[0]
	assert.Equal(t, event.ID, recorded.ID)
	assert.Equal(t, "PT-000001", recorded.PatientID)
	assert.Equal(t, "Carlos Pereira", recorded.PatientName)
	assert.Equal(t, "BT-000001", recorded.BatchID)
	assert.Equal(t, "Amoxicillin", recorded.Medication)
	assert.Equal(t, 4, recorded.Quantity)
	assert.Equal(t, "Ana Lima", recorded.DispensedBy)
}

func TestDispenseScenarioDrainBatch(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	req := DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-000001",
		DispensedBy: "Ana Lima",
	}

	// 10 - 4 = 6
	req.Quantity = 4
	_, remaining, err := svc.Dispense(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 6, remaining)

	// 7 > 6 is rejected, stock untouched
	req.Quantity = 7
	_, _, err = svc.Dispense(ctx, req)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 6, store.batches["BT-000001"].Quantity)

	// dispensing exactly the remainder drains the batch
	req.Quantity = 6
	_, remaining, err = svc.Dispense(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.False(t, store.batches["BT-000001"].Active())

	assert.Len(t, store.events, 2)
}

func TestDispenseResolvesPatientByHealthCard(t *testing.T) {
	svc, store := newTestService()

	event, _, err := svc.Dispense(context.Background(), DispenseRequest{
		BatchID:          "BT-000001",
		HealthCardNumber: "123456789012345",
		Quantity:         1,
		DispensedBy:      "Ana Lima",
	})
	require.NoError(t, err)
	assert.Equal(t, "PT-000001", event.PatientID)
	assert.Len(t, store.events, 1)

	// An unknown card resolves to no patient
	_, _, err = svc.Dispense(context.Background(), DispenseRequest{
		BatchID:          "BT-000001",
		HealthCardNumber: "999999999999999",
		Quantity:         1,
		DispensedBy:      "Ana Lima",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDispenseHistoryQueries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	event, _, err := svc.Dispense(ctx, DispenseRequest{
		BatchID:     "BT-000001",
		PatientID:   "PT-000001",
		Quantity:    3,
		DispensedBy: "Ana Lima",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Quantity)

	byPatient, err := svc.GetByPatient(ctx, "PT-000001")
	require.NoError(t, err)
	assert.Len(t, byPatient, 1)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
