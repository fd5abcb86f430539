package handlers

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"PharmaTrack/services"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	batches  map[string]*models.Batch
	patients map[string]*models.Patient
	events   []models.DispensingEvent
}

func (s *stubStore) Dispense(ctx context.Context, event *models.DispensingEvent) (int, error) {
	batch, ok := s.batches[event.BatchID]
	if !ok {
		return 0, repositories.ErrBatchGone
	}
	if batch.Quantity < event.Quantity {
		return 0, repositories.ErrInsufficientStock
	}
	batch.Quantity -= event.Quantity
	event.ID = fmt.Sprintf("DS-%06d", len(s.events)+1)
	s.events = append(s.events, *event)
	return batch.Quantity, nil
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*models.DispensingEvent, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, nil
}

func (s *stubStore) GetAll(ctx context.Context) ([]models.DispensingEvent, error) {
	return s.events, nil
}

func (s *stubStore) GetByPatient(ctx context.Context, patientID string) ([]models.DispensingEvent, error) {
	return s.events, nil
}

type stubBatches struct{ store *stubStore }

func (s stubBatches) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	if b, ok := s.store.batches[id]; ok {
		return b, nil
	}
	return nil, nil
}

type stubPatients struct{ store *stubStore }

func (s stubPatients) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if p, ok := s.store.patients[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (s stubPatients) GetByHealthCard(ctx context.Context, card string) (*models.Patient, error) {
	for _, p := range s.store.patients {
		if p.HealthCardNumber == card {
			return p, nil
		}
	}
	return nil, nil
}

func newDispensingTestRouter() (*gin.Engine, *stubStore) {
	gin.SetMode(gin.TestMode)
	store := &stubStore{
		batches: map[string]*models.Batch{
			"BT-000001": {ID: "BT-000001", Medication: "Ibuprofen", Quantity: 10},
		},
		patients: map[string]*models.Patient{
			"PT-000001": {ID: "PT-000001", Name: "Joana Alves", HealthCardNumber: "123456789012345"},
		},
	}
	svc := services.NewDispensingService(store, stubBatches{store}, stubPatients{store})
	handler := NewDispensingHandler(svc)

	router := gin.New()
	router.POST("/dispensings", handler.Dispense)
	router.GET("/dispensings", handler.GetAllDispensings)
	router.GET("/dispensings/:dispensing_id", handler.GetDispensingByID)
	return router, store
}

func postDispense(router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dispensings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDispenseEndpointSuccess(t *testing.T) {
	router, store := newDispensingTestRouter()

	w := postDispense(router, map[string]interface{}{
		"batch_id":     "BT-000001",
		"patient_id":   "PT-000001",
		"quantity":     4,
		"dispensed_by": "Ana Lima",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Dispensing        models.DispensingEvent `json:"dispensing"`
		RemainingQuantity int                    `json:"remaining_quantity"`
		Message           string                 `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.RemainingQuantity)
	assert.Equal(t, 4, resp.Dispensing.Quantity)
	assert.Equal(t, "Joana Alves", resp.Dispensing.PatientName)
	assert.Contains(t, resp.Message, "Joana Alves")
	assert.Contains(t, resp.Message, "Ibuprofen")
	assert.Contains(t, resp.Message, "Ana Lima")
	assert.Equal(t, 6, store.batches["BT-000001"].Quantity)
}

func TestDispenseEndpointInsufficientStock(t *testing.T) {
	router, store := newDispensingTestRouter()

	w := postDispense(router, map[string]interface{}{
		"batch_id":     "BT-000001",
		"patient_id":   "PT-000001",
		"quantity":     11,
		"dispensed_by": "Ana Lima",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 10, store.batches["BT-000001"].Quantity)
	assert.Empty(t, store.events)
}

func TestDispenseEndpointUnknownPatient(t *testing.T) {
	router, _ := newDispensingTestRouter()

	w := postDispense(router, map[string]interface{}{
		"batch_id":     "BT-000001",
		"patient_id":   "PT-404404",
		"quantity":     1,
		"dispensed_by": "Ana Lima",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispenseEndpointInvalidQuantity(t *testing.T) {
	router, _ := newDispensingTestRouter()

	w := postDispense(router, map[string]interface{}{
		"batch_id":     "BT-000001",
		"patient_id":   "PT-000001",
		"quantity":     0,
		"dispensed_by": "Ana Lima",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDispensingByIDNotFound(t *testing.T) {
	router, _ := newDispensingTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dispensings/DS-000999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispenseHistoryListed(t *testing.T) {
	router, _ := newDispensingTestRouter()

	postDispense(router, map[string]interface{}{
		"batch_id":     "BT-000001",
		"patient_id":   "PT-000001",
		"quantity":     2,
		"dispensed_by": "Ana Lima",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dispensings", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var events []models.DispensingEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 1)
}
