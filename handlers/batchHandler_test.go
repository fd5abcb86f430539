package handlers

import (
	"PharmaTrack/services"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewBatchHandler(services.NewBatchService(nil))

	router := gin.New()
	router.POST("/batches", handler.CreateBatch)
	router.PUT("/batches/:batch_id", handler.UpdateBatch)
	return router
}

func TestCreateBatchRejectsInvalidData(t *testing.T) {
	router := newBatchTestRouter()

	payload, _ := json.Marshal(map[string]interface{}{
		"code":     "L-2025-0042",
		"quantity": -5,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/batches", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "invalid batch data")
}

func TestUpdateBatchRejectsInvalidData(t *testing.T) {
	router := newBatchTestRouter()

	payload, _ := json.Marshal(map[string]interface{}{
		"medication": "Amoxicillin",
		// missing code, manufacturer and dates
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/batches/BT-000001", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
