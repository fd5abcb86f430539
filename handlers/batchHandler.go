package handlers

import (
	"PharmaTrack/models"
	"PharmaTrack/repositories"
	"PharmaTrack/services"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	service *services.BatchService
}

func NewBatchHandler(service *services.BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &batch); err != nil {
		switch {
		case errors.Is(err, repositories.ErrBatchCodeExists):
			c.JSON(409, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidBatchData):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(201, batch.WithStatus(time.Now()))
}

func (h *BatchHandler) GetBatchByID(c *gin.Context) {
	id := c.Param("batch_id")
	batch, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if batch == nil {
		c.JSON(404, gin.H{"error": "Batch not found"})
		return
	}
	c.JSON(200, batch.WithStatus(time.Now()))
}

// GetActiveBatches lists batches with remaining stock, each classified as
// expired or pending against today's date.
func (h *BatchHandler) GetActiveBatches(c *gin.Context) {
	batches, err := h.service.GetActive(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	now := time.Now()
	views := make([]models.BatchView, 0, len(batches))
	for _, batch := range batches {
		views = append(views, batch.WithStatus(now))
	}
	c.JSON(200, views)
}

func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	id := c.Param("batch_id")
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	batch.ID = id
	if err := h.service.Update(c, &batch); err != nil {
		if errors.Is(err, services.ErrInvalidBatchData) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, batch.WithStatus(time.Now()))
}

func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	id := c.Param("batch_id")
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Batch deleted successfully"})
}
