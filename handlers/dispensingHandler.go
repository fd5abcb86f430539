package handlers

import (
	"PharmaTrack/middlewares"
	"PharmaTrack/repositories"
	"PharmaTrack/services"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type DispensingHandler struct {
	service *services.DispensingService
}

func NewDispensingHandler(service *services.DispensingService) *DispensingHandler {
	return &DispensingHandler{service: service}
}

// Dispense performs the stock-decrement workflow. Preconditions are checked
// before any write; the decrement and the history record commit together or
// not at all.
func (h *DispensingHandler) Dispense(c *gin.Context) {
	var req services.DispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	event, remaining, err := h.service.Dispense(c, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, services.ErrMissingActor):
			c.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPatientNotFound), errors.Is(err, services.ErrBatchNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		case errors.Is(err, repositories.ErrInsufficientStock):
			c.JSON(409, gin.H{"error": err.Error()})
		default:
			middlewares.HttpError(c, "failed to dispense", 500, err)
		}
		return
	}

	c.JSON(201, gin.H{
		"dispensing":         event,
		"remaining_quantity": remaining,
		"message": fmt.Sprintf("Dispensed %d units of %s to %s by %s",
			event.Quantity, event.Medication, event.PatientName, event.DispensedBy),
	})
}

func (h *DispensingHandler) GetDispensingByID(c *gin.Context) {
	id := c.Param("dispensing_id")
	event, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if event == nil {
		c.JSON(404, gin.H{"error": "Dispensing event not found"})
		return
	}
	c.JSON(200, event)
}

func (h *DispensingHandler) GetAllDispensings(c *gin.Context) {
	events, err := h.service.GetAll(c)
	if err != nil {
		middlewares.HttpError(c, "failed to list dispensings", 500, err)
		return
	}
	middlewares.RespondJSON(c, events, 200)
}

func (h *DispensingHandler) GetDispensingsByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	events, err := h.service.GetByPatient(c, patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, events)
}
