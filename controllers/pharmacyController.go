package controllers

import (
	"PharmaTrack/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPharmacyRoutes registers the batch, patient and dispensing routes.
// Dispensings deliberately have no PUT or DELETE: the history is append-only.
func SetupPharmacyRoutes(router *gin.Engine, batchHandler *handlers.BatchHandler, patientHandler *handlers.PatientHandler, dispensingHandler *handlers.DispensingHandler) {
	router.POST("/batches", batchHandler.CreateBatch)
	router.GET("/batches", batchHandler.GetActiveBatches)
	router.GET("/batches/:batch_id", batchHandler.GetBatchByID)
	router.PUT("/batches/:batch_id", batchHandler.UpdateBatch)
	router.DELETE("/batches/:batch_id", batchHandler.DeleteBatch)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients", patientHandler.GetAllPatients)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.GET("/patients/card/:health_card", patientHandler.GetPatientByHealthCard)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)

	router.POST("/dispensings", dispensingHandler.Dispense)
	router.GET("/dispensings", dispensingHandler.GetAllDispensings)
	router.GET("/dispensings/:dispensing_id", dispensingHandler.GetDispensingByID)
	router.GET("/patients/:patient_id/dispensings", dispensingHandler.GetDispensingsByPatient)
}
