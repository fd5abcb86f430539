package models

import (
	"time"
)

// DispensingEvent records one transfer of medication units from a batch to a
// patient. Events are append-only: there is no update or delete flow. Patient
// and medication names are copied at write time so the history stays readable
// even after the source records change; no foreign keys are enforced.
type DispensingEvent struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	PatientName string    `gorm:"column:patient_name;not null" json:"patient_name"`
	BatchID     string    `gorm:"column:batch_id;not null;index" json:"batch_id"`
	Medication  string    `gorm:"column:medication;not null" json:"medication"`
	Quantity    int       `gorm:"column:quantity;not null" json:"quantity"`
	DispensedBy string    `gorm:"column:dispensed_by;not null" json:"dispensed_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (DispensingEvent) TableName() string {
	return "dispensing_event"
}
