package models

import (
	"time"
)

// Patient model. The health card number is the 15-digit national card and
// doubles as an identifying code when dispensing.
type Patient struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	Name               string    `gorm:"column:name;not null;index" json:"name"`
	HealthCardNumber   string    `gorm:"column:health_card_number;unique;not null;index" json:"health_card_number"`
	NationalID         string    `gorm:"column:national_id;unique;not null" json:"national_id"`
	AssignedMedication string    `gorm:"column:assigned_medication" json:"assigned_medication"`
	AssignedQuantity   int       `gorm:"column:assigned_quantity" json:"assigned_quantity"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patient"
}
