package models

import (
	"time"
)

// DateLayout is the calendar-day format used for all batch dates.
const DateLayout = "2006-01-02"

// Batch status values derived from the expiration date.
const (
	BatchStatusExpired = "expired"
	BatchStatusPending = "pending"
)

// Batch model. Quantity never goes below zero: every decrement is a
// conditional update guarded by the current stock.
type Batch struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	Code            string    `gorm:"column:code;unique;not null;index" json:"code"`
	Medication      string    `gorm:"column:medication;not null;index" json:"medication"`
	Manufacturer    string    `gorm:"column:manufacturer;not null" json:"manufacturer"`
	Quantity        int       `gorm:"column:quantity;not null;check:quantity >= 0" json:"quantity"`
	Grams           float64   `gorm:"column:grams" json:"grams"`
	ManufactureDate string    `gorm:"column:manufacture_date;not null" json:"manufacture_date"`
	ExpirationDate  string    `gorm:"column:expiration_date;not null;index" json:"expiration_date"`
	ImageURL        string    `gorm:"column:image_url" json:"image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Batch) TableName() string {
	return "batch"
}

// Active reports whether the batch still has stock to dispense. Batches at
// zero are kept for the dispensing history but dropped from active listings.
func (b *Batch) Active() bool {
	return b.Quantity > 0
}

// Status classifies the batch against the given instant, truncated to the
// calendar day. A batch expiring today is still pending.
func (b *Batch) Status(now time.Time) string {
	exp, err := time.Parse(DateLayout, b.ExpirationDate)
	if err != nil {
		// Dates are validated on write; an unparseable value only happens
		// on hand-edited rows. Treat it as not yet expired.
		return BatchStatusPending
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if exp.Before(today) {
		return BatchStatusExpired
	}
	return BatchStatusPending
}

// BatchView is a Batch with its derived status attached. The status is
// recomputed on every read and never persisted.
type BatchView struct {
	Batch
	Status string `json:"status"`
}

// WithStatus builds the read view of the batch for the given instant.
func (b Batch) WithStatus(now time.Time) BatchView {
	return BatchView{Batch: b, Status: b.Status(now)}
}
