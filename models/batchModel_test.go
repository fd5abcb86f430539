package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name           string
		expirationDate string
		want           string
	}{
		{"well in the past", "2024-01-01", BatchStatusExpired},
		{"yesterday", "2025-06-14", BatchStatusExpired},
		{"boundary: expires today is still pending", "2025-06-15", BatchStatusPending},
		{"tomorrow", "2025-06-16", BatchStatusPending},
		{"far future", "2030-12-31", BatchStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Batch{ExpirationDate: tt.expirationDate}
			assert.Equal(t, tt.want, b.Status(now))
		})
	}
}

func TestBatchStatusIgnoresTimeOfDay(t *testing.T) {
	b := Batch{ExpirationDate: "2025-06-15"}

	// The classification only looks at the calendar day
	morning := time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, BatchStatusPending, b.Status(morning))
	assert.Equal(t, BatchStatusPending, b.Status(night))
}

func TestBatchStatusUnparseableDate(t *testing.T) {
	b := Batch{ExpirationDate: "15/06/2025"}
	assert.Equal(t, BatchStatusPending, b.Status(time.Now()))
}

func TestBatchActive(t *testing.T) {
	assert.True(t, (&Batch{Quantity: 1}).Active())
	assert.True(t, (&Batch{Quantity: 500}).Active())
	assert.False(t, (&Batch{Quantity: 0}).Active())
}

func TestBatchWithStatus(t *testing.T) {
	b := Batch{
		ID:             "BT-000001",
		Code:           "L-2025-01",
		Medication:     "Amoxicillin",
		Quantity:       40,
		ExpirationDate: "2024-03-01",
	}

	view := b.WithStatus(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, BatchStatusExpired, view.Status)
	assert.Equal(t, b.ID, view.ID)
	assert.Equal(t, b.Quantity, view.Quantity)
}
