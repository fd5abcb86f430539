package utils

import (
	"PharmaTrack/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatient() models.Patient {
	return models.Patient{
		Name:               "Carlos Pereira",
		HealthCardNumber:   "123456789012345",
		NationalID:         "9876543210",
		AssignedMedication: "Metformin",
		AssignedQuantity:   30,
	}
}

func TestValidatePatientData(t *testing.T) {
	require.NoError(t, ValidatePatientData(validPatient()))
}

func TestValidatePatientHealthCard(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		wantErr bool
	}{
		{"exactly 15 digits", "123456789012345", false},
		{"14 digits", "12345678901234", true},
		{"16 digits", "1234567890123456", true},
		{"letters mixed in", "12345678901234a", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			p.HealthCardNumber = tt.card
			err := ValidatePatientData(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePatientNationalID(t *testing.T) {
	p := validPatient()
	p.NationalID = "123456789" // 9 digits
	assert.Error(t, ValidatePatientData(p))

	p.NationalID = "1234567890"
	assert.NoError(t, ValidatePatientData(p))
}

func validBatch() models.Batch {
	return models.Batch{
		Code:            "L-2025-0042",
		Medication:      "Amoxicillin",
		Manufacturer:    "EMS",
		Quantity:        100,
		Grams:           0.5,
		ManufactureDate: "2025-01-10",
		ExpirationDate:  "2027-01-10",
	}
}

func TestValidateBatchData(t *testing.T) {
	require.NoError(t, ValidateBatchData(validBatch()))
}

func TestValidateBatchDateOrdering(t *testing.T) {
	b := validBatch()
	b.ExpirationDate = "2024-12-31" // before manufacture
	assert.ErrorIs(t, ValidateBatchData(b), ErrExpiryBeforeMfg)

	b.ExpirationDate = b.ManufactureDate // equal is also rejected
	assert.ErrorIs(t, ValidateBatchData(b), ErrExpiryBeforeMfg)
}

func TestValidateBatchRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *models.Batch)
	}{
		{"missing code", func(b *models.Batch) { b.Code = "" }},
		{"missing medication", func(b *models.Batch) { b.Medication = "" }},
		{"missing manufacturer", func(b *models.Batch) { b.Manufacturer = "" }},
		{"negative quantity", func(b *models.Batch) { b.Quantity = -1 }},
		{"bad date format", func(b *models.Batch) { b.ManufactureDate = "10/01/2025" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBatch()
			tt.mutate(&b)
			assert.Error(t, ValidateBatchData(b))
		})
	}
}

func TestValidateBatchAllowsZeroQuantity(t *testing.T) {
	b := validBatch()
	b.Quantity = 0
	assert.NoError(t, ValidateBatchData(b))
}

func TestValidateUserData(t *testing.T) {
	user := models.User{
		Name:     "Ana Lima",
		Email:    "ana@example.com",
		Phone:    "11999998888",
		Password: "Str0ng@Pass",
	}
	require.NoError(t, ValidateUserData(user))

	user.Email = "not-an-email"
	assert.Error(t, ValidateUserData(user))
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"too short", "Ab1@", ErrPasswordTooShort},
		{"no uppercase", "weak@pass1", ErrPasswordNotComplex},
		{"no digit", "Weak@pass", ErrPasswordNotComplex},
		{"no special", "Weakpass1", ErrPasswordNotComplex},
		{"acceptable", "Str0ng@Pass", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
