package utils

import (
	"PharmaTrack/models"
	"errors"
	"log"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrExpiryBeforeMfg    = errors.New("expiration date must be after the manufacturing date")
)

var (
	healthCardRegex = regexp.MustCompile(`^\d{15}$`)
	nationalIDRegex = regexp.MustCompile(`^\d{10}$`)
)

// ValidateUserData validates account data at the storage boundary. The
// client validates too, but the store never trusts it.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(3, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Phone, validation.Length(8, 30)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePatientData enforces the identifying codes: the health card number
// is exactly 15 digits and the national id exactly 10.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(3, 150)),
		validation.Field(&patient.HealthCardNumber, validation.Required,
			validation.Match(healthCardRegex).Error("health card number must be exactly 15 digits")),
		validation.Field(&patient.NationalID, validation.Required,
			validation.Match(nationalIDRegex).Error("national id must be exactly 10 digits")),
		validation.Field(&patient.AssignedQuantity, validation.Min(0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateBatchData checks required batch fields, the date formats and the
// date ordering. Quantity may be zero (a batch can be registered empty) but
// never negative.
func ValidateBatchData(batch models.Batch) error {
	err := validation.ValidateStruct(&batch,
		validation.Field(&batch.Code, validation.Required, validation.Length(1, 50)),
		validation.Field(&batch.Medication, validation.Required, validation.Length(1, 150)),
		validation.Field(&batch.Manufacturer, validation.Required, validation.Length(1, 150)),
		validation.Field(&batch.Quantity, validation.Min(0)),
		validation.Field(&batch.Grams, validation.Min(0.0)),
		validation.Field(&batch.ManufactureDate, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&batch.ExpirationDate, validation.Required, validation.Date(models.DateLayout)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return err
	}
	return validateDateOrder(batch.ManufactureDate, batch.ExpirationDate)
}

func validateDateOrder(manufactureDate, expirationDate string) error {
	mfg, err := time.Parse(models.DateLayout, manufactureDate)
	if err != nil {
		return err
	}
	exp, err := time.Parse(models.DateLayout, expirationDate)
	if err != nil {
		return err
	}
	if !exp.After(mfg) {
		log.Printf("Validation error: %v\n", ErrExpiryBeforeMfg)
		return ErrExpiryBeforeMfg
	}
	return nil
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
