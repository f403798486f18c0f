// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"rentalog/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	nibRegex = regexp.MustCompile(`^[0-9]{13}$`)
	nikRegex = regexp.MustCompile(`^[0-9]{16}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nib", validateNIB)
		_ = v.RegisterValidation("nik", validateNIK)
		_ = v.RegisterValidation("hhmm", validateClock)
		_ = v.RegisterValidation("rental_type", validateRentalType)
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("iso_date", validateDate)
	}
}

func validateNIB(fl validator.FieldLevel) bool {
	return nibRegex.MatchString(fl.Field().String())
}

// validateNIK accepts an empty value; use required alongside it when the ID is mandatory.
func validateNIK(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || nikRegex.MatchString(s)
}

func validateClock(fl validator.FieldLevel) bool {
	return models.ValidClock(fl.Field().String())
}

func validateRentalType(fl validator.FieldLevel) bool {
	return models.RentalType(fl.Field().String()).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// ValidNIK reports whether s is a 16-digit national ID.
func ValidNIK(s string) bool {
	return nikRegex.MatchString(s)
}
