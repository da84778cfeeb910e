// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs are checked once at the boundary.
package validator

import (
	domainerrors "bazar/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps a shared validator instance.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the echo server.
func New() echo.Validator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags and maps failures onto the shared
// validation error so the central handler shapes the envelope.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
