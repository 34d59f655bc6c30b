package http

import (
	"reflect"
	"strings"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// BodyValidator checks bodies decoded by echo.Bind. Field names in errors
// use the json tag.
type BodyValidator struct {
	validate *validator.Validate
}

func NewBodyValidator() (*BodyValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"priority":        validatePriority,
		"stop_type":       validateStopType,
		"shipment_status": validateShipmentStatus,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}
	return &BodyValidator{validate: validate}, nil
}

// Validate implements echo.Validator.
func (v *BodyValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

func validatePriority(fl validator.FieldLevel) bool {
	_, err := shipment.ParsePriority(fl.Field().String())
	return err == nil
}

func validateStopType(fl validator.FieldLevel) bool {
	_, err := shipment.ParseStopType(fl.Field().String())
	return err == nil
}

func validateShipmentStatus(fl validator.FieldLevel) bool {
	_, err := shipment.ParseStatus(fl.Field().String())
	return err == nil
}
