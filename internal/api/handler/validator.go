package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError aggregates every violated field of one request.
type ValidationError struct {
	Errores []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errores))
	for _, fe := range e.Errores {
		msgs = append(msgs, fe.Campo+": "+fe.Mensaje)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. It registers the "password" rule: at least one letter
// and at least one digit.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("password", validPassword)
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are reported as a
// *ValidationError listing every violated field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			errores := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				errores = append(errores, FieldError{
					Campo:   strings.ToLower(fe.Field()),
					Mensaje: fieldError(fe),
				})
			}
			return &ValidationError{Errores: errores}
		}
		return err
	}
	return nil
}

func validPassword(fl validator.FieldLevel) bool {
	hasLetter, hasDigit := false, false
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "el campo " + field + " es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede exceder %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "password":
		return "la contraseña debe contener al menos una letra y un número"
	default:
		return fmt.Sprintf("%s no pasó la validación (%s)", field, fe.Tag())
	}
}
