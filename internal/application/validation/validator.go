// Package validation valida los formularios en la frontera (antes de la capa de acceso a datos)
// usando go-playground/validator/v10 y traduce los fallos a domain.ErrValidation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jhoicas/Brewlog-api/internal/domain"
)

// FieldError fallo de un campo, con el nombre JSON del campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error uno o más campos inválidos, en el orden en que aparecen en el formulario.
// Error() devuelve solo el primer mensaje, que es el que se muestra al usuario.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return domain.ErrValidation.Error()
	}
	return e.Fields[0].Field + " " + e.Fields[0].Message
}

// Unwrap permite errors.Is(err, domain.ErrValidation).
func (e *Error) Unwrap() error { return domain.ErrValidation }

// Validator envuelve validator/v10.
type Validator struct {
	v *validator.Validate
}

// New construye el validador usando los nombres de los tags json en los mensajes.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// notblank: un texto de solo espacios cuenta como vacío.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v}
}

// Validate valida s y devuelve *Error si algún campo falla.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe), Message: friendlyMessage(fe)})
	}
	return out
}

// fieldPath nombre del campo sin el struct raíz ("image.data" en lugar de "CreateBrewRequest.image.data").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		if isNumber(fe.Kind()) {
			return "debe ser mayor o igual a " + fe.Param()
		}
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return "debe ser menor o igual a " + fe.Param()
		}
		return fmt.Sprintf("no debe superar %s caracteres", fe.Param())
	case "uuid", "uuid|len=0":
		return "debe ser un UUID válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "debe ser una fecha con formato " + fe.Param()
	case "base64":
		return "debe estar codificado en base64"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "lt":
		return "debe ser menor que " + fe.Param()
	case "lte":
		return "debe ser menor o igual a " + fe.Param()
	case "nefield":
		return "debe ser distinta de la actual"
	default:
		return "no es válido"
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
