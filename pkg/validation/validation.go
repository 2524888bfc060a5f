// Package validation envuelve go-playground/validator para que los errores
// lleguen al caller con TODOS los campos problemáticos de una sola vez,
// direccionados por su nombre JSON (no por el nombre del struct Go).
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Aurea-api/internal/domain"
)

// Validator valida structs anotados con tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Los nombres de campo reportados salen del tag json.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct valida el payload. Devuelve *domain.ValidationError con un FieldError
// por cada campo faltante o inválido, o nil si todo está bien.
func (va *Validator) Struct(payload interface{}) error {
	err := va.v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: el payload no es un struct, error de programación
		return err
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath recorta el nombre del struct raíz: "CreateOrdenRequest.creacion.descripcion"
// → "creacion.descripcion".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "email":
		return "email inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}
