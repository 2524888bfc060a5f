package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEquipoDadoDeBaja   = errors.New("el equipo está dado de baja y no acepta nuevas órdenes")
)

// FieldError describe un campo faltante o inválido en el payload del caller.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError agrupa TODOS los campos con problemas, no solo el primero,
// para que el caller pueda reportarlos de una sola vez.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// NewValidationError construye el error a partir de pares campo/razón.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConcurrencyConflictError indica que el chequeo optimista de concurrencia falló:
// otro caller modificó el registro entre la lectura y la escritura.
// El caller debe reintentar la transición contra el estado fresco.
type ConcurrencyConflictError struct {
	ID             string
	EstadoEsperado string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia en orden %s: el estado ya no es %s", e.ID, e.EstadoEsperado)
}
