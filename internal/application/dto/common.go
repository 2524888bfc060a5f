package dto

import "github.com/jhoicas/Aurea-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle por campo en
// errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}
