package dto

import (
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// IdentificacionRequest datos de placa requeridos al crear un equipo.
type IdentificacionRequest struct {
	Nombre     string `json:"nombre" validate:"required"`
	Marca      string `json:"marca" validate:"required"`
	Modelo     string `json:"modelo" validate:"required"`
	Serie      string `json:"serie,omitempty"`
	CodigoAF   string `json:"codigoAF,omitempty"`
	TipoEquipo string `json:"tipoEquipo,omitempty"`
}

// LocalizacionRequest ubicación requerida al crear un equipo.
type LocalizacionRequest struct {
	AreaClinica       string `json:"areaClinica" validate:"required"`
	ReferenciaArea    string `json:"referenciaArea,omitempty"`
	Nivel             string `json:"nivel,omitempty"`
	CentroCosto       string `json:"centroCosto,omitempty"`
	CentroCostoNombre string `json:"centroCostoNombre,omitempty"`
	Sede              string `json:"sede" validate:"required"`
}

// CreateEquipoRequest payload para crear un equipo (código IC asignado externamente).
type CreateEquipoRequest struct {
	ID               string                `json:"id" validate:"required"`
	Identificacion   IdentificacionRequest `json:"identificacion" validate:"required"`
	EstadoSistema    string                `json:"estadoSistema" validate:"required,oneof=OPERATIVO INOPERATIVO EN_MANTENIMIENTO STANDBY OBSOLETO EN_BAJA BAJA"`
	CondicionIngreso string                `json:"condicionIngreso,omitempty"`
	Localizacion     LocalizacionRequest   `json:"localizacion" validate:"required"`
	Adquisicion      *entity.Adquisicion   `json:"adquisicion,omitempty"`
	Vida             *entity.Vida          `json:"vida,omitempty"`
	Riesgo           *entity.Riesgo        `json:"riesgo,omitempty"`
}

// UpdateEquipoRequest actualización parcial de campos ADMINISTRATIVOS.
// EstadoSistema no aparece a propósito: solo el proyector de cierres y la
// operación de baja pueden tocarlo (allow-list, no convención).
type UpdateEquipoRequest struct {
	Identificacion   *IdentificacionRequest `json:"identificacion,omitempty"`
	CondicionIngreso *string                `json:"condicionIngreso,omitempty"`
	Localizacion     *LocalizacionRequest   `json:"localizacion,omitempty"`
	Adquisicion      *entity.Adquisicion    `json:"adquisicion,omitempty"`
	Vida             *entity.Vida           `json:"vida,omitempty"`
	Riesgo           *entity.Riesgo         `json:"riesgo,omitempty"`
}

// EquipoResponse representación de un equipo en respuestas.
type EquipoResponse struct {
	ID               string                `json:"id"`
	Identificacion   entity.Identificacion `json:"identificacion"`
	EstadoSistema    entity.EstadoEquipo   `json:"estadoSistema"`
	CondicionIngreso string                `json:"condicionIngreso,omitempty"`
	Localizacion     entity.Localizacion   `json:"localizacion"`
	Adquisicion      entity.Adquisicion    `json:"adquisicion"`
	Vida             entity.Vida           `json:"vida"`
	Riesgo           entity.Riesgo         `json:"riesgo"`
	Metadata         entity.Metadata       `json:"metadata"`
}

// EquipoListResponse listado acotado de equipos (máximo 50).
type EquipoListResponse struct {
	Items []EquipoResponse `json:"items"`
	Total int              `json:"total"`
}

// CreatedResponse respuesta mínima de creación.
type CreatedResponse struct {
	ID string `json:"id"`
}
