package dto

import (
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// CreateOrdenRequest payload para reportar un incidente (crear orden de trabajo).
// El reportante autenticado sale del token; su nombre legible viene en el payload.
type CreateOrdenRequest struct {
	EquipoID           string `json:"equipmentId" validate:"required"`
	Tipo               string `json:"tipo,omitempty" validate:"omitempty,oneof=CORRECTIVO PREVENTIVO CALIBRACION INSPECCION DIAGNOSTICO"`
	Descripcion        string `json:"descripcion" validate:"required"`
	AreaIncidente      string `json:"areaIncidente" validate:"required"`
	ReportadoPorNombre string `json:"reportadoPorNombre" validate:"required"`
}

// TecnicoRequest técnico a asignar. Los requeridos los valida la máquina de
// estados para poder reportar todos los faltantes juntos.
type TecnicoRequest struct {
	UserID string `json:"userId"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // INTERNO | TERCERO
}

// TransicionRequest payload de una transición de estado.
type TransicionRequest struct {
	Destino           string          `json:"destino" validate:"required"`
	AsignadoA         *TecnicoRequest `json:"asignadoA,omitempty"`
	DiagnosticadoPor  string          `json:"diagnosticadoPor,omitempty" validate:"omitempty,oneof=PROPIO TERCERO"`
	ReparadoPor       string          `json:"reparadoPor,omitempty" validate:"omitempty,oneof=PROPIO TERCERO"`
	EstadoFinalEquipo string          `json:"estadoFinalEquipo,omitempty"`
}

// UpdateOrdenRequest actualización parcial de campos NO gobernados por la
// máquina de estados (allow-list explícito; status jamás).
type UpdateOrdenRequest struct {
	DiagnosticadoPor      *string           `json:"diagnosticadoPor,omitempty" validate:"omitempty,oneof=PROPIO TERCERO"`
	ReparadoPor           *string           `json:"reparadoPor,omitempty" validate:"omitempty,oneof=PROPIO TERCERO"`
	CausaFalla            *string           `json:"causaFalla,omitempty"`
	MetodologiaReparacion *string           `json:"metodologiaReparacion,omitempty"`
	Repuestos             []entity.Repuesto `json:"repuestos,omitempty"`
	Satisfaccion          *int              `json:"satisfaccion,omitempty" validate:"omitempty,min=1,max=5"`
	ReporteURL            *string           `json:"reporteUrl,omitempty"`
}

// OrdenResponse representación de una orden de trabajo en respuestas.
type OrdenResponse struct {
	ID         string             `json:"id"`
	EquipoID   string             `json:"equipmentId"`
	Tipo       entity.TipoOrden   `json:"tipo"`
	Status     entity.EstadoOrden `json:"status"`
	Creacion   entity.Creacion    `json:"creacion"`
	Asignacion *entity.Asignacion `json:"asignacion,omitempty"`
	Ejecucion  *entity.Ejecucion  `json:"ejecucion,omitempty"`
	Cierre     *entity.Cierre     `json:"cierre,omitempty"`
	Metadata   entity.Metadata    `json:"metadata"`
}

// TransicionResponse orden actualizada tras una transición. ProyeccionPendiente
// es true si el cierre se aplicó pero la propagación al equipo falló (se
// reintenta fuera de banda; el cierre en sí queda confirmado).
type TransicionResponse struct {
	OrdenResponse
	ProyeccionPendiente bool `json:"proyeccionPendiente,omitempty"`
}

// OrdenListResponse listado de órdenes.
type OrdenListResponse struct {
	Items []OrdenResponse `json:"items"`
	Total int             `json:"total"`
}
