package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
	"github.com/jhoicas/Aurea-api/internal/domain/workorder"
	"github.com/jhoicas/Aurea-api/pkg/logger"
	"github.com/jhoicas/Aurea-api/pkg/validation"
)

// WorkOrderUseCase casos de uso del ciclo de vida de órdenes de trabajo.
// Todo cambio de status pasa por Transicionar (máquina de estados + chequeo
// optimista); ActualizarDetalle solo toca campos fuera de ese ciclo.
type WorkOrderUseCase struct {
	ordenes repository.WorkOrderRepository
	equipos repository.EquipmentRepository
	val     *validation.Validator
	log     *logger.Logger
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(
	ordenes repository.WorkOrderRepository,
	equipos repository.EquipmentRepository,
	val *validation.Validator,
	log *logger.Logger,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{ordenes: ordenes, equipos: equipos, val: val, log: log}
}

// Create reporta un incidente: crea la orden en ABIERTO con el registro de
// creación sellado. El equipo referenciado debe existir y no estar de baja.
func (uc *WorkOrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrdenRequest) (*dto.OrdenResponse, error) {
	if err := uc.val.Struct(in); err != nil {
		return nil, err
	}
	equipo, err := uc.equipos.GetByID(ctx, in.EquipoID)
	if err != nil {
		return nil, err
	}
	if equipo == nil {
		return nil, domain.ErrNotFound
	}
	if equipo.DadoDeBaja() {
		return nil, domain.ErrEquipoDadoDeBaja
	}

	tipo := entity.TipoOrden(in.Tipo)
	if tipo == "" {
		tipo = entity.OrdenCorrectivo
	}

	now := time.Now()
	orden := &entity.WorkOrder{
		ID:       uuid.New().String(),
		EquipoID: in.EquipoID,
		Tipo:     tipo,
		Status:   entity.OrdenAbierta,
		Creacion: entity.Creacion{
			ReportadoEn:   now,
			ReportadoPor:  entity.Actor{UserID: actor.UserID, Nombre: in.ReportadoPorNombre},
			Descripcion:   in.Descripcion,
			AreaIncidente: in.AreaIncidente,
		},
		Metadata: entity.Metadata{
			CreadoEn:       now,
			CreadoPor:      actor.UserID,
			ActualizadoEn:  now,
			ActualizadoPor: actor.UserID,
		},
	}
	if err := uc.ordenes.Create(ctx, orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// Transicionar aplica una transición de estado. La escritura lleva el chequeo
// optimista contra el estado leído; si otro caller ganó la carrera devuelve
// ConcurrencyConflictError y el registro queda intacto.
//
// En un cierre, la propagación del estado final al equipo es una segunda
// escritura independiente: si falla, el cierre YA está confirmado. Se reporta
// por el log y con ProyeccionPendiente, nunca se revierte.
func (uc *WorkOrderUseCase) Transicionar(ctx context.Context, actor entity.Actor, id string, in dto.TransicionRequest) (*dto.TransicionResponse, error) {
	if err := uc.val.Struct(in); err != nil {
		return nil, err
	}
	orden, err := uc.ordenes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}

	payload := workorder.Payload{
		DiagnosticadoPor:  in.DiagnosticadoPor,
		ReparadoPor:       in.ReparadoPor,
		EstadoFinalEquipo: entity.EstadoEquipo(in.EstadoFinalEquipo),
	}
	if in.AsignadoA != nil {
		payload.AsignadoA = &entity.Tecnico{
			UserID: in.AsignadoA.UserID,
			Nombre: in.AsignadoA.Nombre,
			Tipo:   in.AsignadoA.Tipo,
		}
	}

	now := time.Now()
	nueva, err := workorder.Transition(orden, entity.EstadoOrden(in.Destino), payload, actor, now)
	if err != nil {
		return nil, err
	}
	if err := uc.ordenes.ActualizarTransicion(ctx, nueva, orden.Status); err != nil {
		return nil, err
	}

	resp := &dto.TransicionResponse{OrdenResponse: *toOrdenResponse(nueva)}
	if nueva.Status == entity.OrdenCerrada {
		if err := uc.equipos.ActualizarEstadoSistema(ctx, nueva.EquipoID, nueva.Cierre.EstadoFinalEquipo, actor.UserID, now); err != nil {
			uc.log.Error().
				Err(err).
				Str("orden_id", nueva.ID).
				Str("equipo_id", nueva.EquipoID).
				Str("estado_final", string(nueva.Cierre.EstadoFinalEquipo)).
				Msg("cierre confirmado pero la proyección al equipo falló")
			resp.ProyeccionPendiente = true
		}
	}
	return resp, nil
}

// GetByID obtiene una orden por ID. Devuelve nil si no existe.
func (uc *WorkOrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, nil
	}
	return toOrdenResponse(orden), nil
}

// ListAbiertas devuelve las órdenes en ABIERTO, más recientes primero (≤50).
func (uc *WorkOrderUseCase) ListAbiertas(ctx context.Context) (*dto.OrdenListResponse, error) {
	list, err := uc.ordenes.ListAbiertas(ctx, listadoMax)
	if err != nil {
		return nil, err
	}
	return toOrdenListResponse(list), nil
}

// ListByEquipo devuelve el historial de órdenes de un equipo (vista expandible
// del tablero), más recientes primero.
func (uc *WorkOrderUseCase) ListByEquipo(ctx context.Context, equipoID string) (*dto.OrdenListResponse, error) {
	list, err := uc.ordenes.ListByEquipo(ctx, equipoID, listadoMax)
	if err != nil {
		return nil, err
	}
	return toOrdenListResponse(list), nil
}

// ActualizarDetalle actualiza campos fuera de la máquina de estados.
// Sobre una orden CANCELADA no se permite nada; sobre una CERRADA solo
// satisfacción y URL del informe; el resto exige ejecución iniciada.
// La escritura lleva el mismo chequeo optimista que las transiciones: si
// otro caller transicionó la orden en medio devuelve ConcurrencyConflictError.
func (uc *WorkOrderUseCase) ActualizarDetalle(ctx context.Context, actor entity.Actor, id string, in dto.UpdateOrdenRequest) (*dto.OrdenResponse, error) {
	if err := uc.val.Struct(in); err != nil {
		return nil, err
	}
	orden, err := uc.ordenes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}

	tieneDetalleEjecucion := in.DiagnosticadoPor != nil || in.ReparadoPor != nil ||
		in.CausaFalla != nil || in.MetodologiaReparacion != nil || len(in.Repuestos) > 0
	tieneDetalleCierre := in.Satisfaccion != nil || in.ReporteURL != nil

	switch orden.Status {
	case entity.OrdenCancelada:
		return nil, domain.ErrConflict
	case entity.OrdenCerrada:
		if tieneDetalleEjecucion {
			return nil, domain.ErrConflict
		}
	default:
		if tieneDetalleCierre {
			return nil, domain.NewValidationError(domain.FieldError{
				Field: "cierre", Reason: "satisfacción y reporteUrl solo aplican a órdenes cerradas",
			})
		}
		if tieneDetalleEjecucion && orden.Ejecucion == nil {
			return nil, domain.NewValidationError(domain.FieldError{
				Field: "ejecucion", Reason: "la orden aún no tiene ejecución iniciada",
			})
		}
	}

	if tieneDetalleEjecucion {
		if in.DiagnosticadoPor != nil {
			orden.Ejecucion.DiagnosticadoPor = *in.DiagnosticadoPor
		}
		if in.ReparadoPor != nil {
			orden.Ejecucion.ReparadoPor = *in.ReparadoPor
		}
		if in.CausaFalla != nil {
			orden.Ejecucion.CausaFalla = *in.CausaFalla
		}
		if in.MetodologiaReparacion != nil {
			orden.Ejecucion.MetodologiaReparacion = *in.MetodologiaReparacion
		}
		if len(in.Repuestos) > 0 {
			orden.Ejecucion.Repuestos = in.Repuestos
		}
	}
	if tieneDetalleCierre {
		if in.Satisfaccion != nil {
			orden.Cierre.Satisfaccion = *in.Satisfaccion
		}
		if in.ReporteURL != nil {
			orden.Cierre.ReporteURL = *in.ReporteURL
		}
	}
	orden.Metadata.ActualizadoEn = time.Now()
	orden.Metadata.ActualizadoPor = actor.UserID

	if err := uc.ordenes.ActualizarDetalle(ctx, orden, orden.Status); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

func toOrdenResponse(o *entity.WorkOrder) *dto.OrdenResponse {
	if o == nil {
		return nil
	}
	return &dto.OrdenResponse{
		ID:         o.ID,
		EquipoID:   o.EquipoID,
		Tipo:       o.Tipo,
		Status:     o.Status,
		Creacion:   o.Creacion,
		Asignacion: o.Asignacion,
		Ejecucion:  o.Ejecucion,
		Cierre:     o.Cierre,
		Metadata:   o.Metadata,
	}
}

func toOrdenListResponse(list []*entity.WorkOrder) *dto.OrdenListResponse {
	items := make([]dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrdenResponse(o))
	}
	return &dto.OrdenListResponse{Items: items, Total: len(items)}
}
