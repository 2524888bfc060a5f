// Package workorder implementa la máquina de estados de las órdenes de trabajo
// (servicio de dominio puro, sin I/O).
//
// Camino normal:
//
//	ABIERTO → ASIGNADO → EN_PROCESO ⇄ ESPERA_REPUESTO → CERRADO
//
// Cualquier estado no terminal puede pasar a CERRADO o CANCELADO.
// CERRADO y CANCELADO son terminales: ninguna transición posterior es legal.
package workorder

import (
	"fmt"
	"time"

	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// IllegalTransitionError indica una transición no permitida por la tabla.
// El registro no se modifica.
type IllegalTransitionError struct {
	From entity.EstadoOrden
	To   entity.EstadoOrden
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transición ilegal: %s → %s", e.From, e.To)
}

// Payload datos adicionales que una transición puede requerir.
type Payload struct {
	AsignadoA         *entity.Tecnico     // requerido en → ASIGNADO
	DiagnosticadoPor  string              // opcional en → EN_PROCESO (PROPIO | TERCERO)
	ReparadoPor       string              // opcional en → EN_PROCESO (PROPIO | TERCERO)
	EstadoFinalEquipo entity.EstadoEquipo // requerido en → CERRADO
}

type edge struct {
	from entity.EstadoOrden
	to   entity.EstadoOrden
}

// transiciones tabla cerrada de transiciones legales. Los terminales
// (CERRADO, CANCELADO) no tienen aristas de salida.
var transiciones = map[edge]struct{}{
	{entity.OrdenAbierta, entity.OrdenAsignada}:          {},
	{entity.OrdenAsignada, entity.OrdenEnProceso}:        {},
	{entity.OrdenEnProceso, entity.OrdenEnProceso}:       {}, // reinicio de trabajo, idempotente
	{entity.OrdenEnProceso, entity.OrdenEsperaRepuesto}:  {},
	{entity.OrdenEsperaRepuesto, entity.OrdenEnProceso}:  {},
	{entity.OrdenAbierta, entity.OrdenCerrada}:           {},
	{entity.OrdenAsignada, entity.OrdenCerrada}:          {},
	{entity.OrdenEnProceso, entity.OrdenCerrada}:         {},
	{entity.OrdenEsperaRepuesto, entity.OrdenCerrada}:    {},
	{entity.OrdenAbierta, entity.OrdenCancelada}:         {},
	{entity.OrdenAsignada, entity.OrdenCancelada}:        {},
	{entity.OrdenEnProceso, entity.OrdenCancelada}:       {},
	{entity.OrdenEsperaRepuesto, entity.OrdenCancelada}:  {},
}

// EsLegal indica si la arista from→to está en la tabla.
func EsLegal(from, to entity.EstadoOrden) bool {
	_, ok := transiciones[edge{from, to}]
	return ok
}

// Transition aplica la transición sobre una COPIA de la orden y la devuelve;
// la orden original nunca se muta. El caller es responsable de persistir la
// copia con el chequeo optimista contra el estado previo.
func Transition(orden *entity.WorkOrder, destino entity.EstadoOrden, p Payload, actor entity.Actor, now time.Time) (*entity.WorkOrder, error) {
	if !destino.EsValido() {
		return nil, domain.NewValidationError(domain.FieldError{
			Field: "status", Reason: fmt.Sprintf("%q no es un estado de orden válido", string(destino)),
		})
	}
	if !EsLegal(orden.Status, destino) {
		return nil, &IllegalTransitionError{From: orden.Status, To: destino}
	}

	out := clonar(orden)

	switch destino {
	case entity.OrdenAsignada:
		if err := validarAsignacion(p); err != nil {
			return nil, err
		}
		out.Asignacion = &entity.Asignacion{
			AsignadoA:  *p.AsignadoA,
			AsignadoEn: now,
		}

	case entity.OrdenEnProceso:
		if out.Ejecucion == nil {
			out.Ejecucion = &entity.Ejecucion{IniciadoEn: now}
		}
		// IniciadoEn ya fijado: solo se completan los campos opcionales.
		if p.DiagnosticadoPor != "" {
			out.Ejecucion.DiagnosticadoPor = p.DiagnosticadoPor
		}
		if p.ReparadoPor != "" {
			out.Ejecucion.ReparadoPor = p.ReparadoPor
		}

	case entity.OrdenEsperaRepuesto:
		// sin payload adicional

	case entity.OrdenCerrada:
		if !p.EstadoFinalEquipo.EsValido() {
			return nil, domain.NewValidationError(domain.FieldError{
				Field: "cierre.estadoFinalEquipo", Reason: "requerido y debe ser un estado de equipo válido",
			})
		}
		resolucion := int64(now.Sub(out.Creacion.ReportadoEn).Seconds())
		inoperativo := resolucion
		if out.Asignacion != nil {
			inoperativo = int64(now.Sub(out.Asignacion.AsignadoEn).Seconds())
		}
		out.Cierre = &entity.Cierre{
			CerradoEn:                 now,
			EstadoFinalEquipo:         p.EstadoFinalEquipo,
			TiempoResolucionSegundos:  resolucion,
			TiempoInoperativoSegundos: inoperativo,
		}

	case entity.OrdenCancelada:
		// la orden queda congelada tal cual está
	}

	out.Status = destino
	out.Metadata.ActualizadoEn = now
	out.Metadata.ActualizadoPor = actor.UserID
	return out, nil
}

func validarAsignacion(p Payload) error {
	var faltan []domain.FieldError
	if p.AsignadoA == nil {
		return domain.NewValidationError(domain.FieldError{
			Field: "asignadoA", Reason: "requerido para asignar la orden",
		})
	}
	if p.AsignadoA.UserID == "" {
		faltan = append(faltan, domain.FieldError{Field: "asignadoA.userId", Reason: "requerido"})
	}
	if p.AsignadoA.Nombre == "" {
		faltan = append(faltan, domain.FieldError{Field: "asignadoA.nombre", Reason: "requerido"})
	}
	if p.AsignadoA.Tipo == "" {
		faltan = append(faltan, domain.FieldError{Field: "asignadoA.tipo", Reason: "requerido"})
	}
	if len(faltan) > 0 {
		return &domain.ValidationError{Fields: faltan}
	}
	return nil
}

// clonar copia la orden incluyendo los sub-registros, para que Transition
// nunca mute el valor recibido.
func clonar(o *entity.WorkOrder) *entity.WorkOrder {
	out := *o
	if o.Asignacion != nil {
		a := *o.Asignacion
		out.Asignacion = &a
	}
	if o.Ejecucion != nil {
		e := *o.Ejecucion
		e.Repuestos = append([]entity.Repuesto(nil), o.Ejecucion.Repuestos...)
		out.Ejecucion = &e
	}
	if o.Cierre != nil {
		c := *o.Cierre
		out.Cierre = &c
	}
	return &out
}
