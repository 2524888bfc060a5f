package repository

import (
	"context"

	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para WorkOrder (DIP).
type WorkOrderRepository interface {
	Create(ctx context.Context, orden *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	// ActualizarTransicion persiste el resultado de una transición con chequeo
	// optimista: la escritura solo aplica si el status persistido sigue siendo
	// esperado. Si otro caller ganó la carrera devuelve ConcurrencyConflictError.
	ActualizarTransicion(ctx context.Context, orden *entity.WorkOrder, esperado entity.EstadoOrden) error
	// ActualizarDetalle escribe los campos no gobernados por la máquina de
	// estados (ejecución, satisfacción, URL del informe). Nunca toca status,
	// pero la escritura está condicionada al status leído: si una transición
	// se coló en medio devuelve ConcurrencyConflictError.
	ActualizarDetalle(ctx context.Context, orden *entity.WorkOrder, esperado entity.EstadoOrden) error
	ListAbiertas(ctx context.Context, limit int) ([]*entity.WorkOrder, error)
	ListByEquipo(ctx context.Context, equipoID string, limit int) ([]*entity.WorkOrder, error)
}
