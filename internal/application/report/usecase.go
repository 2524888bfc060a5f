package report

import (
	"context"

	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
)

// OrdenPDFGenerator puerto del generador del informe de servicio (PDF).
type OrdenPDFGenerator interface {
	GenerarReporteOrden(ctx context.Context, orden *entity.WorkOrder, equipo *entity.Equipment) ([]byte, error)
}

// ReporteUseCase genera el informe de servicio de una orden cerrada.
type ReporteUseCase struct {
	ordenes repository.WorkOrderRepository
	equipos repository.EquipmentRepository
	gen     OrdenPDFGenerator
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(ordenes repository.WorkOrderRepository, equipos repository.EquipmentRepository, gen OrdenPDFGenerator) *ReporteUseCase {
	return &ReporteUseCase{ordenes: ordenes, equipos: equipos, gen: gen}
}

// GenerarPDF devuelve los bytes del informe. Solo las órdenes CERRADAS tienen
// informe de servicio.
func (uc *ReporteUseCase) GenerarPDF(ctx context.Context, ordenID string) ([]byte, error) {
	orden, err := uc.ordenes.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Status != entity.OrdenCerrada {
		return nil, domain.ErrConflict
	}
	// El equipo puede faltar (órdenes históricas con referencia huérfana); el
	// informe se genera igual con los datos de la orden.
	equipo, err := uc.equipos.GetByID(ctx, orden.EquipoID)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerarReporteOrden(ctx, orden, equipo)
}
