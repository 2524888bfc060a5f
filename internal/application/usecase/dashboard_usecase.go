package usecase

import (
	"context"

	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
)

// DashboardUseCase resumen agregado para el tablero operativo.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Resumen arma el resumen: equipos por estado, valor de adquisición por sede
// y cantidad de órdenes abiertas.
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	porEstado, err := uc.repo.ConteoEquiposPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	porSede, err := uc.repo.ValorAdquisicionPorSede(ctx)
	if err != nil {
		return nil, err
	}
	abiertas, err := uc.repo.ConteoOrdenesAbiertas(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenResponse{OrdenesAbiertas: abiertas}
	for _, c := range porEstado {
		resp.EquiposPorEstado = append(resp.EquiposPorEstado, dto.ConteoEstadoResponse{
			Estado:   string(c.Estado),
			Cantidad: c.Cantidad,
		})
	}
	for _, v := range porSede {
		resp.ValorPorSede = append(resp.ValorPorSede, dto.ValorSedeResponse{
			Sede:  v.Sede,
			Valor: v.Valor,
		})
	}
	return resp, nil
}
