package repository

import (
	"context"

	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ConteoEstado cantidad de equipos en un estado del sistema.
type ConteoEstado struct {
	Estado   entity.EstadoEquipo
	Cantidad int
}

// ValorSede valor de adquisición acumulado por sede.
type ValorSede struct {
	Sede  string
	Valor decimal.Decimal
}

// DashboardRepository consultas agregadas para el tablero operativo.
type DashboardRepository interface {
	ConteoEquiposPorEstado(ctx context.Context) ([]ConteoEstado, error)
	ValorAdquisicionPorSede(ctx context.Context) ([]ValorSede, error)
	ConteoOrdenesAbiertas(ctx context.Context) (int, error)
}
