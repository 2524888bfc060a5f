package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Aurea-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas sobre equipos y órdenes para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// ConteoEquiposPorEstado equipos agrupados por estado_sistema.
func (r *DashboardRepo) ConteoEquiposPorEstado(ctx context.Context) ([]repository.ConteoEstado, error) {
	query := `SELECT estado_sistema, COUNT(*) FROM equipos GROUP BY estado_sistema ORDER BY estado_sistema`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("conteo por estado: %w", err)
	}
	defer rows.Close()
	var list []repository.ConteoEstado
	for rows.Next() {
		var c repository.ConteoEstado
		if err := rows.Scan(&c.Estado, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ValorAdquisicionPorSede suma el precio de compra (NUMERIC vía codec
// shopspring/decimal) agrupado por sede.
func (r *DashboardRepo) ValorAdquisicionPorSede(ctx context.Context) ([]repository.ValorSede, error) {
	query := `
		SELECT localizacion->>'sede' AS sede,
		       COALESCE(SUM((adquisicion->>'precioCompra')::numeric), 0)
		FROM equipos
		GROUP BY 1 ORDER BY 1`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("valor por sede: %w", err)
	}
	defer rows.Close()
	var list []repository.ValorSede
	for rows.Next() {
		var v repository.ValorSede
		if err := rows.Scan(&v.Sede, &v.Valor); err != nil {
			return nil, fmt.Errorf("scan valor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ConteoOrdenesAbiertas cantidad de órdenes en estado ABIERTO.
func (r *DashboardRepo) ConteoOrdenesAbiertas(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ordenes_trabajo WHERE status = 'ABIERTO'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("conteo órdenes abiertas: %w", err)
	}
	return n, nil
}
