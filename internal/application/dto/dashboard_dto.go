package dto

import "github.com/shopspring/decimal"

// ConteoEstadoResponse equipos por estado del sistema.
type ConteoEstadoResponse struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
}

// ValorSedeResponse valor de adquisición acumulado por sede.
type ValorSedeResponse struct {
	Sede  string          `json:"sede"`
	Valor decimal.Decimal `json:"valor"`
}

// ResumenResponse resumen del tablero operativo.
type ResumenResponse struct {
	EquiposPorEstado []ConteoEstadoResponse `json:"equiposPorEstado"`
	ValorPorSede     []ValorSedeResponse    `json:"valorPorSede"`
	OrdenesAbiertas  int                    `json:"ordenesAbiertas"`
}
