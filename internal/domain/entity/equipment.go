package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoEquipo es el estado del sistema de un equipo biomédico (estadoSistema).
type EstadoEquipo string

const (
	EquipoOperativo       EstadoEquipo = "OPERATIVO"
	EquipoInoperativo     EstadoEquipo = "INOPERATIVO"
	EquipoEnMantenimiento EstadoEquipo = "EN_MANTENIMIENTO"
	EquipoStandby         EstadoEquipo = "STANDBY"
	EquipoObsoleto        EstadoEquipo = "OBSOLETO"
	EquipoEnBaja          EstadoEquipo = "EN_BAJA"
	EquipoBaja            EstadoEquipo = "BAJA"
)

// EstadosEquipo lista cerrada de estados válidos.
var EstadosEquipo = []EstadoEquipo{
	EquipoOperativo, EquipoInoperativo, EquipoEnMantenimiento,
	EquipoStandby, EquipoObsoleto, EquipoEnBaja, EquipoBaja,
}

// EsValido verifica pertenencia al enum.
func (e EstadoEquipo) EsValido() bool {
	for _, s := range EstadosEquipo {
		if e == s {
			return true
		}
	}
	return false
}

// Pertenencia del equipo según modalidad de ingreso.
type Pertenencia string

const (
	PertenenciaPropio   Pertenencia = "PROPIO"
	PertenenciaTercero  Pertenencia = "TERCERO"
	PertenenciaComodato Pertenencia = "COMODATO"
)

// Identificacion datos de placa del equipo.
type Identificacion struct {
	Nombre     string `json:"nombre"`
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	Serie      string `json:"serie,omitempty"`
	CodigoAF   string `json:"codigoAF,omitempty"`
	TipoEquipo string `json:"tipoEquipo,omitempty"`
}

// Localizacion ubicación física del equipo dentro del hospital.
type Localizacion struct {
	AreaClinica       string `json:"areaClinica"` // UPSS
	ReferenciaArea    string `json:"referenciaArea,omitempty"`
	Nivel             string `json:"nivel,omitempty"` // piso
	CentroCosto       string `json:"centroCosto,omitempty"`
	CentroCostoNombre string `json:"centroCostoNombre,omitempty"`
	Sede              string `json:"sede"`
}

// Adquisicion datos administrativos de compra/ingreso.
type Adquisicion struct {
	Pertenencia       Pertenencia      `json:"pertenencia,omitempty"`
	Modalidad         string           `json:"modalidad,omitempty"`
	Proveedor         string           `json:"proveedor,omitempty"`
	OrdenCompra       string           `json:"ordenCompra,omitempty"`
	FechaCompra       *time.Time       `json:"fechaCompra,omitempty"`
	PrecioCompra      *decimal.Decimal `json:"precioCompra,omitempty"`
	Moneda            string           `json:"moneda,omitempty"` // USD | PEN
	TipoCambio        *decimal.Decimal `json:"tipoCambio,omitempty"`
	RegistroSanitario string           `json:"registroSanitario,omitempty"`
}

// Vida ciclo de vida del activo.
type Vida struct {
	AnioFabricacion int        `json:"anioFabricacion,omitempty"`
	FechaRecepcion  *time.Time `json:"fechaRecepcion,omitempty"`
	GarantiaInicio  *time.Time `json:"garantiaInicio,omitempty"`
	GarantiaAnios   int        `json:"garantiaAnios,omitempty"`
	VidaUtilAnios   int        `json:"vidaUtilAnios,omitempty"`
	FechaBaja       *time.Time `json:"fechaBaja,omitempty"`
}

// Riesgo clasificación de criticidad del equipo.
type Riesgo struct {
	Criticidad   string `json:"criticidad,omitempty"` // ALTO | MEDIO | BAJO
	CriticidadIC string `json:"criticidadIC,omitempty"`
}

// Metadata identidad y timestamps de auditoría. Toda escritura refresca
// ActualizadoEn/ActualizadoPor.
type Metadata struct {
	CreadoEn       time.Time `json:"creadoEn"`
	CreadoPor      string    `json:"creadoPor"`
	ActualizadoEn  time.Time `json:"actualizadoEn"`
	ActualizadoPor string    `json:"actualizadoPor"`
}

// Equipment un activo biomédico inventariado. La clave primaria es el
// CÓDIGO IC asignado externamente; nunca se elimina físicamente, la baja
// es lógica (EstadoSistema=BAJA + Vida.FechaBaja).
type Equipment struct {
	ID               string // CÓDIGO IC
	Identificacion   Identificacion
	EstadoSistema    EstadoEquipo
	CondicionIngreso string
	Localizacion     Localizacion
	Adquisicion      Adquisicion
	Vida             Vida
	Riesgo           Riesgo
	Metadata         Metadata
}

// DadoDeBaja indica si el equipo fue retirado del inventario activo.
func (e *Equipment) DadoDeBaja() bool {
	return e.EstadoSistema == EquipoBaja
}
