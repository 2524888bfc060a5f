package entity

import "time"

// TipoOrden clase de intervención sobre el equipo.
type TipoOrden string

const (
	OrdenCorrectivo  TipoOrden = "CORRECTIVO"
	OrdenPreventivo  TipoOrden = "PREVENTIVO"
	OrdenCalibracion TipoOrden = "CALIBRACION"
	OrdenInspeccion  TipoOrden = "INSPECCION"
	OrdenDiagnostico TipoOrden = "DIAGNOSTICO"
)

// TiposOrden lista cerrada de tipos válidos.
var TiposOrden = []TipoOrden{
	OrdenCorrectivo, OrdenPreventivo, OrdenCalibracion, OrdenInspeccion, OrdenDiagnostico,
}

// EsValido verifica pertenencia al enum.
func (t TipoOrden) EsValido() bool {
	for _, v := range TiposOrden {
		if t == v {
			return true
		}
	}
	return false
}

// EstadoOrden estado del ciclo de vida de una orden de trabajo.
type EstadoOrden string

const (
	OrdenAbierta        EstadoOrden = "ABIERTO"
	OrdenAsignada       EstadoOrden = "ASIGNADO"
	OrdenEnProceso      EstadoOrden = "EN_PROCESO"
	OrdenEsperaRepuesto EstadoOrden = "ESPERA_REPUESTO"
	OrdenCerrada        EstadoOrden = "CERRADO"
	OrdenCancelada      EstadoOrden = "CANCELADO"
)

// EstadosOrden lista cerrada de estados válidos.
var EstadosOrden = []EstadoOrden{
	OrdenAbierta, OrdenAsignada, OrdenEnProceso, OrdenEsperaRepuesto, OrdenCerrada, OrdenCancelada,
}

// EsValido verifica pertenencia al enum.
func (e EstadoOrden) EsValido() bool {
	for _, s := range EstadosOrden {
		if e == s {
			return true
		}
	}
	return false
}

// EsTerminal indica si el estado no admite más transiciones.
func (e EstadoOrden) EsTerminal() bool {
	return e == OrdenCerrada || e == OrdenCancelada
}

// Actor identidad de quien ejecuta una acción sobre la orden.
type Actor struct {
	UserID string `json:"userId"`
	Nombre string `json:"nombre"`
}

// Tecnico técnico asignado a la orden; Tipo distingue personal propio de terceros.
type Tecnico struct {
	UserID string `json:"userId"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // INTERNO | TERCERO
}

// Repuesto repuesto consumido durante la ejecución.
type Repuesto struct {
	Nombre   string `json:"nombre"`
	Codigo   string `json:"codigo"`
	Cantidad int    `json:"cantidad"`
}

// Creacion registro del reporte inicial. Siempre presente.
type Creacion struct {
	ReportadoEn   time.Time `json:"reportadoEn"`
	ReportadoPor  Actor     `json:"reportadoPor"`
	Descripcion   string    `json:"descripcion"`
	AreaIncidente string    `json:"areaIncidente"`
}

// Asignacion registro de la asignación de técnico.
type Asignacion struct {
	AsignadoA  Tecnico   `json:"asignadoA"`
	AsignadoEn time.Time `json:"asignadoEn"`
}

// Ejecucion registro del trabajo en curso. IniciadoEn se fija una sola vez:
// reiniciar el trabajo no lo sobrescribe.
type Ejecucion struct {
	IniciadoEn            time.Time  `json:"iniciadoEn"`
	DiagnosticadoPor      string     `json:"diagnosticadoPor,omitempty"` // PROPIO | TERCERO
	ReparadoPor           string     `json:"reparadoPor,omitempty"`      // PROPIO | TERCERO
	CausaFalla            string     `json:"causaFalla,omitempty"`
	MetodologiaReparacion string     `json:"metodologiaReparacion,omitempty"`
	Repuestos             []Repuesto `json:"repuestos,omitempty"`
}

// Cierre registro del cierre con los tiempos calculados.
type Cierre struct {
	CerradoEn                 time.Time    `json:"cerradoEn"`
	EstadoFinalEquipo         EstadoEquipo `json:"estadoFinalEquipo"`
	ReporteURL                string       `json:"reporteUrl,omitempty"`
	Satisfaccion              int          `json:"satisfaccion,omitempty"` // 1..5
	TiempoResolucionSegundos  int64        `json:"tiempoResolucionSegundos"`
	TiempoInoperativoSegundos int64        `json:"tiempoInoperativoSegundos"`
}

// WorkOrder una orden de trabajo (ticket) contra un equipo.
// Invariantes: Cierre presente si y solo si Status==CERRADO; Asignacion presente desde
// ASIGNADO en adelante en el camino normal; CERRADO y CANCELADO son terminales.
// Las órdenes nunca se eliminan: cerradas/canceladas quedan como historial.
type WorkOrder struct {
	ID         string
	EquipoID   string // CÓDIGO IC del equipo relacionado
	Tipo       TipoOrden
	Status     EstadoOrden
	Creacion   Creacion
	Asignacion *Asignacion
	Ejecucion  *Ejecucion
	Cierre     *Cierre
	Metadata   Metadata
}
