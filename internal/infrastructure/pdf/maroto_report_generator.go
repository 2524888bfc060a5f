// Package pdf implementa la generación del informe de servicio de una orden
// de trabajo cerrada (el PDF referenciado por closure.reporteUrl).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe de servicio  │  N° de orden + fecha cierre │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: código IC / nombre / marca-modelo / ubicación      │
//	│  INCIDENTE: descripción, área, reportante                   │
//	│  EJECUCIÓN: técnico, causa de falla, metodología, repuestos │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CIERRE: estado final + tiempos de resolución/inoperatividad│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/jhoicas/Aurea-api/internal/application/report"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appreport.OrdenPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.OrdenPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerarReporteOrden genera el PDF del informe de servicio y devuelve sus bytes.
// equipo puede ser nil (referencia huérfana): se emite igual con los datos de la orden.
func (g *MarotoReportGenerator) GenerarReporteOrden(
	_ context.Context,
	orden *entity.WorkOrder,
	equipo *entity.Equipment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Servicio", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(orden))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipoRow(orden, equipo))
	m.AddRows(incidenteRow(orden))
	if orden.Ejecucion != nil {
		m.AddRows(ejecucionRows(orden)...)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(cierreRow(orden))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y número de orden + fecha de cierre (der).
func headerRow(orden *entity.WorkOrder) core.Row {
	fecha := "—"
	if orden.Cierre != nil {
		fecha = orden.Cierre.CerradoEn.Format("02/01/2006 15:04")
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("INFORME DE SERVICIO TÉCNICO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mantenimiento de equipos biomédicos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO "+string(orden.Tipo), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(orden.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Cierre: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// equipoRow: identificación y ubicación del equipo intervenido.
func equipoRow(orden *entity.WorkOrder, equipo *entity.Equipment) core.Row {
	detalle := "Código IC: " + orden.EquipoID
	ubicacion := ""
	if equipo != nil {
		detalle = fmt.Sprintf("Código IC: %s   |   %s   |   %s %s",
			equipo.ID,
			equipo.Identificacion.Nombre,
			equipo.Identificacion.Marca,
			equipo.Identificacion.Modelo,
		)
		ubicacion = fmt.Sprintf("Ubicación: %s — %s (nivel %s)",
			equipo.Localizacion.Sede,
			equipo.Localizacion.AreaClinica,
			nonEmpty(equipo.Localizacion.Nivel, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(detalle, props.Text{Size: 9, Top: 6}),
			text.New(ubicacion, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// incidenteRow: el reporte que abrió la orden.
func incidenteRow(orden *entity.WorkOrder) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("INCIDENTE REPORTADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(orden.Creacion.Descripcion, props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Área: %s   |   Reportado por: %s   |   %s",
				orden.Creacion.AreaIncidente,
				orden.Creacion.ReportadoPor.Nombre,
				orden.Creacion.ReportadoEn.Format("02/01/2006 15:04"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// ejecucionRows: técnico asignado, causa de falla, metodología y repuestos.
func ejecucionRows(orden *entity.WorkOrder) []core.Row {
	tecnico := "—"
	if orden.Asignacion != nil {
		tecnico = fmt.Sprintf("%s (%s)", orden.Asignacion.AsignadoA.Nombre, orden.Asignacion.AsignadoA.Tipo)
	}
	rows := []core.Row{
		row.New(16).Add(
			col.New(12).Add(
				text.New("EJECUCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New("Técnico: "+tecnico, props.Text{Size: 9, Top: 6}),
				text.New(fmt.Sprintf("Causa de falla: %s   |   Metodología: %s",
					nonEmpty(orden.Ejecucion.CausaFalla, "—"),
					nonEmpty(orden.Ejecucion.MetodologiaReparacion, "—"),
				), props.Text{Size: 8, Top: 12, Color: colorGray}),
			),
		),
	}
	for _, rep := range orden.Ejecucion.Repuestos {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("  • %s (%s) x%d", rep.Nombre, rep.Codigo, rep.Cantidad),
					props.Text{Size: 8, Color: colorGray}),
			),
		))
	}
	return rows
}

// cierreRow: estado final del equipo y tiempos calculados al cerrar.
func cierreRow(orden *entity.WorkOrder) core.Row {
	if orden.Cierre == nil {
		return row.New(6)
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("ESTADO FINAL DEL EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(string(orden.Cierre.EstadoFinalEquipo), props.Text{Style: fontstyle.Bold, Size: 11, Top: 7}),
		),
		col.New(6).Add(
			text.New("TIEMPOS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Resolución: "+formatoDuracion(orden.Cierre.TiempoResolucionSegundos),
				props.Text{Size: 9, Align: align.Right, Top: 7}),
			text.New("Inoperatividad: "+formatoDuracion(orden.Cierre.TiempoInoperativoSegundos),
				props.Text{Size: 9, Align: align.Right, Top: 12}),
		),
	)
}

func formatoDuracion(segundos int64) string {
	return (time.Duration(segundos) * time.Second).String()
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
