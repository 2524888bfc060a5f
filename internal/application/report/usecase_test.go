package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Aurea-api/internal/application/report"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// Fakes mínimos: solo GetByID importa aquí.

type ordenesStub struct {
	orden *entity.WorkOrder
}

func (s *ordenesStub) Create(context.Context, *entity.WorkOrder) error { return nil }
func (s *ordenesStub) GetByID(context.Context, string) (*entity.WorkOrder, error) {
	return s.orden, nil
}
func (s *ordenesStub) ActualizarTransicion(context.Context, *entity.WorkOrder, entity.EstadoOrden) error {
	return nil
}
func (s *ordenesStub) ActualizarDetalle(context.Context, *entity.WorkOrder, entity.EstadoOrden) error {
	return nil
}
func (s *ordenesStub) ListAbiertas(context.Context, int) ([]*entity.WorkOrder, error) {
	return nil, nil
}
func (s *ordenesStub) ListByEquipo(context.Context, string, int) ([]*entity.WorkOrder, error) {
	return nil, nil
}

type equiposStub struct {
	equipo *entity.Equipment
}

func (s *equiposStub) Create(context.Context, *entity.Equipment) error { return nil }
func (s *equiposStub) GetByID(context.Context, string) (*entity.Equipment, error) {
	return s.equipo, nil
}
func (s *equiposStub) Update(context.Context, *entity.Equipment) error { return nil }
func (s *equiposStub) ActualizarEstadoSistema(context.Context, string, entity.EstadoEquipo, string, time.Time) error {
	return nil
}
func (s *equiposStub) List(context.Context, int) ([]*entity.Equipment, error) { return nil, nil }

type generadorStub struct {
	llamadoConEquipoNil bool
}

func (g *generadorStub) GenerarReporteOrden(_ context.Context, _ *entity.WorkOrder, equipo *entity.Equipment) ([]byte, error) {
	g.llamadoConEquipoNil = equipo == nil
	return []byte("%PDF-1.7"), nil
}

func ordenCerrada() *entity.WorkOrder {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return &entity.WorkOrder{
		ID:       "ot-1",
		EquipoID: "IC-0001",
		Tipo:     entity.OrdenCorrectivo,
		Status:   entity.OrdenCerrada,
		Creacion: entity.Creacion{ReportadoEn: now, Descripcion: "no enciende", AreaIncidente: "UCI"},
		Cierre: &entity.Cierre{
			CerradoEn:                now.Add(time.Hour),
			EstadoFinalEquipo:        entity.EquipoOperativo,
			TiempoResolucionSegundos: 3600,
		},
	}
}

func TestGenerarPDF_SoloOrdenesCerradas(t *testing.T) {
	orden := ordenCerrada()
	orden.Status = entity.OrdenEnProceso
	orden.Cierre = nil
	uc := report.NewReporteUseCase(&ordenesStub{orden: orden}, &equiposStub{}, &generadorStub{})

	_, err := uc.GenerarPDF(context.Background(), "ot-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden sin cerrar no tiene informe de servicio")
}

func TestGenerarPDF_OrdenInexistente(t *testing.T) {
	uc := report.NewReporteUseCase(&ordenesStub{}, &equiposStub{}, &generadorStub{})

	_, err := uc.GenerarPDF(context.Background(), "ot-nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerarPDF_EquipoHuerfanoNoBloquea(t *testing.T) {
	gen := &generadorStub{}
	uc := report.NewReporteUseCase(&ordenesStub{orden: ordenCerrada()}, &equiposStub{}, gen)

	pdf, err := uc.GenerarPDF(context.Background(), "ot-1")
	require.NoError(t, err, "la referencia huérfana no impide el informe")
	assert.NotEmpty(t, pdf)
	assert.True(t, gen.llamadoConEquipoNil, "el generador recibe equipo nil y debe tolerarlo")
}
