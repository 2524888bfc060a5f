package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/workorder"
	"github.com/jhoicas/Aurea-api/pkg/logger"
	"github.com/jhoicas/Aurea-api/pkg/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fake de órdenes replica el contrato del repositorio
// real: la escritura de una transición es condicional al status persistido,
// bajo mutex, para que los tests de concurrencia sean deterministas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrdenRepo struct {
	mu      sync.Mutex
	ordenes map[string]*entity.WorkOrder
	// trasLeer se dispara una única vez tras la siguiente lectura, fuera del
	// mutex, para intercalar una escritura entre lectura y escritura del caller.
	trasLeer func()
}

func newFakeOrdenRepo() *fakeOrdenRepo {
	return &fakeOrdenRepo{ordenes: make(map[string]*entity.WorkOrder)}
}

func (f *fakeOrdenRepo) Create(_ context.Context, orden *entity.WorkOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *orden
	f.ordenes[orden.ID] = &copia
	return nil
}

func (f *fakeOrdenRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	f.mu.Lock()
	o, ok := f.ordenes[id]
	var copia entity.WorkOrder
	if ok {
		copia = *o
	}
	hook := f.trasLeer
	f.trasLeer = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &copia, nil
}

func (f *fakeOrdenRepo) ActualizarTransicion(_ context.Context, orden *entity.WorkOrder, esperado entity.EstadoOrden) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actual, ok := f.ordenes[orden.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if actual.Status != esperado {
		return &domain.ConcurrencyConflictError{ID: orden.ID, EstadoEsperado: string(esperado)}
	}
	copia := *orden
	f.ordenes[orden.ID] = &copia
	return nil
}

func (f *fakeOrdenRepo) ActualizarDetalle(_ context.Context, orden *entity.WorkOrder, esperado entity.EstadoOrden) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actual, ok := f.ordenes[orden.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if actual.Status != esperado {
		return &domain.ConcurrencyConflictError{ID: orden.ID, EstadoEsperado: string(esperado)}
	}
	copia := *orden
	f.ordenes[orden.ID] = &copia
	return nil
}

func (f *fakeOrdenRepo) ListAbiertas(_ context.Context, limit int) ([]*entity.WorkOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.WorkOrder
	for _, o := range f.ordenes {
		if o.Status == entity.OrdenAbierta && len(out) < limit {
			copia := *o
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeOrdenRepo) ListByEquipo(_ context.Context, equipoID string, limit int) ([]*entity.WorkOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.WorkOrder
	for _, o := range f.ordenes {
		if o.EquipoID == equipoID && len(out) < limit {
			copia := *o
			out = append(out, &copia)
		}
	}
	return out, nil
}

type fakeEquipoRepo struct {
	mu              sync.Mutex
	equipos         map[string]*entity.Equipment
	fallaProyeccion bool
}

func newFakeEquipoRepo(equipos ...*entity.Equipment) *fakeEquipoRepo {
	f := &fakeEquipoRepo{equipos: make(map[string]*entity.Equipment)}
	for _, e := range equipos {
		copia := *e
		f.equipos[e.ID] = &copia
	}
	return f
}

func (f *fakeEquipoRepo) Create(_ context.Context, e *entity.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *e
	f.equipos[e.ID] = &copia
	return nil
}

func (f *fakeEquipoRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.equipos[id]
	if !ok {
		return nil, nil
	}
	copia := *e
	return &copia, nil
}

func (f *fakeEquipoRepo) Update(_ context.Context, e *entity.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.equipos[e.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *e
	f.equipos[e.ID] = &copia
	return nil
}

func (f *fakeEquipoRepo) ActualizarEstadoSistema(_ context.Context, id string, estado entity.EstadoEquipo, actor string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fallaProyeccion {
		return assert.AnError
	}
	e, ok := f.equipos[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.EstadoSistema = estado
	e.Metadata.ActualizadoEn = now
	e.Metadata.ActualizadoPor = actor
	return nil
}

func (f *fakeEquipoRepo) List(_ context.Context, limit int) ([]*entity.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Equipment
	for _, e := range f.equipos {
		if len(out) < limit {
			copia := *e
			out = append(out, &copia)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var actorAdmin = entity.Actor{UserID: "u-admin", Nombre: "Administrador"}

func equipoOperativo(id string) *entity.Equipment {
	return &entity.Equipment{
		ID:             id,
		Identificacion: entity.Identificacion{Nombre: "VENTILADOR MECANICO", Marca: "DRAGER", Modelo: "EVITA V300"},
		EstadoSistema:  entity.EquipoOperativo,
		Localizacion:   entity.Localizacion{Sede: "SEDE CENTRAL", AreaClinica: "UCI ADULTOS"},
	}
}

func nuevoWorkOrderUC(ordenes *fakeOrdenRepo, equipos *fakeEquipoRepo) *usecase.WorkOrderUseCase {
	return usecase.NewWorkOrderUseCase(ordenes, equipos, validation.New(), logger.Nop())
}

func crearOrden(t *testing.T, uc *usecase.WorkOrderUseCase, equipoID string) string {
	t.Helper()
	out, err := uc.Create(context.Background(), actorAdmin, dto.CreateOrdenRequest{
		EquipoID:           equipoID,
		Descripcion:        "pantalla no enciende",
		AreaIncidente:      "UCI ADULTOS",
		ReportadoPorNombre: "Enf. Rosa Díaz",
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkOrderCreate_ValidacionReportaTodosLosCampos(t *testing.T) {
	uc := nuevoWorkOrderUC(newFakeOrdenRepo(), newFakeEquipoRepo())

	_, err := uc.Create(context.Background(), actorAdmin, dto.CreateOrdenRequest{
		ReportadoPorNombre: "Enf. Rosa Díaz",
	})

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	var campos []string
	for _, fe := range valErr.Fields {
		campos = append(campos, fe.Field)
	}
	assert.Contains(t, campos, "equipmentId", "debe reportarse el equipo faltante")
	assert.Contains(t, campos, "descripcion", "debe reportarse la descripción faltante")
}

func TestWorkOrderCreate_EquipoInexistente(t *testing.T) {
	uc := nuevoWorkOrderUC(newFakeOrdenRepo(), newFakeEquipoRepo())

	_, err := uc.Create(context.Background(), actorAdmin, dto.CreateOrdenRequest{
		EquipoID:           "IC-9999",
		Descripcion:        "no enciende",
		AreaIncidente:      "UCI",
		ReportadoPorNombre: "Enf. Rosa Díaz",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkOrderCreate_EquipoDadoDeBajaRechazado(t *testing.T) {
	equipo := equipoOperativo("IC-0001")
	equipo.EstadoSistema = entity.EquipoBaja
	uc := nuevoWorkOrderUC(newFakeOrdenRepo(), newFakeEquipoRepo(equipo))

	_, err := uc.Create(context.Background(), actorAdmin, dto.CreateOrdenRequest{
		EquipoID:           "IC-0001",
		Descripcion:        "no enciende",
		AreaIncidente:      "UCI",
		ReportadoPorNombre: "Enf. Rosa Díaz",
	})
	assert.ErrorIs(t, err, domain.ErrEquipoDadoDeBaja)
}

func TestWorkOrderCreate_NaceAbiertaConTipoPorDefecto(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))

	id := crearOrden(t, uc, "IC-0001")

	persistida, err := ordenes.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, persistida)
	assert.Equal(t, entity.OrdenAbierta, persistida.Status)
	assert.Equal(t, entity.OrdenCorrectivo, persistida.Tipo)
	assert.Equal(t, "Enf. Rosa Díaz", persistida.Creacion.ReportadoPor.Nombre)
	assert.Nil(t, persistida.Asignacion)
	assert.Nil(t, persistida.Cierre)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transicionar: ciclo completo y proyección al equipo
// ──────────────────────────────────────────────────────────────────────────────

func TestTransicionar_CicloCompletoProyectaEstadoFinal(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	equipos := newFakeEquipoRepo(equipoOperativo("IC-0001"))
	uc := nuevoWorkOrderUC(ordenes, equipos)
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")

	_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino:   string(entity.OrdenAsignada),
		AsignadoA: &dto.TecnicoRequest{UserID: "u-tec", Nombre: "Juan Pérez", Tipo: "INTERNO"},
	})
	require.NoError(t, err)

	_, err = uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino: string(entity.OrdenEnProceso),
	})
	require.NoError(t, err)

	out, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino:           string(entity.OrdenCerrada),
		EstadoFinalEquipo: string(entity.EquipoOperativo),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCerrada, out.Status)
	assert.False(t, out.ProyeccionPendiente)
	require.NotNil(t, out.Cierre)
	assert.GreaterOrEqual(t, out.Cierre.TiempoResolucionSegundos, int64(0))

	equipo, err := equipos.GetByID(ctx, "IC-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.EquipoOperativo, equipo.EstadoSistema,
		"el cierre debe propagar el estado final al equipo")
	assert.Equal(t, actorAdmin.UserID, equipo.Metadata.ActualizadoPor)
}

func TestTransicionar_ProyeccionFallidaNoRevierteElCierre(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	equipos := newFakeEquipoRepo(equipoOperativo("IC-0001"))
	uc := nuevoWorkOrderUC(ordenes, equipos)
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")
	equipos.fallaProyeccion = true

	out, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino:           string(entity.OrdenCerrada),
		EstadoFinalEquipo: string(entity.EquipoInoperativo),
	})
	require.NoError(t, err, "el fallo de la proyección no debe fallar el cierre")
	assert.True(t, out.ProyeccionPendiente)

	persistida, err := ordenes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCerrada, persistida.Status, "el cierre queda confirmado")

	equipo, err := equipos.GetByID(ctx, "IC-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.EquipoOperativo, equipo.EstadoSistema, "el equipo queda sin tocar")
}

func TestTransicionar_OrdenInexistente(t *testing.T) {
	uc := nuevoWorkOrderUC(newFakeOrdenRepo(), newFakeEquipoRepo())

	_, err := uc.Transicionar(context.Background(), actorAdmin, "ot-nada", dto.TransicionRequest{
		Destino: string(entity.OrdenAsignada),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransicionar_TransicionIlegalNoPersiste(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")

	_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino: string(entity.OrdenEnProceso),
	})
	var transErr *workorder.IllegalTransitionError
	require.ErrorAs(t, err, &transErr)

	persistida, _ := ordenes.GetByID(ctx, id)
	assert.Equal(t, entity.OrdenAbierta, persistida.Status, "el registro queda intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos transiciones sobre la misma orden
// ──────────────────────────────────────────────────────────────────────────────

func TestTransicionar_CarreraGanaExactamenteUno(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")

	// Dos callers compiten por asignar la misma orden en ABIERTO. Gane quien
	// gane, para el otro la arista deja de existir: o pierde la escritura
	// condicional o, si releyó tarde, choca con ASIGNADO → ASIGNADO ilegal.
	peticiones := []dto.TransicionRequest{
		{Destino: string(entity.OrdenAsignada), AsignadoA: &dto.TecnicoRequest{UserID: "u-tec1", Nombre: "Juan Pérez", Tipo: "INTERNO"}},
		{Destino: string(entity.OrdenAsignada), AsignadoA: &dto.TecnicoRequest{UserID: "u-tec2", Nombre: "Marta Ruiz", Tipo: "TERCERO"}},
	}

	arranque := make(chan struct{})
	resultados := make(chan error, len(peticiones))
	var wg sync.WaitGroup
	for _, in := range peticiones {
		wg.Add(1)
		go func(in dto.TransicionRequest) {
			defer wg.Done()
			<-arranque
			_, err := uc.Transicionar(ctx, actorAdmin, id, in)
			resultados <- err
		}(in)
	}
	close(arranque)
	wg.Wait()
	close(resultados)

	exitos, conflictos, otros := 0, 0, 0
	for err := range resultados {
		var concErr *domain.ConcurrencyConflictError
		var transErr *workorder.IllegalTransitionError
		switch {
		case err == nil:
			exitos++
		// El perdedor falla en la escritura condicional o, si releyó tarde,
		// directamente en la tabla de transiciones.
		case errors.As(err, &concErr), errors.As(err, &transErr):
			conflictos++
		default:
			otros++
		}
	}
	assert.Equal(t, 1, exitos, "exactamente un caller debe ganar la carrera")
	assert.Equal(t, 1, conflictos, "el otro debe recibir conflicto, no éxito silencioso")
	assert.Zero(t, otros)
}

// ──────────────────────────────────────────────────────────────────────────────
// ActualizarDetalle: allow-list fuera de la máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizarDetalle_CanceladaRechazaTodo(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")
	_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{Destino: string(entity.OrdenCancelada)})
	require.NoError(t, err)

	causa := "fusible quemado"
	_, err = uc.ActualizarDetalle(ctx, actorAdmin, id, dto.UpdateOrdenRequest{CausaFalla: &causa})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestActualizarDetalle_CerradaSoloSatisfaccionYReporte(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")
	_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino:           string(entity.OrdenCerrada),
		EstadoFinalEquipo: string(entity.EquipoOperativo),
	})
	require.NoError(t, err)

	causa := "fusible quemado"
	_, err = uc.ActualizarDetalle(ctx, actorAdmin, id, dto.UpdateOrdenRequest{CausaFalla: &causa})
	assert.ErrorIs(t, err, domain.ErrConflict, "los campos de ejecución quedan congelados al cerrar")

	satisfaccion := 5
	url := "https://informes.example/ot-1.pdf"
	out, err := uc.ActualizarDetalle(ctx, actorAdmin, id, dto.UpdateOrdenRequest{
		Satisfaccion: &satisfaccion,
		ReporteURL:   &url,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Cierre.Satisfaccion)
	assert.Equal(t, url, out.Cierre.ReporteURL)
}

func TestActualizarDetalle_EjecucionRequiereInicio(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	uc := nuevoWorkOrderUC(ordenes, newFakeEquipoRepo(equipoOperativo("IC-0001")))
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")

	causa := "fusible quemado"
	_, err := uc.ActualizarDetalle(ctx, actorAdmin, id, dto.UpdateOrdenRequest{CausaFalla: &causa})
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr, "sin ejecución iniciada no hay dónde escribir el detalle")
}

func TestActualizarDetalle_CierreConcurrenteNoSePisa(t *testing.T) {
	ordenes := newFakeOrdenRepo()
	equipos := newFakeEquipoRepo(equipoOperativo("IC-0001"))
	uc := nuevoWorkOrderUC(ordenes, equipos)
	ctx := context.Background()

	id := crearOrden(t, uc, "IC-0001")
	_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino:   string(entity.OrdenAsignada),
		AsignadoA: &dto.TecnicoRequest{UserID: "u-tec", Nombre: "Juan Pérez", Tipo: "INTERNO"},
	})
	require.NoError(t, err)
	_, err = uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
		Destino: string(entity.OrdenEnProceso),
	})
	require.NoError(t, err)

	// Otro caller cierra la orden justo después de que este lea EN_PROCESO.
	ordenes.trasLeer = func() {
		_, err := uc.Transicionar(ctx, actorAdmin, id, dto.TransicionRequest{
			Destino:           string(entity.OrdenCerrada),
			EstadoFinalEquipo: string(entity.EquipoOperativo),
		})
		require.NoError(t, err)
	}

	causa := "fusible quemado"
	_, err = uc.ActualizarDetalle(ctx, actorAdmin, id, dto.UpdateOrdenRequest{CausaFalla: &causa})
	var concErr *domain.ConcurrencyConflictError
	require.ErrorAs(t, err, &concErr, "la escritura desfasada debe perder, no aplicarse")

	persistida, err := ordenes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCerrada, persistida.Status)
	require.NotNil(t, persistida.Cierre, "el cierre recién calculado no debe pisarse con nil")
	assert.GreaterOrEqual(t, persistida.Cierre.TiempoResolucionSegundos, int64(0))
}

func TestActualizarDetalle_SatisfaccionFueraDeRango(t *testing.T) {
	uc := nuevoWorkOrderUC(newFakeOrdenRepo(), newFakeEquipoRepo())

	satisfaccion := 9
	_, err := uc.ActualizarDetalle(context.Background(), actorAdmin, "ot-1", dto.UpdateOrdenRequest{
		Satisfaccion: &satisfaccion,
	})
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}
