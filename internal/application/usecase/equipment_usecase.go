package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
	"github.com/jhoicas/Aurea-api/pkg/validation"
)

// listadoMax tope fijo del listado de equipos (sin cursor de paginación).
const listadoMax = 50

// EquipmentUseCase casos de uso CRUD para equipos biomédicos.
// EstadoSistema nunca se modifica por aquí salvo la baja lógica: las
// actualizaciones administrativas van por allow-list y el estado lo gobiernan
// el proyector de cierres y Baja.
type EquipmentUseCase struct {
	repo repository.EquipmentRepository
	val  *validation.Validator
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, val *validation.Validator) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, val: val}
}

// Create registra un nuevo equipo con su código IC asignado externamente.
func (uc *EquipmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEquipoRequest) (*dto.CreatedResponse, error) {
	if err := uc.val.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	equipo := &entity.Equipment{
		ID: in.ID,
		Identificacion: entity.Identificacion{
			Nombre:     in.Identificacion.Nombre,
			Marca:      in.Identificacion.Marca,
			Modelo:     in.Identificacion.Modelo,
			Serie:      in.Identificacion.Serie,
			CodigoAF:   in.Identificacion.CodigoAF,
			TipoEquipo: in.Identificacion.TipoEquipo,
		},
		EstadoSistema:    entity.EstadoEquipo(in.EstadoSistema),
		CondicionIngreso: in.CondicionIngreso,
		Localizacion: entity.Localizacion{
			AreaClinica:       in.Localizacion.AreaClinica,
			ReferenciaArea:    in.Localizacion.ReferenciaArea,
			Nivel:             in.Localizacion.Nivel,
			CentroCosto:       in.Localizacion.CentroCosto,
			CentroCostoNombre: in.Localizacion.CentroCostoNombre,
			Sede:              in.Localizacion.Sede,
		},
		Metadata: entity.Metadata{
			CreadoEn:       now,
			CreadoPor:      actor.UserID,
			ActualizadoEn:  now,
			ActualizadoPor: actor.UserID,
		},
	}
	if in.Adquisicion != nil {
		equipo.Adquisicion = *in.Adquisicion
	}
	if in.Vida != nil {
		equipo.Vida = *in.Vida
	}
	if in.Riesgo != nil {
		equipo.Riesgo = *in.Riesgo
	}

	if err := uc.repo.Create(ctx, equipo); err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{ID: equipo.ID}, nil
}

// GetByID obtiene un equipo por código IC. Devuelve nil si no existe.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id string) (*dto.EquipoResponse, error) {
	equipo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipo == nil {
		return nil, nil
	}
	return toEquipoResponse(equipo), nil
}

// Update actualiza campos administrativos del equipo (allow-list: nunca
// EstadoSistema, nunca ID, nunca CreadoEn/CreadoPor).
func (uc *EquipmentUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateEquipoRequest) (*dto.EquipoResponse, error) {
	if err := uc.val.Struct(in); err != nil {
		return nil, err
	}
	equipo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipo == nil {
		return nil, nil
	}
	if in.Identificacion != nil {
		equipo.Identificacion = entity.Identificacion{
			Nombre:     in.Identificacion.Nombre,
			Marca:      in.Identificacion.Marca,
			Modelo:     in.Identificacion.Modelo,
			Serie:      in.Identificacion.Serie,
			CodigoAF:   in.Identificacion.CodigoAF,
			TipoEquipo: in.Identificacion.TipoEquipo,
		}
	}
	if in.CondicionIngreso != nil {
		equipo.CondicionIngreso = *in.CondicionIngreso
	}
	if in.Localizacion != nil {
		equipo.Localizacion = entity.Localizacion{
			AreaClinica:       in.Localizacion.AreaClinica,
			ReferenciaArea:    in.Localizacion.ReferenciaArea,
			Nivel:             in.Localizacion.Nivel,
			CentroCosto:       in.Localizacion.CentroCosto,
			CentroCostoNombre: in.Localizacion.CentroCostoNombre,
			Sede:              in.Localizacion.Sede,
		}
	}
	if in.Adquisicion != nil {
		equipo.Adquisicion = *in.Adquisicion
	}
	if in.Vida != nil {
		// FechaBaja solo la fija la operación de baja
		fechaBaja := equipo.Vida.FechaBaja
		equipo.Vida = *in.Vida
		equipo.Vida.FechaBaja = fechaBaja
	}
	if in.Riesgo != nil {
		equipo.Riesgo = *in.Riesgo
	}
	equipo.Metadata.ActualizadoEn = time.Now()
	equipo.Metadata.ActualizadoPor = actor.UserID

	if err := uc.repo.Update(ctx, equipo); err != nil {
		return nil, err
	}
	return toEquipoResponse(equipo), nil
}

// List lista hasta 50 equipos (orden por defecto del almacén).
func (uc *EquipmentUseCase) List(ctx context.Context) (*dto.EquipoListResponse, error) {
	list, err := uc.repo.List(ctx, listadoMax)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipoResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEquipoResponse(e))
	}
	return &dto.EquipoListResponse{Items: items, Total: len(items)}, nil
}

// Baja retiro lógico del equipo: EstadoSistema=BAJA + fecha de baja. El
// registro nunca se elimina físicamente.
func (uc *EquipmentUseCase) Baja(ctx context.Context, actor entity.Actor, id string) error {
	equipo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if equipo == nil {
		return domain.ErrNotFound
	}
	if equipo.DadoDeBaja() {
		return domain.ErrConflict
	}
	now := time.Now()
	equipo.EstadoSistema = entity.EquipoBaja
	equipo.Vida.FechaBaja = &now
	equipo.Metadata.ActualizadoEn = now
	equipo.Metadata.ActualizadoPor = actor.UserID
	return uc.repo.Update(ctx, equipo)
}

func toEquipoResponse(e *entity.Equipment) *dto.EquipoResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipoResponse{
		ID:               e.ID,
		Identificacion:   e.Identificacion,
		EstadoSistema:    e.EstadoSistema,
		CondicionIngreso: e.CondicionIngreso,
		Localizacion:     e.Localizacion,
		Adquisicion:      e.Adquisicion,
		Vida:             e.Vida,
		Riesgo:           e.Riesgo,
		Metadata:         e.Metadata,
	}
}
