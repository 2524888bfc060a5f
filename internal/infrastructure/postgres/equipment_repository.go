package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL.
// Cada equipo es una fila-documento: los bloques anidados van en columnas JSONB
// y estado_sistema queda relacional para poder consultarlo y proyectarlo con
// una sola escritura de campo.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipoColumnas = `id, identificacion, estado_sistema, condicion_ingreso, localizacion, adquisicion, vida, riesgo, creado_en, creado_por, actualizado_en, actualizado_por`

// Create persiste un nuevo equipo. El ID (código IC) viene asignado externamente.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	identificacion, err := marshalBloque(e.Identificacion)
	if err != nil {
		return err
	}
	localizacion, err := marshalBloque(e.Localizacion)
	if err != nil {
		return err
	}
	adquisicion, err := marshalBloque(e.Adquisicion)
	if err != nil {
		return err
	}
	vida, err := marshalBloque(e.Vida)
	if err != nil {
		return err
	}
	riesgo, err := marshalBloque(e.Riesgo)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO equipos (` + equipoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		e.ID, identificacion, e.EstadoSistema, e.CondicionIngreso,
		localizacion, adquisicion, vida, riesgo,
		e.Metadata.CreadoEn, e.Metadata.CreadoPor, e.Metadata.ActualizadoEn, e.Metadata.ActualizadoPor,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipo: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por código IC. Devuelve nil si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipoColumnas + ` FROM equipos WHERE id = $1`
	e, err := scanEquipo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipo: %w", err)
	}
	return e, nil
}

// Update reescribe el documento completo del equipo. Sobre un ID inexistente
// es un error, no un no-op silencioso.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	identificacion, err := marshalBloque(e.Identificacion)
	if err != nil {
		return err
	}
	localizacion, err := marshalBloque(e.Localizacion)
	if err != nil {
		return err
	}
	adquisicion, err := marshalBloque(e.Adquisicion)
	if err != nil {
		return err
	}
	vida, err := marshalBloque(e.Vida)
	if err != nil {
		return err
	}
	riesgo, err := marshalBloque(e.Riesgo)
	if err != nil {
		return err
	}
	query := `
		UPDATE equipos
		SET identificacion = $2, estado_sistema = $3, condicion_ingreso = $4,
		    localizacion = $5, adquisicion = $6, vida = $7, riesgo = $8,
		    actualizado_en = $9, actualizado_por = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, identificacion, e.EstadoSistema, e.CondicionIngreso,
		localizacion, adquisicion, vida, riesgo,
		e.Metadata.ActualizadoEn, e.Metadata.ActualizadoPor,
	)
	if err != nil {
		return fmt.Errorf("update equipo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActualizarEstadoSistema escribe solo estado_sistema + metadata (escritura
// de campo único, atómica por construcción).
func (r *EquipmentRepo) ActualizarEstadoSistema(ctx context.Context, id string, estado entity.EstadoEquipo, actor string, now time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE equipos SET estado_sistema = $2, actualizado_en = $3, actualizado_por = $4 WHERE id = $1`,
		id, estado, now, actor,
	)
	if err != nil {
		return fmt.Errorf("update estado_sistema: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista equipos hasta el límite indicado (orden por defecto del almacén).
func (r *EquipmentRepo) List(ctx context.Context, limit int) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipoColumnas + ` FROM equipos LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list equipos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipo: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEquipo(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	var identificacion, localizacion, adquisicion, vida, riesgo []byte
	err := row.Scan(
		&e.ID, &identificacion, &e.EstadoSistema, &e.CondicionIngreso,
		&localizacion, &adquisicion, &vida, &riesgo,
		&e.Metadata.CreadoEn, &e.Metadata.CreadoPor, &e.Metadata.ActualizadoEn, &e.Metadata.ActualizadoPor,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalBloque(identificacion, &e.Identificacion); err != nil {
		return nil, err
	}
	if err := unmarshalBloque(localizacion, &e.Localizacion); err != nil {
		return nil, err
	}
	if err := unmarshalBloque(adquisicion, &e.Adquisicion); err != nil {
		return nil, err
	}
	if err := unmarshalBloque(vida, &e.Vida); err != nil {
		return nil, err
	}
	if err := unmarshalBloque(riesgo, &e.Riesgo); err != nil {
		return nil, err
	}
	return &e, nil
}
