package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Aurea-api/internal/domain"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL.
// status es columna relacional para que la transición sea un único UPDATE
// condicional (chequeo optimista); los sub-registros van en JSONB.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const ordenColumnas = `id, equipo_id, tipo, status, creacion, asignacion, ejecucion, cierre, creado_en, creado_por, actualizado_en, actualizado_por`

// Create persiste una orden nueva (status ABIERTO).
func (r *WorkOrderRepo) Create(ctx context.Context, o *entity.WorkOrder) error {
	creacion, asignacion, ejecucion, cierre, err := marshalOrden(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ordenes_trabajo (` + ordenColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.EquipoID, o.Tipo, o.Status,
		creacion, asignacion, ejecucion, cierre,
		o.Metadata.CreadoEn, o.Metadata.CreadoPor, o.Metadata.ActualizadoEn, o.Metadata.ActualizadoPor,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + ordenColumnas + ` FROM ordenes_trabajo WHERE id = $1`
	o, err := scanOrden(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return o, nil
}

// ActualizarTransicion persiste el resultado de una transición en un único
// UPDATE condicionado al estado previo. Cero filas afectadas con la orden
// existente significa que otro caller transicionó primero.
func (r *WorkOrderRepo) ActualizarTransicion(ctx context.Context, o *entity.WorkOrder, esperado entity.EstadoOrden) error {
	_, asignacion, ejecucion, cierre, err := marshalOrden(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE ordenes_trabajo
		SET status = $2, asignacion = $3, ejecucion = $4, cierre = $5,
		    actualizado_en = $6, actualizado_por = $7
		WHERE id = $1 AND status = $8`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Status, asignacion, ejecucion, cierre,
		o.Metadata.ActualizadoEn, o.Metadata.ActualizadoPor, esperado,
	)
	if err != nil {
		return fmt.Errorf("update transición: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Distinguir orden inexistente de carrera perdida
		var existe bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ordenes_trabajo WHERE id = $1)`, o.ID).Scan(&existe); err != nil {
			return fmt.Errorf("verificar orden: %w", err)
		}
		if !existe {
			return domain.ErrNotFound
		}
		return &domain.ConcurrencyConflictError{ID: o.ID, EstadoEsperado: string(esperado)}
	}
	return nil
}

// ActualizarDetalle escribe ejecución y cierre + metadata. No toca status,
// pero condiciona la escritura al status leído: una transición colada entre
// lectura y escritura dejaría el JSONB desactualizado (p. ej. pisar el cierre
// recién calculado con nil), así que cero filas con la orden existente es
// carrera perdida.
func (r *WorkOrderRepo) ActualizarDetalle(ctx context.Context, o *entity.WorkOrder, esperado entity.EstadoOrden) error {
	_, _, ejecucion, cierre, err := marshalOrden(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE ordenes_trabajo
		SET ejecucion = $2, cierre = $3, actualizado_en = $4, actualizado_por = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, ejecucion, cierre, o.Metadata.ActualizadoEn, o.Metadata.ActualizadoPor, esperado,
	)
	if err != nil {
		return fmt.Errorf("update detalle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var existe bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ordenes_trabajo WHERE id = $1)`, o.ID).Scan(&existe); err != nil {
			return fmt.Errorf("verificar orden: %w", err)
		}
		if !existe {
			return domain.ErrNotFound
		}
		return &domain.ConcurrencyConflictError{ID: o.ID, EstadoEsperado: string(esperado)}
	}
	return nil
}

// ListAbiertas devuelve órdenes en ABIERTO, más recientes primero.
func (r *WorkOrderRepo) ListAbiertas(ctx context.Context, limit int) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + ordenColumnas + ` FROM ordenes_trabajo
		WHERE status = $1 ORDER BY creado_en DESC LIMIT $2`
	return r.list(ctx, query, entity.OrdenAbierta, limit)
}

// ListByEquipo devuelve el historial de órdenes de un equipo, más recientes primero.
func (r *WorkOrderRepo) ListByEquipo(ctx context.Context, equipoID string, limit int) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + ordenColumnas + ` FROM ordenes_trabajo
		WHERE equipo_id = $1 ORDER BY creado_en DESC LIMIT $2`
	return r.list(ctx, query, equipoID, limit)
}

func (r *WorkOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list órdenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// marshalOrden serializa los bloques JSONB; los opcionales nil quedan en NULL.
func marshalOrden(o *entity.WorkOrder) (creacion, asignacion, ejecucion, cierre []byte, err error) {
	if creacion, err = marshalBloque(o.Creacion); err != nil {
		return nil, nil, nil, nil, err
	}
	if o.Asignacion != nil {
		if asignacion, err = marshalBloque(o.Asignacion); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	if o.Ejecucion != nil {
		if ejecucion, err = marshalBloque(o.Ejecucion); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	if o.Cierre != nil {
		if cierre, err = marshalBloque(o.Cierre); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return creacion, asignacion, ejecucion, cierre, nil
}

func scanOrden(row pgx.Row) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	var creacion, asignacion, ejecucion, cierre []byte
	err := row.Scan(
		&o.ID, &o.EquipoID, &o.Tipo, &o.Status,
		&creacion, &asignacion, &ejecucion, &cierre,
		&o.Metadata.CreadoEn, &o.Metadata.CreadoPor, &o.Metadata.ActualizadoEn, &o.Metadata.ActualizadoPor,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalBloque(creacion, &o.Creacion); err != nil {
		return nil, err
	}
	if len(asignacion) > 0 {
		o.Asignacion = &entity.Asignacion{}
		if err := unmarshalBloque(asignacion, o.Asignacion); err != nil {
			return nil, err
		}
	}
	if len(ejecucion) > 0 {
		o.Ejecucion = &entity.Ejecucion{}
		if err := unmarshalBloque(ejecucion, o.Ejecucion); err != nil {
			return nil, err
		}
	}
	if len(cierre) > 0 {
		o.Cierre = &entity.Cierre{}
		if err := unmarshalBloque(cierre, o.Cierre); err != nil {
			return nil, err
		}
	}
	return &o, nil
}
