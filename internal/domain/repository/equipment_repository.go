package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// EquipmentRepository define el puerto de persistencia para Equipment (DIP).
// Todas las operaciones aceptan ctx para que el caller acote la I/O con timeout.
type EquipmentRepository interface {
	Create(ctx context.Context, equipo *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	Update(ctx context.Context, equipo *entity.Equipment) error
	// ActualizarEstadoSistema escribe solo estado_sistema + metadata (escritura
	// secundaria del proyector y de la baja lógica).
	ActualizarEstadoSistema(ctx context.Context, id string, estado entity.EstadoEquipo, actor string, now time.Time) error
	List(ctx context.Context, limit int) ([]*entity.Equipment, error)
}
