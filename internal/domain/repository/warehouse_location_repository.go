package repository

import (
	"context"

	"github.com/jhoicas/bodega-wms/internal/domain/entity"
)

// WarehouseRepository puerto de solo lectura sobre bodegas.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
}

// WarehouseLocationRepository puerto de solo lectura sobre ubicaciones.
// El CRUD de ubicaciones vive en otro servicio; el motor de inventario solo
// consulta tipo, pickeabilidad, padre y dimensiones.
type WarehouseLocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error)
	GetByCode(ctx context.Context, warehouseID, code string) (*entity.WarehouseLocation, error)

	// ListOverflow devuelve las ubicaciones de tipo overflow de la bodega,
	// ordenadas por código para una selección determinista.
	ListOverflow(ctx context.Context, warehouseID string) ([]*entity.WarehouseLocation, error)
}
