package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)
var _ repository.WarehouseLocationRepository = (*WarehouseLocationRepo)(nil)

// WarehouseRepo lectura de bodegas sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `SELECT id, code, name, address, created_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	query := `SELECT id, code, name, address, created_at FROM warehouses ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// WarehouseLocationRepo lectura de ubicaciones sobre PostgreSQL. El motor de
// inventario no crea ni modifica ubicaciones.
type WarehouseLocationRepo struct {
	q Querier
}

// NewWarehouseLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseLocationRepository(q Querier) *WarehouseLocationRepo {
	return &WarehouseLocationRepo{q: q}
}

const locationColumns = `id, warehouse_id, code, location_type, is_pickable,
	parent_location_id, min_qty, capacity_cubic_mm, width_mm, height_mm, depth_mm`

func scanLocation(row pgx.Row) (*entity.WarehouseLocation, error) {
	var l entity.WarehouseLocation
	err := row.Scan(
		&l.ID, &l.WarehouseID, &l.Code, &l.LocationType, &l.IsPickable,
		&l.ParentLocationID, &l.MinQty, &l.CapacityCubicMm,
		&l.WidthMm, &l.HeightMm, &l.DepthMm,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WarehouseLocationRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE id = $1`
	l, err := scanLocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse location: %w", err)
	}
	return l, nil
}

func (r *WarehouseLocationRepo) GetByCode(ctx context.Context, warehouseID, code string) (*entity.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE warehouse_id = $1 AND code = $2`
	l, err := scanLocation(r.q.QueryRow(ctx, query, warehouseID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse location by code: %w", err)
	}
	return l, nil
}

// ListOverflow devuelve las ubicaciones overflow de la bodega ordenadas por
// código (desempate determinista para la selección de bin).
func (r *WarehouseLocationRepo) ListOverflow(ctx context.Context, warehouseID string) ([]*entity.WarehouseLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM warehouse_locations
		WHERE warehouse_id = $1 AND location_type = $2
		ORDER BY code ASC`
	rows, err := r.q.Query(ctx, query, warehouseID, entity.LocationTypeOverflow)
	if err != nil {
		return nil, fmt.Errorf("list overflow locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
