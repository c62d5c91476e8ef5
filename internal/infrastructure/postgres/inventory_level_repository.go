package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre
// PostgreSQL. Acepta pool o tx (Querier). Los contadores se mutan siempre con
// deltas relativos en una sola sentencia (column = column + $n); la unidad de
// contención es la fila individual, no el item completo.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

const levelColumns = `inventory_item_id, warehouse_location_id, variant_id,
	on_hand_base, reserved_base, picked_base, backorder_base, variant_qty, updated_at`

func scanLevel(row pgx.Row) (*entity.InventoryLevel, error) {
	var l entity.InventoryLevel
	err := row.Scan(
		&l.InventoryItemID, &l.WarehouseLocationID, &l.VariantID,
		&l.OnHandBase, &l.ReservedBase, &l.PickedBase, &l.BackorderBase,
		&l.VariantQty, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Get obtiene la fila de nivel de la clave, o nil si no existe.
func (r *InventoryLevelRepo) Get(ctx context.Context, key repository.LevelKey) (*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE inventory_item_id = $1 AND warehouse_location_id = $2
		  AND variant_id IS NOT DISTINCT FROM $3`
	l, err := scanLevel(r.q.QueryRow(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return l, nil
}

func (r *InventoryLevelRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE inventory_item_id = $1
		ORDER BY warehouse_location_id, variant_id NULLS FIRST`
	return r.list(ctx, query, itemID)
}

func (r *InventoryLevelRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE warehouse_location_id = $1
		ORDER BY inventory_item_id, variant_id NULLS FIRST`
	return r.list(ctx, query, locationID)
}

func (r *InventoryLevelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// SumByItem agrega los contadores del item en una sola consulta SQL.
func (r *InventoryLevelRepo) SumByItem(ctx context.Context, itemID string, pickableOnly bool) (entity.LevelTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(l.on_hand_base), 0),
			COALESCE(SUM(l.reserved_base), 0),
			COALESCE(SUM(l.picked_base), 0),
			COALESCE(SUM(l.backorder_base), 0)
		FROM inventory_levels l
		JOIN warehouse_locations w ON w.id = l.warehouse_location_id
		WHERE l.inventory_item_id = $1`
	if pickableOnly {
		query += ` AND w.is_pickable`
	}
	var t entity.LevelTotals
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&t.OnHandBase, &t.ReservedBase, &t.PickedBase, &t.BackorderBase,
	)
	if err != nil {
		return entity.LevelTotals{}, fmt.Errorf("sum levels by item: %w", err)
	}
	return t, nil
}

// AddReserved suma qty a reserved_base. false si la fila no existe (fallo
// señalizado para que el caller decida backorder o bin alterno).
func (r *InventoryLevelRepo) AddReserved(ctx context.Context, key repository.LevelKey, qty int64) (bool, error) {
	return r.addCounter(ctx, key, "reserved_base", qty)
}

// ReleaseReserved resta qty de reserved_base. false si la fila no existe.
func (r *InventoryLevelRepo) ReleaseReserved(ctx context.Context, key repository.LevelKey, qty int64) (bool, error) {
	return r.addCounter(ctx, key, "reserved_base", -qty)
}

// addCounter aplica un delta relativo a un contador en una sola sentencia.
func (r *InventoryLevelRepo) addCounter(ctx context.Context, key repository.LevelKey, column string, delta int64) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE inventory_levels
		SET %s = %s + $4, updated_at = now()
		WHERE inventory_item_id = $1 AND warehouse_location_id = $2
		  AND variant_id IS NOT DISTINCT FROM $3`, column, column)
	tag, err := r.q.Exec(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID, delta)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", column, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ApplyPick ejecuta el pick como una única sentencia: on_hand −= qty,
// picked += qty y reserved −= LEAST(reserved, qty). El CTE con FOR UPDATE
// captura el reservado previo para devolver cuánto se liberó.
func (r *InventoryLevelRepo) ApplyPick(ctx context.Context, key repository.LevelKey, qty int64) (int64, bool, error) {
	query := `
		WITH prev AS (
			SELECT inventory_item_id, warehouse_location_id,
			       COALESCE(variant_id, '') AS vkey, reserved_base
			FROM inventory_levels
			WHERE inventory_item_id = $1 AND warehouse_location_id = $2
			  AND variant_id IS NOT DISTINCT FROM $3
			FOR UPDATE
		)
		UPDATE inventory_levels l
		SET on_hand_base  = l.on_hand_base - $4,
		    picked_base   = l.picked_base + $4,
		    reserved_base = l.reserved_base - LEAST(l.reserved_base, $4),
		    updated_at    = now()
		FROM prev
		WHERE l.inventory_item_id = prev.inventory_item_id
		  AND l.warehouse_location_id = prev.warehouse_location_id
		  AND COALESCE(l.variant_id, '') = prev.vkey
		RETURNING LEAST(prev.reserved_base, $4)`
	var released int64
	err := r.q.QueryRow(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID, qty).Scan(&released)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("apply pick: %w", err)
	}
	return released, true, nil
}

// ApplyShipment resta qty de picked_base. Sin guarda contra negativos: el
// faltante aflora después en reconciliación, no aquí.
func (r *InventoryLevelRepo) ApplyShipment(ctx context.Context, key repository.LevelKey, qty int64) (bool, error) {
	return r.addCounter(ctx, key, "picked_base", -qty)
}

// UpsertAddOnHand suma delta a on_hand_base creando la fila si no existe.
// El conflicto se resuelve sumando sobre el valor almacenado, nunca
// sobrescribiendo con un valor leído en memoria.
func (r *InventoryLevelRepo) UpsertAddOnHand(ctx context.Context, key repository.LevelKey, delta, variantQtyDelta int64) error {
	query := `
		INSERT INTO inventory_levels
			(inventory_item_id, warehouse_location_id, variant_id,
			 on_hand_base, reserved_base, picked_base, backorder_base, variant_qty, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, 0, $5, now())
		ON CONFLICT (inventory_item_id, warehouse_location_id, COALESCE(variant_id, ''))
		DO UPDATE SET
			on_hand_base = inventory_levels.on_hand_base + EXCLUDED.on_hand_base,
			variant_qty  = inventory_levels.variant_qty + EXCLUDED.variant_qty,
			updated_at   = now()`
	_, err := r.q.Exec(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID, delta, variantQtyDelta)
	if err != nil {
		return fmt.Errorf("upsert on hand: %w", err)
	}
	return nil
}

// UpsertAddBackorder suma delta a backorder_base creando la fila si no existe
// (se puede registrar backorder de un item que aún no tiene stock).
func (r *InventoryLevelRepo) UpsertAddBackorder(ctx context.Context, key repository.LevelKey, delta int64) error {
	query := `
		INSERT INTO inventory_levels
			(inventory_item_id, warehouse_location_id, variant_id,
			 on_hand_base, reserved_base, picked_base, backorder_base, variant_qty, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, $4, 0, now())
		ON CONFLICT (inventory_item_id, warehouse_location_id, COALESCE(variant_id, ''))
		DO UPDATE SET
			backorder_base = inventory_levels.backorder_base + EXCLUDED.backorder_base,
			updated_at     = now()`
	_, err := r.q.Exec(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID, delta)
	if err != nil {
		return fmt.Errorf("upsert backorder: %w", err)
	}
	return nil
}

// DrainOnHand resta min(on_hand, requested) en una sola sentencia y devuelve
// cuánto se retiró (0 si la fila no existe o está vacía).
func (r *InventoryLevelRepo) DrainOnHand(ctx context.Context, key repository.LevelKey, requested int64) (int64, error) {
	query := `
		WITH prev AS (
			SELECT inventory_item_id, warehouse_location_id,
			       COALESCE(variant_id, '') AS vkey, on_hand_base
			FROM inventory_levels
			WHERE inventory_item_id = $1 AND warehouse_location_id = $2
			  AND variant_id IS NOT DISTINCT FROM $3
			FOR UPDATE
		)
		UPDATE inventory_levels l
		SET on_hand_base = l.on_hand_base - LEAST(GREATEST(l.on_hand_base, 0), $4),
		    updated_at   = now()
		FROM prev
		WHERE l.inventory_item_id = prev.inventory_item_id
		  AND l.warehouse_location_id = prev.warehouse_location_id
		  AND COALESCE(l.variant_id, '') = prev.vkey
		RETURNING LEAST(GREATEST(prev.on_hand_base, 0), $4)`
	var moved int64
	err := r.q.QueryRow(ctx, query, key.InventoryItemID, key.WarehouseLocationID, key.VariantID, requested).Scan(&moved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("drain on hand: %w", err)
	}
	return moved, nil
}

// SumOccupiedCubicMm suma (cubo de la variante × variant_qty) sobre los
// niveles actuales de la ubicación. Variantes sin dimensiones no aportan
// volumen (su capacidad no se controla). Se recalcula en cada llamada.
func (r *InventoryLevelRepo) SumOccupiedCubicMm(ctx context.Context, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(v.width_mm * v.height_mm * v.length_mm * l.variant_qty), 0)
		FROM inventory_levels l
		JOIN uom_variants v ON v.id = l.variant_id
		WHERE l.warehouse_location_id = $1
		  AND v.width_mm IS NOT NULL AND v.height_mm IS NOT NULL AND v.length_mm IS NOT NULL`
	var occupied int64
	if err := r.q.QueryRow(ctx, query, locationID).Scan(&occupied); err != nil {
		return 0, fmt.Errorf("sum occupied cubic: %w", err)
	}
	return occupied, nil
}

// ListBelowMin devuelve las ubicaciones con min_qty cuyo on-hand agregado está
// por debajo, junto con su padre de reposición. El filtro y la agregación van
// en SQL (consulta indexada), no en memoria. Ordena por mayor déficit primero
// y código de ubicación como desempate.
func (r *InventoryLevelRepo) ListBelowMin(ctx context.Context, warehouseID string) ([]repository.ReplenishmentCandidate, error) {
	query := `
		SELECT
			i.id, i.base_sku, i.name,
			loc.id, loc.code, loc.parent_location_id, parent.code,
			COALESCE(SUM(l.on_hand_base), 0) AS on_hand,
			loc.min_qty,
			ROUND(COALESCE(SUM(l.on_hand_base), 0)::numeric * 100 / loc.min_qty, 2) AS fill_pct
		FROM inventory_levels l
		JOIN warehouse_locations loc ON loc.id = l.warehouse_location_id
		LEFT JOIN warehouse_locations parent ON parent.id = loc.parent_location_id
		JOIN inventory_items i ON i.id = l.inventory_item_id
		WHERE loc.min_qty IS NOT NULL
		  AND loc.min_qty > 0
		  AND ($1 = '' OR loc.warehouse_id = $1)
		GROUP BY i.id, i.base_sku, i.name, loc.id, loc.code, loc.parent_location_id, parent.code, loc.min_qty
		HAVING COALESCE(SUM(l.on_hand_base), 0) < loc.min_qty
		ORDER BY (loc.min_qty - COALESCE(SUM(l.on_hand_base), 0)) DESC, loc.code ASC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list locations below min: %w", err)
	}
	defer rows.Close()

	var items []repository.ReplenishmentCandidate
	for rows.Next() {
		var c repository.ReplenishmentCandidate
		if err := rows.Scan(
			&c.InventoryItemID, &c.BaseSku, &c.ItemName,
			&c.LocationID, &c.LocationCode, &c.ParentLocationID, &c.ParentCode,
			&c.OnHandBase, &c.MinQty, &c.FillPct,
		); err != nil {
			return nil, fmt.Errorf("scan replenishment candidate: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
