package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-wms/internal/domain/entity"
)

// LevelKey identifica una fila de nivel: (item, ubicación[, variante]).
type LevelKey struct {
	InventoryItemID     string
	WarehouseLocationID string
	VariantID           *string
}

// ReplenishmentCandidate resultado crudo del repositorio para una ubicación
// por debajo de su mínimo, emparejada con su padre de reposición.
type ReplenishmentCandidate struct {
	InventoryItemID  string
	BaseSku          string
	ItemName         string
	LocationID       string
	LocationCode     string
	ParentLocationID *string
	ParentCode       *string
	OnHandBase       int64
	MinQty           int64
	// FillPct = on-hand / mínimo × 100, calculado en SQL (NUMERIC).
	FillPct decimal.Decimal
}

// InventoryLevelRepository define el puerto sobre los contadores de stock.
// Todas las mutaciones son deltas relativos ejecutados en una sola sentencia
// SQL (column = column + delta); ese es el mecanismo que evita lost updates
// entre pickers concurrentes y debe preservarse en cualquier implementación.
// Los métodos bool devuelven false cuando la fila de nivel no existe (fallo
// señalizado, no error).
type InventoryLevelRepository interface {
	Get(ctx context.Context, key LevelKey) (*entity.InventoryLevel, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryLevel, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryLevel, error)

	// SumByItem agrega los contadores del item en SQL (una sola consulta).
	// pickableOnly restringe a ubicaciones con is_pickable.
	SumByItem(ctx context.Context, itemID string, pickableOnly bool) (entity.LevelTotals, error)

	// AddReserved suma qty a reserved_base. false si no existe la fila.
	AddReserved(ctx context.Context, key LevelKey, qty int64) (bool, error)

	// ReleaseReserved resta qty de reserved_base. false si no existe la fila.
	ReleaseReserved(ctx context.Context, key LevelKey, qty int64) (bool, error)

	// ApplyPick ejecuta en una sola sentencia: on_hand −= qty, picked += qty,
	// reserved −= min(reserved, qty). Devuelve cuánta reserva se liberó y
	// false si la fila no existe.
	ApplyPick(ctx context.Context, key LevelKey, qty int64) (released int64, ok bool, err error)

	// ApplyShipment resta qty de picked_base (sin guarda contra negativos).
	// false si no existe la fila.
	ApplyShipment(ctx context.Context, key LevelKey, qty int64) (bool, error)

	// UpsertAddOnHand suma delta a on_hand_base creando la fila si no existe;
	// variantQtyDelta ajusta el conteo físico de la presentación de la clave.
	UpsertAddOnHand(ctx context.Context, key LevelKey, delta, variantQtyDelta int64) error

	// UpsertAddBackorder suma delta (con signo) a backorder_base, creando la
	// fila si no existe. Contador independiente, de conciliación manual.
	UpsertAddBackorder(ctx context.Context, key LevelKey, delta int64) error

	// DrainOnHand resta min(on_hand, requested) de on_hand_base en una sola
	// sentencia y devuelve cuánto se retiró (0 si la fila no existe).
	DrainOnHand(ctx context.Context, key LevelKey, requested int64) (int64, error)

	// SumOccupiedCubicMm suma (cubo de variante × variant_qty) sobre los
	// niveles de la ubicación, ignorando variantes sin dimensiones.
	// Se recalcula en cada llamada, sin caché.
	SumOccupiedCubicMm(ctx context.Context, locationID string) (int64, error)

	// ListBelowMin devuelve las ubicaciones con min_qty configurado cuyo
	// on-hand actual está por debajo, junto con su padre (filtro en SQL,
	// no en memoria). warehouseID vacío = todas las bodegas.
	ListBelowMin(ctx context.Context, warehouseID string) ([]ReplenishmentCandidate, error)
}
