package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest cuerpo común de las operaciones del motor de inventario.
// Las cantidades van en unidades base; el caller convierte desde presentación
// con el factor de la variante antes de llamar.
type MovementRequest struct {
	InventoryItemID string  `json:"inventory_item_id"`
	LocationID      string  `json:"location_id"`
	VariantID       *string `json:"variant_id,omitempty"`
	BaseQty         int64   `json:"base_qty"`
	OrderID         *string `json:"order_id,omitempty"`
	OrderItemID     *string `json:"order_item_id,omitempty"`
	ReferenceType   string  `json:"reference_type,omitempty"`
	ReferenceID     string  `json:"reference_id,omitempty"`
	UserID          string  `json:"user_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ReceiveRequest entrada de recibo; VariantQty cuenta la presentación física
// recibida cuando se indica VariantID.
type ReceiveRequest struct {
	MovementRequest
	VariantQty int64 `json:"variant_qty,omitempty"`
}

// AdjustRequest corrección de inventario; Delta con signo y motivo obligatorio.
type AdjustRequest struct {
	InventoryItemID string  `json:"inventory_item_id"`
	LocationID      string  `json:"location_id"`
	VariantID       *string `json:"variant_id,omitempty"`
	Delta           int64   `json:"delta"`
	Reason          string  `json:"reason"`
	ReferenceType   string  `json:"reference_type,omitempty"`
	ReferenceID     string  `json:"reference_id,omitempty"`
	UserID          string  `json:"user_id,omitempty"`
}

// MovementResponse indica si la operación aplicó (false = fila de nivel
// inexistente; el caller decide backorder o bin alterno).
type MovementResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message,omitempty"`
}

// VariantAvailabilityDTO disponibilidad vendible de una presentación.
type VariantAvailabilityDTO struct {
	VariantID       string `json:"variant_id"`
	SKU             string `json:"sku"`
	UnitsPerVariant int64  `json:"units_per_variant"`
	HierarchyLevel  int    `json:"hierarchy_level"`
	Available       int64  `json:"available"`
}

// ItemSummaryDTO modelo de lectura agregado de un item: contadores, ATP y
// disponibilidad por presentación.
type ItemSummaryDTO struct {
	InventoryItemID string                   `json:"inventory_item_id"`
	BaseSku         string                   `json:"base_sku"`
	Name            string                   `json:"name"`
	OnHandBase      int64                    `json:"on_hand_base"`
	ReservedBase    int64                    `json:"reserved_base"`
	PickedBase      int64                    `json:"picked_base"`
	BackorderBase   int64                    `json:"backorder_base"`
	ATPBase         int64                    `json:"atp_base"`
	Variants        []VariantAvailabilityDTO `json:"variants"`
}

// BackorderStatusDTO estado de backorder derivado del ATP más el contador
// registrado manualmente.
type BackorderStatusDTO struct {
	InventoryItemID string `json:"inventory_item_id"`
	IsBackordered   bool   `json:"is_backordered"`
	BackorderQty    int64  `json:"backorder_qty"`
	RecordedBaseQty int64  `json:"recorded_base_qty"`
	ATPBase         int64  `json:"atp_base"`
}

// ReplenishmentReviewItemDTO una ubicación por debajo de su mínimo, con su
// padre de reposición y la cantidad sugerida a mover.
type ReplenishmentReviewItemDTO struct {
	InventoryItemID  string          `json:"inventory_item_id"`
	BaseSku          string          `json:"base_sku"`
	ItemName         string          `json:"item_name"`
	LocationID       string          `json:"location_id"`
	LocationCode     string          `json:"location_code"`
	ParentLocationID *string         `json:"parent_location_id,omitempty"`
	ParentCode       *string         `json:"parent_code,omitempty"`
	OnHandBase       int64           `json:"on_hand_base"`
	MinQty           int64           `json:"min_qty"`
	SuggestedQty     int64           `json:"suggested_qty"`
	FillPct          decimal.Decimal `json:"fill_pct"`
}

// ReplenishRequest mueve stock del padre hacia la ubicación pickeable.
type ReplenishRequest struct {
	InventoryItemID  string `json:"inventory_item_id"`
	TargetLocationID string `json:"target_location_id"`
	RequestedUnits   int64  `json:"requested_units"`
	UserID           string `json:"user_id,omitempty"`
}

// ReplenishResponse cuántas unidades base se movieron realmente
// (moved ≤ requested; 0 = sin padre o padre sin stock).
type ReplenishResponse struct {
	MovedUnits int64 `json:"moved_units"`
}

// LocationOccupancyDTO ocupación cúbica de una ubicación. Los campos nil
// significan "sin restricción" (faltan datos físicos).
type LocationOccupancyDTO struct {
	LocationID       string           `json:"location_id"`
	LocationCode     string           `json:"location_code"`
	CapacityCubicMm  *int64           `json:"capacity_cubic_mm"`
	OccupiedCubicMm  int64            `json:"occupied_cubic_mm"`
	RemainingCubicMm *int64           `json:"remaining_cubic_mm"`
	OccupancyPct     *decimal.Decimal `json:"occupancy_pct,omitempty"`
	CalculatedAt     time.Time        `json:"calculated_at"`
}

// OverflowBinDTO bin de sobrestock elegido: mayor capacidad restante primero,
// desempate por menor código.
type OverflowBinDTO struct {
	LocationID       string `json:"location_id"`
	LocationCode     string `json:"location_code"`
	RemainingCubicMm *int64 `json:"remaining_cubic_mm"`
	MaxUnits         *int64 `json:"max_units,omitempty"`
}

// ReconciliationDTO resultado de reconciliar el libro contra el contador
// on-hand de un (item, ubicación).
type ReconciliationDTO struct {
	InventoryItemID     string `json:"inventory_item_id"`
	WarehouseLocationID string `json:"warehouse_location_id"`
	LedgerOnHandSum     int64  `json:"ledger_on_hand_sum"`
	CounterOnHand       int64  `json:"counter_on_hand"`
	Consistent          bool   `json:"consistent"`
}
