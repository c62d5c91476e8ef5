package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeReserve        = "reserve"
	TransactionTypeUnreserve      = "unreserve"
	TransactionTypePick           = "pick"
	TransactionTypeShip           = "ship"
	TransactionTypeReceipt        = "receipt"
	TransactionTypeAdjustment     = "adjustment"
	TransactionTypeReplenish      = "replenish"
	TransactionTypeBackorder      = "backorder"
	TransactionTypeBackorderClear = "backorder_clear"
)

// Estados conceptuales por unidad: on_hand → committed → picked → shipped,
// con backorder cuando la demanda supera el stock y external para entradas
// desde fuera del modelo.
const (
	StockStateExternal  = "external"
	StockStateOnHand    = "on_hand"
	StockStateCommitted = "committed"
	StockStatePicked    = "picked"
	StockStateShipped   = "shipped"
	StockStateBackorder = "backorder"
)

// Provenance distingue transiciones explícitas (acción de usuario) de las
// inferidas por el sistema, como enum etiquetado en lugar de un boolean suelto.
type Provenance string

const (
	ProvenanceExplicit Provenance = "explicit"
	ProvenanceImplicit Provenance = "implicit"
)

// InventoryTransaction es una fila inmutable del libro de movimientos: una por
// transición de estado. Nunca se actualiza ni se borra; es la fuente de verdad
// para auditoría y reconciliación.
//
// BaseQty es la magnitud de la operación (siempre ≥ 0). BaseQtyDelta es el
// efecto con signo sobre OnHandBase: receipt +N, pick −N, adjustment ±d,
// replenish +N (en la ubicación destino; la reconciliación lo niega cuando la
// ubicación consultada es la origen) y 0 para reserve/unreserve/ship/backorder.
// Con esa convención la suma de deltas por (item, ubicación) siempre iguala el
// OnHandBase actual.
type InventoryTransaction struct {
	ID              string
	InventoryItemID string
	TransactionType string
	BaseQty         int64
	BaseQtyDelta    int64
	SourceState     string
	TargetState     string

	// ToLocationID es la ubicación de la fila de nivel afectada; FromLocationID
	// solo se usa en replenish (ubicación padre que entrega el stock).
	FromLocationID *string
	ToLocationID   *string

	OrderID       *string
	OrderItemID   *string
	ReferenceType string
	ReferenceID   string

	Provenance Provenance
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}
