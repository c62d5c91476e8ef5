package entity

import "time"

// InventoryLevel es la fila de contadores de stock, única por
// (item, ubicación[, variante]). Se crea en el primer recibo/upsert y nunca se
// elimina lógicamente. Toda mutación es un delta con signo aplicado en una
// sola sentencia SQL (column = column + delta), nunca read-modify-write en
// memoria de la aplicación.
type InventoryLevel struct {
	InventoryItemID     string
	WarehouseLocationID string
	VariantID           *string

	// Contadores en unidades base. OnHand, Picked y Backorder son
	// conceptualmente no negativos; ATP puede ser negativo (backorder).
	OnHandBase    int64
	ReservedBase  int64
	PickedBase    int64
	BackorderBase int64

	// VariantQty cuenta físicamente una presentación específica en esta
	// ubicación (solo cuando VariantID no es nil).
	VariantQty int64

	UpdatedAt time.Time
}

// LevelTotals agrega los contadores de un item sobre sus ubicaciones.
type LevelTotals struct {
	OnHandBase    int64
	ReservedBase  int64
	PickedBase    int64
	BackorderBase int64
}

// ATP (available-to-promise) = on-hand − reservado. Negativo señala backorder.
func (t LevelTotals) ATP() int64 {
	return t.OnHandBase - t.ReservedBase
}
