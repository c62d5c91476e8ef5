package entity

import "time"

// InventoryItem representa un SKU base del catálogo. Su identidad es inmutable
// una vez referenciada por niveles o transacciones.
type InventoryItem struct {
	ID        string
	BaseSku   string
	Name      string
	BaseUnit  string // unidad mínima rastreada (ej. "unidad", "each")
	CreatedAt time.Time
}

// UomVariant es una presentación vendible de un InventoryItem (each, pack,
// caja, estiba). Varias variantes comparten el mismo InventoryItemID.
type UomVariant struct {
	ID              string
	InventoryItemID string
	SKU             string
	UnitsPerVariant int64 // factor de conversión a unidades base
	HierarchyLevel  int   // orden desde each=1 hacia arriba
	Barcode         string

	// Dimensiones físicas en mm; nil = desconocida (cubicaje no aplicable).
	WidthMm  *int64
	HeightMm *int64
	LengthMm *int64
}
